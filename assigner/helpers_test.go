package assigner

import (
	"context"
	"log/slog"
	"time"
)

// Helper functions

func ptr(v int) *int {
	return &v
}

func id64(v int64) *int64 {
	return &v
}

func testLogger() *slog.Logger {
	return slog.Default()
}

// testAssigner returns an assigner with a deterministic tie-break (always
// the first of the tied set).
func testAssigner() *Assigner {
	return &Assigner{
		ctx:      context.Background(),
		log:      testLogger(),
		randIntN: func(n int) int { return 0 },
	}
}

// fakeHistory is an in-memory BookingHistory that counts fetches.
type fakeHistory struct {
	bookings []BookingRecord
	err      error
	fetches  int
}

func (f *fakeHistory) FetchBookings(ctx context.Context, eventTypeID int64, roster []RosterHost, excludeNoShowHost bool) ([]BookingRecord, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

func booking(id int64, createdAt time.Time, userID *int64, attendees ...Attendee) BookingRecord {
	return BookingRecord{
		ID:        id,
		CreatedAt: createdAt,
		UserID:    userID,
		Status:    "accepted",
		Attendees: attendees,
	}
}

func at(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
