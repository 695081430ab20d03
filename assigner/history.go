package assigner

import (
	"context"
	"fmt"

	"go.schedpool.org/scheduler/schedb"
)

// dbHistory is the production BookingHistory, backed by the schedb query
// layer.
type dbHistory struct {
	db *schedb.Queries
}

// NewBookingHistory returns a BookingHistory reading from the given
// queries. Pass transaction-bound queries to read within a transaction.
func NewBookingHistory(db *schedb.Queries) BookingHistory {
	return &dbHistory{db: db}
}

func (h *dbHistory) FetchBookings(ctx context.Context, eventTypeID int64, roster []RosterHost, excludeNoShowHost bool) ([]BookingRecord, error) {
	userIDs := make([]int64, 0, len(roster))
	emails := make([]string, 0, len(roster))
	for _, rh := range roster {
		userIDs = append(userIDs, rh.ID)
		emails = append(emails, rh.Email)
	}

	rows, err := h.db.GetRosterBookings(ctx, schedb.GetRosterBookingsParams{
		EventTypeID:       eventTypeID,
		UserIDs:           userIDs,
		UserEmails:        emails,
		ExcludeNoShowHost: excludeNoShowHost,
	})
	if err != nil {
		return nil, fmt.Errorf("get roster bookings: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	bookingIDs := make([]int64, len(rows))
	for i, row := range rows {
		bookingIDs[i] = row.ID
	}

	attendees, err := h.db.GetBookingAttendees(ctx, bookingIDs)
	if err != nil {
		return nil, fmt.Errorf("get booking attendees: %w", err)
	}

	attendeesByBooking := make(map[int64][]Attendee, len(rows))
	for _, att := range attendees {
		attendeesByBooking[att.BookingID] = append(attendeesByBooking[att.BookingID],
			Attendee{Email: att.Email, NoShow: att.NoShow})
	}

	records := make([]BookingRecord, len(rows))
	for i, row := range rows {
		records[i] = BookingRecord{
			ID:         row.ID,
			CreatedAt:  row.CreatedAt,
			UserID:     row.UserID,
			Status:     string(row.Status),
			NoShowHost: row.NoShowHost,
			Attendees:  attendeesByBooking[row.ID],
		}
	}

	return records, nil
}
