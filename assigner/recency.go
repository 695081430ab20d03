package assigner

import (
	"fmt"
	"slices"
	"time"
)

// The recency stage merges two notions of "last booked". Organizer
// recency comes from the host's own bookings; attendee recency fills in
// evidence of more recent participation. A host absent from both maps has
// never been booked (zero time sentinel) and sorts first.

// organizerRecency maps each host to the creation time of its most recent
// booking as the organizer. Bookings must be sorted newest first.
//
// A booking only counts when the host did not no-show it and at least one
// attendee showed up. Whether a single attendee no-show should also
// disqualify a booking is an open policy question; the current rule
// (host no-show OR all attendees absent excludes) is kept deliberately.
func organizerRecency(hosts []Host, bookings []BookingRecord) map[int64]time.Time {
	recency := make(map[int64]time.Time, len(hosts))
	for _, h := range hosts {
		for _, b := range bookings {
			if b.UserID == nil || *b.UserID != h.ID {
				continue
			}
			if b.NoShowHost || !someAttendeeShowed(b) {
				continue
			}
			recency[h.ID] = b.CreatedAt
			break
		}
	}
	return recency
}

// attendeeRecency maps each host to the creation time of its most recent
// booking as an attendee, considering only bookings strictly newer than
// the host's organizer recency. Organizer bookings take precedence; an
// older attendee mention never overrides them. Bookings must be sorted
// newest first.
func attendeeRecency(hosts []Host, bookings []BookingRecord, organizer map[int64]time.Time) map[int64]time.Time {
	recency := make(map[int64]time.Time, len(hosts))
	for _, h := range hosts {
		after := organizer[h.ID] // zero time when never booked as organizer
		for _, b := range bookings {
			if !b.CreatedAt.After(after) {
				continue
			}
			if !hasAttendee(b, h.Email) {
				continue
			}
			recency[h.ID] = b.CreatedAt
			break
		}
	}
	return recency
}

// mergeRecency combines the two maps; attendee recency overrides
// organizer recency when present.
func mergeRecency(organizer, attendee map[int64]time.Time) map[int64]time.Time {
	merged := make(map[int64]time.Time, len(organizer)+len(attendee))
	for id, ts := range organizer {
		merged[id] = ts
	}
	for id, ts := range attendee {
		merged[id] = ts
	}
	return merged
}

// pickLeastRecent returns the host with the oldest merged recency
// timestamp, drawing uniformly at random between exact ties.
func (a *Assigner) pickLeastRecent(hosts []Host, bookings []BookingRecord) (Host, error) {
	if len(hosts) == 0 {
		return Host{}, ErrNoCandidates
	}

	// the provider contract is newest-first; don't depend on it
	sorted := slices.Clone(bookings)
	slices.SortStableFunc(sorted, func(x, y BookingRecord) int {
		return y.CreatedAt.Compare(x.CreatedAt)
	})

	organizer := organizerRecency(hosts, sorted)
	merged := mergeRecency(organizer, attendeeRecency(hosts, sorted, organizer))

	// each candidate must resolve to exactly one recency value; a
	// duplicate id means the maps no longer describe the pool
	seen := make(map[int64]bool, len(hosts))
	for _, h := range hosts {
		if seen[h.ID] {
			return Host{}, fmt.Errorf("%w: duplicate host %d", ErrRecencyUnresolved, h.ID)
		}
		seen[h.ID] = true
	}

	// hosts absent from both maps resolve to the zero time ("never
	// booked") and win the comparison
	oldest := []Host{hosts[0]}
	oldestTS := merged[hosts[0].ID]
	for _, h := range hosts[1:] {
		ts := merged[h.ID]
		switch {
		case ts.Before(oldestTS):
			oldest = []Host{h}
			oldestTS = ts
		case ts.Equal(oldestTS):
			oldest = append(oldest, h)
		}
	}

	if len(oldest) == 1 {
		return oldest[0], nil
	}
	return oldest[a.randIntN(len(oldest))], nil
}

func someAttendeeShowed(b BookingRecord) bool {
	for _, att := range b.Attendees {
		if !att.NoShow {
			return true
		}
	}
	return false
}

func hasAttendee(b BookingRecord, email string) bool {
	for _, att := range b.Attendees {
		if att.Email == email {
			return true
		}
	}
	return false
}
