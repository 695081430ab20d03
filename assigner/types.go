package assigner

import (
	"context"
	"time"
)

// Domain defaults for hosts that have no explicit configuration. These are
// policy constants, not implementation details; changing them changes which
// host receives a booking.
const (
	// defaultPriority is the medium tier assumed for hosts without an
	// explicit priority.
	defaultPriority = 2

	// defaultHostWeight is the weight assumed for hosts without an
	// explicit weight.
	defaultHostWeight = 100
)

// DistributionAlgorithm selects the assignment strategy for an event type.
type DistributionAlgorithm string

const (
	// DistributionMaximizeAvailability is the only algorithm currently
	// defined: shortfall filter (when weighted), then priority filter,
	// then least-recently-booked.
	DistributionMaximizeAvailability DistributionAlgorithm = "MAXIMIZE_AVAILABILITY"
)

// Host is a read-only snapshot of a bookable host. The assigner never
// mutates it.
type Host struct {
	ID               int64
	Email            string
	Priority         *int
	Weight           *int
	WeightAdjustment *int
}

func (h Host) effectivePriority() int {
	if h.Priority == nil {
		return defaultPriority
	}
	return *h.Priority
}

func (h Host) effectiveWeight() int {
	if h.Weight == nil {
		return defaultHostWeight
	}
	return *h.Weight
}

func (h Host) effectiveAdjustment() int {
	if h.WeightAdjustment == nil {
		return 0
	}
	return *h.WeightAdjustment
}

// EventType carries the event type configuration the assigner needs.
type EventType struct {
	ID               int64
	RRWeightsEnabled bool
}

// RosterHost pairs a host identity with its weighting configuration for a
// specific event type. The roster may be wider than the available pool and
// is used to compute aggregate weight totals.
type RosterHost struct {
	ID               int64
	Email            string
	Weight           *int
	WeightAdjustment *int
}

func (rh RosterHost) effectiveWeight() int {
	if rh.Weight == nil {
		return defaultHostWeight
	}
	return *rh.Weight
}

func (rh RosterHost) effectiveAdjustment() int {
	if rh.WeightAdjustment == nil {
		return 0
	}
	return *rh.WeightAdjustment
}

// Attendee is a booking participant.
type Attendee struct {
	Email  string
	NoShow bool
}

// BookingRecord is a historical booking fact. UserID is the organizing
// host, nil when the booking never got one.
type BookingRecord struct {
	ID         int64
	CreatedAt  time.Time
	UserID     *int64
	Status     string
	NoShowHost bool
	Attendees  []Attendee
}

// SelectionRequest is the input to a single host selection.
type SelectionRequest struct {
	Algorithm      DistributionAlgorithm
	AvailableHosts []Host
	EventType      EventType
	RosterHosts    []RosterHost
}

// BookingHistory supplies historical booking facts for an event type. The
// returned records cover every roster host (as organizer or attendee),
// newest first. With excludeNoShowHost set, bookings the host no-showed on
// are omitted.
type BookingHistory interface {
	FetchBookings(ctx context.Context, eventTypeID int64, roster []RosterHost, excludeNoShowHost bool) ([]BookingRecord, error)
}
