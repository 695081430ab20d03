package schedb

import (
	"context"
	"time"
)

const getRosterBookings = `-- name: GetRosterBookings :many
SELECT b.id, b.created_at, b.user_id, b.status, b.no_show_host
FROM bookings b
WHERE b.event_type_id = $1
  AND b.status = 'accepted'
  AND (b.user_id = ANY($2::bigint[])
       OR EXISTS (
           SELECT 1 FROM attendees a
           WHERE a.booking_id = b.id AND a.email = ANY($3::text[])))
  AND (NOT $4::boolean OR b.no_show_host = false)
ORDER BY b.created_at DESC
`

type GetRosterBookingsParams struct {
	EventTypeID       int64
	UserIDs           []int64
	UserEmails        []string
	ExcludeNoShowHost bool
}

type GetRosterBookingsRow struct {
	ID         int64
	CreatedAt  time.Time
	UserID     *int64
	Status     BookingsStatus
	NoShowHost bool
}

// GetRosterBookings returns the accepted bookings for an event type where
// one of the roster hosts is the organizer or listed as an attendee,
// most recent first.
func (q *Queries) GetRosterBookings(ctx context.Context, arg GetRosterBookingsParams) ([]GetRosterBookingsRow, error) {
	rows, err := q.db.Query(ctx, getRosterBookings,
		arg.EventTypeID,
		arg.UserIDs,
		arg.UserEmails,
		arg.ExcludeNoShowHost,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetRosterBookingsRow
	for rows.Next() {
		var i GetRosterBookingsRow
		if err := rows.Scan(
			&i.ID,
			&i.CreatedAt,
			&i.UserID,
			&i.Status,
			&i.NoShowHost,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getBookingAttendees = `-- name: GetBookingAttendees :many
SELECT a.booking_id, a.email, a.no_show
FROM attendees a
WHERE a.booking_id = ANY($1::bigint[])
ORDER BY a.booking_id, a.id
`

type GetBookingAttendeesRow struct {
	BookingID int64
	Email     string
	NoShow    bool
}

func (q *Queries) GetBookingAttendees(ctx context.Context, bookingIDs []int64) ([]GetBookingAttendeesRow, error) {
	rows, err := q.db.Query(ctx, getBookingAttendees, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetBookingAttendeesRow
	for rows.Next() {
		var i GetBookingAttendeesRow
		if err := rows.Scan(&i.BookingID, &i.Email, &i.NoShow); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getAssignmentQueue = `-- name: GetAssignmentQueue :many
SELECT b.id, b.event_type_id
FROM bookings b
JOIN event_types et ON et.id = b.event_type_id
WHERE b.status = 'awaiting_host'
  AND b.user_id IS NULL
  AND et.scheduling_type = 'roundRobin'
  AND (b.assignment_review IS NULL OR b.assignment_review < now())
ORDER BY b.created_at
`

type GetAssignmentQueueRow struct {
	ID          int64
	EventTypeID int64
}

// GetAssignmentQueue returns round-robin bookings that are waiting for a
// host and are due for (another) assignment attempt.
func (q *Queries) GetAssignmentQueue(ctx context.Context) ([]GetAssignmentQueueRow, error) {
	rows, err := q.db.Query(ctx, getAssignmentQueue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetAssignmentQueueRow
	for rows.Next() {
		var i GetAssignmentQueueRow
		if err := rows.Scan(&i.ID, &i.EventTypeID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const assignBookingHost = `-- name: AssignBookingHost :exec
UPDATE bookings
SET user_id = $2,
    status = 'accepted',
    decision_id = $3,
    assignment_review = NULL
WHERE id = $1
`

type AssignBookingHostParams struct {
	BookingID  int64
	UserID     int64
	DecisionID string
}

func (q *Queries) AssignBookingHost(ctx context.Context, arg AssignBookingHostParams) error {
	_, err := q.db.Exec(ctx, assignBookingHost, arg.BookingID, arg.UserID, arg.DecisionID)
	return err
}

const updateAssignmentReview = `-- name: UpdateAssignmentReview :exec
UPDATE bookings
SET assignment_review = $2
WHERE id = $1
`

type UpdateAssignmentReviewParams struct {
	BookingID  int64
	NextReview time.Time
}

func (q *Queries) UpdateAssignmentReview(ctx context.Context, arg UpdateAssignmentReviewParams) error {
	_, err := q.db.Exec(ctx, updateAssignmentReview, arg.BookingID, arg.NextReview)
	return err
}
