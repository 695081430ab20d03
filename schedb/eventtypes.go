package schedb

import (
	"context"
)

const getEventType = `-- name: GetEventType :one
SELECT et.id, et.slug, et.scheduling_type, et.rr_weights_enabled, et.distribution_algorithm
FROM event_types et
WHERE et.id = $1
`

func (q *Queries) GetEventType(ctx context.Context, id int64) (EventType, error) {
	row := q.db.QueryRow(ctx, getEventType, id)
	var i EventType
	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.SchedulingType,
		&i.RrWeightsEnabled,
		&i.DistributionAlgorithm,
	)
	return i, err
}

const getEventTypeHosts = `-- name: GetEventTypeHosts :many
SELECT h.user_id, u.email, h.priority, h.weight, h.weight_adjustment
FROM hosts h
JOIN users u ON u.id = h.user_id
WHERE h.event_type_id = $1
ORDER BY h.user_id
`

type GetEventTypeHostsRow struct {
	UserID           int64
	Email            string
	Priority         *int
	Weight           *int
	WeightAdjustment *int
}

// GetEventTypeHosts returns the round-robin roster for an event type with
// each host's per-event-type weighting configuration.
func (q *Queries) GetEventTypeHosts(ctx context.Context, eventTypeID int64) ([]GetEventTypeHostsRow, error) {
	rows, err := q.db.Query(ctx, getEventTypeHosts, eventTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetEventTypeHostsRow
	for rows.Next() {
		var i GetEventTypeHostsRow
		if err := rows.Scan(
			&i.UserID,
			&i.Email,
			&i.Priority,
			&i.Weight,
			&i.WeightAdjustment,
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
