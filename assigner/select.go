package assigner

import (
	"context"
	"fmt"
	"time"
)

// SelectHost picks the host that should receive the next booking for a
// round-robin event type.
//
// A single available host is returned immediately without consulting the
// booking history. Otherwise the history for the full roster is fetched
// (bookings the host no-showed are excluded) and the configured
// distribution algorithm runs its stage pipeline over the available pool.
// An unrecognized algorithm is a configuration error; history fetch
// failures are surfaced unmodified and are safe to retry.
func (a *Assigner) SelectHost(ctx context.Context, history BookingHistory, req SelectionRequest) (Host, error) {
	start := time.Now()

	if len(req.AvailableHosts) == 0 {
		a.trackError("no_candidates")
		return Host{}, ErrNoCandidates
	}

	if len(req.AvailableHosts) == 1 {
		// no real choice, skip the history fetch
		if a.metrics != nil {
			a.metrics.FastPath.Inc()
			a.metrics.TrackSelection(req.Algorithm, "fast_path")
		}
		return req.AvailableHosts[0], nil
	}

	bookings, err := history.FetchBookings(ctx, req.EventType.ID, req.RosterHosts, true)
	if err != nil {
		a.trackError("history_fetch")
		return Host{}, fmt.Errorf("fetch bookings: %w", err)
	}

	a.log.DebugContext(ctx, "selecting host",
		"eventTypeID", req.EventType.ID,
		"algorithm", req.Algorithm,
		"available", len(req.AvailableHosts),
		"roster", len(req.RosterHosts),
		"bookings", len(bookings))

	switch req.Algorithm {
	case DistributionMaximizeAvailability:
		host, err := a.maximizeAvailability(ctx, req, bookings)
		if err != nil {
			return Host{}, err
		}
		if a.metrics != nil {
			a.metrics.TrackSelection(req.Algorithm, "selected")
			a.metrics.SelectionDuration.Observe(time.Since(start).Seconds())
		}
		return host, nil
	default:
		a.trackError("unknown_algorithm")
		return Host{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, req.Algorithm)
	}
}

// maximizeAvailability runs the stage pipeline in its fixed order:
// shortfall (when weighting is enabled), priority, recency.
func (a *Assigner) maximizeAvailability(ctx context.Context, req SelectionRequest, bookings []BookingRecord) (Host, error) {
	pool := req.AvailableHosts

	if req.EventType.RRWeightsEnabled {
		narrowed, err := filterByShortfall(pool, req.RosterHosts, bookings)
		if err != nil {
			a.trackError("zero_roster_weight")
			return Host{}, err
		}
		pool = narrowed
		a.trackStagePool("shortfall", len(pool))
		a.log.DebugContext(ctx, "shortfall filter applied", "remaining", len(pool))
	}

	pool = filterByPriority(pool)
	a.trackStagePool("priority", len(pool))
	a.log.DebugContext(ctx, "priority filter applied", "remaining", len(pool))

	host, err := a.pickLeastRecent(pool, bookings)
	if err != nil {
		a.trackError("recency")
		return Host{}, err
	}

	a.log.DebugContext(ctx, "host selected",
		"eventTypeID", req.EventType.ID,
		"hostID", host.ID)

	return host, nil
}

func (a *Assigner) trackError(reason string) {
	if a.metrics != nil {
		a.metrics.SelectionErrors.WithLabelValues(reason).Inc()
	}
}

func (a *Assigner) trackStagePool(stage string, size int) {
	if a.metrics != nil {
		a.metrics.StagePoolSize.WithLabelValues(stage).Set(float64(size))
	}
}
