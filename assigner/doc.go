// Package assigner implements round-robin host assignment for shared
// event types.
//
// Given the pool of hosts available for a booking, the assigner picks the
// host that should receive it. The decision runs as a pipeline of three
// stages, each narrowing the candidate pool:
//
//   - Shortfall: when weighting is enabled for the event type, keep the
//     hosts furthest below their weighted target share of bookings.
//   - Priority: keep the hosts at the highest priority tier.
//   - Recency: pick the host that has gone longest without a booking,
//     drawing uniformly at random between exact ties.
//
// The pipeline is deterministic for a given booking history except for the
// explicit random tie-break. It never selects a host that was not in the
// available pool.
//
// # Usage
//
// Create an assigner and select a host:
//
//	a, err := assigner.NewAssigner(ctx, dbconn, logger, metrics)
//	if err != nil {
//	    return err
//	}
//	host, err := a.SelectHost(ctx, history, req)
//
// The package also provides a daemon (the "server" command) that assigns
// hosts to round-robin bookings waiting in the database.
package assigner
