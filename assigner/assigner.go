package assigner

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"go.schedpool.org/scheduler/logger"
	"go.schedpool.org/scheduler/metricsserver"
	"go.schedpool.org/scheduler/schedb"
	"go.schedpool.org/scheduler/version"
)

// roundRobinSchedulingType marks event types whose bookings we assign.
const roundRobinSchedulingType = "roundRobin"

// reviewRetryInterval is how long an unassignable booking waits before the
// queue picks it up again.
const reviewRetryInterval = 20 * time.Minute

// Cmd provides the command structure for CLI integration
type Cmd struct {
	Server   ServerCmd   `cmd:"server" help:"run continuously"`
	Run      OnceCmd     `cmd:"once" help:"run once"`
	Simulate SimulateCmd `cmd:"simulate" help:"simulate host assignment for a booking"`
}

type (
	ServerCmd struct {
		MetricsPort int `default:"9000" help:"Metrics server port" flag:"metrics-port"`
	}
	OnceCmd struct {
		BookingID   *int64 `arg:"" optional:"" help:"Booking ID to process (if not specified, processes the whole queue)"`
		MetricsPort int    `default:"9000" help:"Metrics server port" flag:"metrics-port"`
	}
	SimulateCmd struct {
		BookingID int64 `arg:"" help:"Booking ID to simulate assignment for"`
		Verbose   bool  `flag:"verbose" short:"v" help:"Enable verbose debug logging"`
	}
)

func (cmd ServerCmd) Run(ctx context.Context) error {
	return Run(ctx, true, cmd.MetricsPort, nil)
}

func (cmd OnceCmd) Run(ctx context.Context) error {
	return Run(ctx, false, cmd.MetricsPort, cmd.BookingID)
}

func (cmd SimulateCmd) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if cmd.Verbose {
		debugHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		log = slog.New(debugHandler)
		ctx = logger.NewContext(ctx, log)
	}

	log.InfoContext(ctx, "starting assignment simulation",
		"bookingID", cmd.BookingID,
		"verbose", cmd.Verbose)

	dbconn, err := schedb.OpenDB(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer dbconn.Close()

	a, err := NewAssigner(ctx, dbconn, log, nil)
	if err != nil {
		return fmt.Errorf("failed to create assigner: %w", err)
	}

	// run the selection inside a transaction that is always rolled back
	tx, err := dbconn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	db := schedb.New(tx)

	queue, err := db.GetAssignmentQueue(ctx)
	if err != nil {
		return fmt.Errorf("failed to read assignment queue: %w", err)
	}

	var eventTypeID int64
	found := false
	for _, item := range queue {
		if item.ID == cmd.BookingID {
			eventTypeID = item.EventTypeID
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("booking %d is not waiting for a host", cmd.BookingID)
	}

	changed, err := a.processBooking(ctx, db, cmd.BookingID, eventTypeID)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if changed {
		fmt.Printf("✓ Simulation complete: booking %d would be assigned a host\n", cmd.BookingID)
	} else {
		fmt.Printf("✓ Simulation complete: no assignment for booking %d\n", cmd.BookingID)
	}

	return nil
}

// Run executes the assigner either continuously or once
func Run(ctx context.Context, continuous bool, metricsPort int, bookingID *int64) error {
	log := logger.FromContext(ctx)

	log.InfoContext(ctx, "assigner starting", "version", version.Version())

	dbconn, err := schedb.OpenDB(ctx, "")
	if err != nil {
		return err
	}
	defer dbconn.Close()

	metricssrv := metricsserver.New()
	version.RegisterMetric("assigner", metricssrv.Registry())

	metrics := NewMetrics(metricssrv.Registry())

	a, err := NewAssigner(ctx, dbconn, log, metrics)
	if err != nil {
		return err
	}

	// Handle single booking processing
	if bookingID != nil {
		log.InfoContext(ctx, "processing single booking", "bookingID", *bookingID)

		var changed bool
		err := schedb.WithTransaction(ctx, dbconn, func(ctx context.Context, db *schedb.Queries) error {
			queue, err := db.GetAssignmentQueue(ctx)
			if err != nil {
				return err
			}

			for _, item := range queue {
				if item.ID != *bookingID {
					continue
				}
				changed, err = a.processBooking(ctx, db, item.ID, item.EventTypeID)
				if err != nil {
					return fmt.Errorf("failed to process booking %d: %w", item.ID, err)
				}
				if !changed {
					return db.UpdateAssignmentReview(ctx, schedb.UpdateAssignmentReviewParams{
						BookingID:  item.ID,
						NextReview: time.Now().Add(reviewRetryInterval),
					})
				}
				return nil
			}
			return fmt.Errorf("booking %d is not waiting for a host", *bookingID)
		})
		if err != nil {
			return err
		}

		if changed {
			log.InfoContext(ctx, "booking assigned", "bookingID", *bookingID)
		} else {
			log.InfoContext(ctx, "booking not assigned", "bookingID", *bookingID)
		}
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := metricssrv.ListenAndServe(ctx, metricsPort); err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		// stops the metrics server when the work loop finishes
		defer cancel()

		expback := backoff.NewExponentialBackOff()
		expback.InitialInterval = time.Second * 3
		expback.MaxInterval = time.Second * 60

		for {
			count, err := a.Run()
			if err != nil {
				return err
			}
			if count > 0 || !continuous {
				log.InfoContext(ctx, "processed bookings", "count", count)
			}
			if !continuous {
				return nil
			}

			if count == 0 {
				sl := expback.NextBackOff()
				select {
				case <-time.After(sl):
				case <-ctx.Done():
					return nil
				}
			} else {
				expback.Reset()
			}
		}
	})

	return g.Wait()
}

// Assigner manages the host assignment process
type Assigner struct {
	ctx      context.Context
	dbconn   *pgxpool.Pool
	log      *slog.Logger
	metrics  *Metrics
	randIntN func(n int) int
}

// NewAssigner creates a new assigner instance
func NewAssigner(ctx context.Context, dbconn *pgxpool.Pool, log *slog.Logger, metrics *Metrics) (*Assigner, error) {
	return &Assigner{
		ctx:      ctx,
		dbconn:   dbconn,
		log:      log,
		metrics:  metrics,
		randIntN: rand.IntN,
	}, nil
}

// Run processes all bookings waiting for host assignment
func (a *Assigner) Run() (int, error) {
	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	var count int
	err := schedb.WithTransaction(ctx, a.dbconn, func(ctx context.Context, db *schedb.Queries) error {
		queue, err := db.GetAssignmentQueue(ctx)
		if err != nil {
			return err
		}

		count = 0
		for _, item := range queue {
			changed, err := a.processBooking(ctx, db, item.ID, item.EventTypeID)
			if err != nil {
				a.log.Warn("could not assign host", "bookingID", item.ID, "err", err)
			}
			count++

			if !changed {
				err := db.UpdateAssignmentReview(ctx, schedb.UpdateAssignmentReviewParams{
					BookingID:  item.ID,
					NextReview: time.Now().Add(reviewRetryInterval),
				})
				if err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// processBooking selects and persists a host for one waiting booking.
// Returns whether an assignment was written.
func (a *Assigner) processBooking(ctx context.Context, db *schedb.Queries, bookingID, eventTypeID int64) (bool, error) {
	start := time.Now()
	a.log.Debug("processing booking", "bookingID", bookingID, "eventTypeID", eventTypeID)

	et, err := db.GetEventType(ctx, eventTypeID)
	if err != nil {
		return false, fmt.Errorf("failed to get event type: %w", err)
	}

	if et.SchedulingType != roundRobinSchedulingType {
		a.log.Warn("booking queued for a non round-robin event type",
			"bookingID", bookingID,
			"eventTypeID", eventTypeID,
			"schedulingType", et.SchedulingType)
		return false, nil
	}

	rosterRows, err := db.GetEventTypeHosts(ctx, et.ID)
	if err != nil {
		return false, fmt.Errorf("failed to get event type hosts: %w", err)
	}
	if len(rosterRows) == 0 {
		return false, fmt.Errorf("event type %d has no hosts", et.ID)
	}

	// calendar availability is narrowed by the booking flow before it
	// calls SelectHost directly; the queue fallback offers the full roster
	roster := make([]RosterHost, len(rosterRows))
	available := make([]Host, len(rosterRows))
	for i, row := range rosterRows {
		roster[i] = RosterHost{
			ID:               row.UserID,
			Email:            row.Email,
			Weight:           row.Weight,
			WeightAdjustment: row.WeightAdjustment,
		}
		available[i] = Host{
			ID:               row.UserID,
			Email:            row.Email,
			Priority:         row.Priority,
			Weight:           row.Weight,
			WeightAdjustment: row.WeightAdjustment,
		}
	}

	algorithm := DistributionAlgorithm(et.DistributionAlgorithm)

	host, err := a.SelectHost(ctx, NewBookingHistory(db), SelectionRequest{
		Algorithm:      algorithm,
		AvailableHosts: available,
		EventType:      EventType{ID: et.ID, RRWeightsEnabled: et.RrWeightsEnabled},
		RosterHosts:    roster,
	})
	if err != nil {
		if a.metrics != nil {
			a.metrics.AssignmentsFailed.WithLabelValues(et.Slug).Inc()
		}
		return false, fmt.Errorf("failed to select host: %w", err)
	}

	decisionID := ulid.Make().String()

	err = db.AssignBookingHost(ctx, schedb.AssignBookingHostParams{
		BookingID:  bookingID,
		UserID:     host.ID,
		DecisionID: decisionID,
	})
	if err != nil {
		if a.metrics != nil {
			a.metrics.AssignmentsFailed.WithLabelValues(et.Slug).Inc()
		}
		return false, fmt.Errorf("failed to assign booking host: %w", err)
	}

	if a.metrics != nil {
		a.metrics.AssignmentsApplied.WithLabelValues(et.Slug).Inc()
	}

	a.log.Info("assigned host",
		"bookingID", bookingID,
		"eventTypeID", et.ID,
		"hostID", host.ID,
		"decisionID", decisionID,
		"algorithm", algorithm,
		"duration", time.Since(start))

	return true, nil
}
