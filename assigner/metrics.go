package assigner

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the prometheus metrics for the assigner.
type Metrics struct {
	// Selection outcomes
	Selections      *prometheus.CounterVec
	FastPath        prometheus.Counter
	SelectionErrors *prometheus.CounterVec

	// Pipeline behavior
	StagePoolSize     *prometheus.GaugeVec
	SelectionDuration prometheus.Histogram

	// Daemon activity
	AssignmentsApplied *prometheus.CounterVec
	AssignmentsFailed  *prometheus.CounterVec
}

// NewMetrics creates and registers all assigner metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assigner_selections_total",
				Help: "Host selections by algorithm and outcome",
			},
			[]string{"algorithm", "outcome"},
		),

		FastPath: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "assigner_fast_path_total",
				Help: "Selections short-circuited by a single available host",
			},
		),

		SelectionErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assigner_selection_errors_total",
				Help: "Failed selections by reason",
			},
			[]string{"reason"},
		),

		StagePoolSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "assigner_stage_pool_size",
				Help: "Candidates remaining after each pipeline stage",
			},
			[]string{"stage"},
		),

		SelectionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assigner_selection_duration_seconds",
				Help:    "Time spent selecting a host",
				Buckets: prometheus.DefBuckets,
			},
		),

		AssignmentsApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assigner_assignments_applied_total",
				Help: "Bookings assigned a host by the daemon",
			},
			[]string{"event_type"},
		),

		AssignmentsFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assigner_assignments_failed_total",
				Help: "Booking assignment attempts that failed",
			},
			[]string{"event_type"},
		),
	}

	reg.MustRegister(
		m.Selections,
		m.FastPath,
		m.SelectionErrors,
		m.StagePoolSize,
		m.SelectionDuration,
		m.AssignmentsApplied,
		m.AssignmentsFailed,
	)

	return m
}

// TrackSelection records a completed selection.
func (m *Metrics) TrackSelection(algorithm DistributionAlgorithm, outcome string) {
	m.Selections.WithLabelValues(string(algorithm), outcome).Inc()
}
