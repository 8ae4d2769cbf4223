package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type SequencerMetrics struct {
	TransactionsTotal   metrics.Counter
	ConfirmationSeconds metrics.Histogram
	PhaseSeconds        metrics.Histogram
}

// Transaction counts one transaction of phase and how long its receipt took.
func (s *SequencerMetrics) Transaction(phase string, err error, elapsed time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailed
	}

	s.TransactionsTotal.With("phase", phase, "status", status).Add(1)
	s.ConfirmationSeconds.With("phase", phase).Observe(elapsed.Seconds())
}

func (s *SequencerMetrics) Phase(phase string, elapsed time.Duration) {
	s.PhaseSeconds.With("phase", phase).Observe(elapsed.Seconds())
}

func PromSequencerMetrics() *SequencerMetrics {
	return &SequencerMetrics{
		TransactionsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: SequencerSubsystem,
			Name:      "transactions_total",
			Help:      "Total number of submitted transactions.",
		}, []string{"phase", "status"}),
		ConfirmationSeconds: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SequencerSubsystem,
			Name:      "confirmation_seconds",
			Help:      "Time from submission to receipt.",
			Buckets:   []float64{1, 2, 5, 10, 15, 30, 60, 120, 300},
		}, []string{"phase"}),
		PhaseSeconds: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SequencerSubsystem,
			Name:      "phase_seconds",
			Help:      "Duration of each phase.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"phase"}),
	}
}

func NopSequencerMetrics() *SequencerMetrics {
	return &SequencerMetrics{
		TransactionsTotal:   discard.NewCounter(),
		ConfirmationSeconds: discard.NewHistogram(),
		PhaseSeconds:        discard.NewHistogram(),
	}
}
