package rating

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recalculation triggers used as the "trigger" label.
const (
	TriggerMutation = "mutation"
	TriggerMissing  = "missing"
	TriggerStale    = "stale"
)

// Metrics holds the aggregator's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	recalculations *prometheus.CounterVec
	duration       prometheus.Histogram
	staleRefresh   prometheus.Counter
	submitted      prometheus.Counter
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		recalculations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tourhub_rating_recalculations_total",
				Help: "Total number of provider rating recalculations",
			},
			[]string{"trigger", "result"},
		),
		duration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tourhub_rating_recalculation_duration_seconds",
				Help:    "Duration of provider rating recalculations in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		staleRefresh: f.NewCounter(
			prometheus.CounterOpts{
				Name: "tourhub_rating_stale_refresh_total",
				Help: "Total number of reads that found a stale provider rating",
			},
		),
		submitted: f.NewCounter(
			prometheus.CounterOpts{
				Name: "tourhub_reviews_submitted_total",
				Help: "Total number of reviews submitted",
			},
		),
	}
}

func (m *Metrics) observeRecalculation(trigger string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.recalculations.WithLabelValues(trigger, result).Inc()
	m.duration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) staleRead() {
	if m == nil {
		return
	}
	m.staleRefresh.Inc()
}

// ReviewSubmitted counts one persisted review.
func (m *Metrics) ReviewSubmitted() {
	if m == nil {
		return
	}
	m.submitted.Inc()
}
