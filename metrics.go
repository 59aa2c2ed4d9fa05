package netplanlint

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultValid = "valid"

// Metrics counts validation outcomes. Create it with NewMetrics and pass it
// with WithMetrics.
type Metrics struct {
	validations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics registers the validation metrics on reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		validations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netplanlint_validations_total",
				Help: "Total number of validated documents by outcome",
			},
			[]string{"result"}, // valid or an issue kind
		),
		duration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "netplanlint_validation_duration_seconds",
				Help:    "Duration of a single document validation in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
	}
}

func (m *Metrics) observe(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(result).Inc()
	m.duration.Observe(d.Seconds())
}
