package stream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for all stream consumers. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	ValuesEmitted *prometheus.CounterVec
	BytesRead     *prometheus.CounterVec
	TailsRetained *prometheus.CounterVec
}

// NewMetrics creates and registers the stream metrics.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		ValuesEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stream_values_emitted_total",
				Help: "Total number of delimited values handed to the handler",
			},
			[]string{"stream"},
		),
		BytesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stream_bytes_read_total",
				Help: "Total number of bytes read into the buffer",
			},
			[]string{"stream"},
		),
		TailsRetained: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stream_tails_retained_total",
				Help: "Total number of consume cycles that retained an unconsumed tail",
			},
			[]string{"stream"},
		),
	}
}

func (m *Metrics) IncValues(stream string) {
	if m == nil {
		return
	}
	m.ValuesEmitted.WithLabelValues(stream).Inc()
}

func (m *Metrics) AddBytesRead(stream string, n int) {
	if m == nil {
		return
	}
	m.BytesRead.WithLabelValues(stream).Add(float64(n))
}

func (m *Metrics) IncRetains(stream string) {
	if m == nil {
		return
	}
	m.TailsRetained.WithLabelValues(stream).Inc()
}
