// Package metrics exposes kernel computation progress as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Prefix = "ntk_"

// Metrics records per-chunk work. It implements ntk.Recorder.
type Metrics struct {
	chunks        prometheus.Counter
	gradients     prometheus.Counter
	parameters    prometheus.Counter
	chunkDuration prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		chunks: factory.NewCounter(prometheus.CounterOpts{
			Name: Prefix + "chunks_total",
			Help: "Number of parameter chunks whose Gram products were accumulated",
		}),
		gradients: factory.NewCounter(prometheus.CounterOpts{
			Name: Prefix + "gradient_evaluations_total",
			Help: "Number of per-sample gradient evaluations",
		}),
		parameters: factory.NewCounter(prometheus.CounterOpts{
			Name: Prefix + "parameter_elements_total",
			Help: "Number of parameter elements processed across all chunks",
		}),
		chunkDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    Prefix + "chunk_duration_seconds",
			Help:    "Time taken to build and accumulate the Jacobians of one chunk",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}

func (m *Metrics) ObserveChunk(numel, gradients int, elapsed time.Duration) {
	m.chunks.Inc()
	m.gradients.Add(float64(gradients))
	m.parameters.Add(float64(numel))
	m.chunkDuration.Observe(elapsed.Seconds())
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format, for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
