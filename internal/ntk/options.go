package ntk

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Recorder observes the work done for each parameter chunk.
type Recorder interface {
	// ObserveChunk is called after a chunk's Gram products are accumulated.
	// gradients is the number of per-sample gradient evaluations it took.
	ObserveChunk(numel, gradients int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveChunk(int, int, time.Duration) {}

// Option configures ComputeKernels and ComputeKernel.
type Option func(*options)

type options struct {
	budgetBytes float64
	logger      logrus.FieldLogger
	recorder    Recorder
}

func defaultOptions() options {
	return options{
		budgetBytes: DefaultBudgetBytes,
		logger:      logrus.StandardLogger(),
		recorder:    nopRecorder{},
	}
}

// WithBudgetBytes sets the memory budget for one chunk's Jacobians.
// Lower budgets produce more, smaller chunks and more passes over the samples.
func WithBudgetBytes(b float64) Option {
	return func(o *options) { o.budgetBytes = b }
}

// WithLogger sets the logger receiving per-chunk progress lines.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder sets the Recorder notified once per chunk.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}
