package subset

import (
	"github.com/YuminosukeSato/eslgo/pkg/errors"
	"github.com/YuminosukeSato/eslgo/pkg/log"
)

// defaultParallelThreshold is the number of combinations below which the
// search stays on the calling goroutine even when workers > 1.
const defaultParallelThreshold = 64

// Option configures a subset search.
type Option func(*options)

type options struct {
	alwaysInclude []string
	workers       int
	threshold     int
	logger        log.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		workers:   1,
		threshold: defaultParallelThreshold,
		logger:    log.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) validate(op string) error {
	if o.workers < 0 {
		return errors.NewInvalidParameterError(op, "workers", o.workers, "must be >= 0 (0 means one per CPU)")
	}
	if o.threshold < 0 {
		return errors.NewInvalidParameterError(op, "parallel_threshold", o.threshold, "must be >= 0")
	}
	if o.logger == nil {
		o.logger = log.Nop()
	}
	return nil
}

// WithAlwaysInclude forces the named columns into every candidate subset,
// typically the intercept. The subset size k then counts only the other
// columns.
func WithAlwaysInclude(names ...string) Option {
	return func(o *options) {
		o.alwaysInclude = append(o.alwaysInclude, names...)
	}
}

// WithWorkers sets the number of goroutines fitting combinations. 1 (the
// default) searches sequentially; 0 uses one worker per CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithParallelThreshold sets how many combinations a search must have
// before it is split across workers.
func WithParallelThreshold(n int) Option {
	return func(o *options) {
		o.threshold = n
	}
}

// WithLogger sets the logger for progress records. Records are emitted at
// debug level.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
