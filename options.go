package filtereval

import "go.uber.org/zap"

// ErrorPolicy selects how a batch run reacts to a failing filter.
type ErrorPolicy int

const (
	// FailFast aborts the batch at the first failing filter.
	FailFast ErrorPolicy = iota

	// ContinueOnError runs every filter and reports all failures together
	// with the results of the filters that succeeded.
	ContinueOnError
)

// String returns the policy name used by the command line driver.
func (p ErrorPolicy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case ContinueOnError:
		return "continue"
	default:
		return "unknown"
	}
}

// ParseErrorPolicy resolves a policy name produced by ErrorPolicy.String.
func ParseErrorPolicy(s string) (ErrorPolicy, bool) {
	switch s {
	case "fail-fast", "":
		return FailFast, true
	case "continue":
		return ContinueOnError, true
	default:
		return FailFast, false
	}
}

// Option configures a Source, Invoker or Engine.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	policy  ErrorPolicy
	workers int
	metrics []Metric
}

func newOptions(opts []Option) options {
	o := options{
		logger:  zap.NewNop(),
		policy:  FailFast,
		workers: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithErrorPolicy sets the batch error policy. Only the Engine uses it.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithWorkers sets how many filters the Engine runs concurrently.
// Values below 1 select sequential execution.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = max(n, 1) }
}

// WithMetrics adds comparison metrics computed for every result.
func WithMetrics(metrics ...Metric) Option {
	return func(o *options) { o.metrics = append(o.metrics, metrics...) }
}
