package filtereval

import (
	"fmt"

	"go.uber.org/zap"
)

// maxWorkers bounds Config.Workers.
const maxWorkers = 256

// Config is a declarative Engine configuration, typically filled from
// command line flags.
type Config struct {
	// Policy is "fail-fast" (default when empty) or "continue".
	Policy string

	// Workers is the number of filters run concurrently. 0 or 1 runs
	// sequentially.
	Workers int

	// Metrics lists built-in metric names. Empty selects DefaultMetrics.
	Metrics []string
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := ParseErrorPolicy(c.Policy); !ok {
		return fmt.Errorf("%w: unknown error policy %q", ErrInvalidConfig, c.Policy)
	}
	if c.Workers < 0 || c.Workers > maxWorkers {
		return fmt.Errorf("%w: workers must be 0-%d", ErrInvalidConfig, maxWorkers)
	}
	for _, name := range c.Metrics {
		if _, ok := MetricByName(name); !ok {
			return fmt.Errorf("%w: unknown metric %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

// NewEngineFromConfig validates c and builds an Engine from it.
func NewEngineFromConfig(c *Config, logger *zap.Logger) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	policy, _ := ParseErrorPolicy(c.Policy)
	metrics := DefaultMetrics()
	if len(c.Metrics) > 0 {
		metrics = make([]Metric, 0, len(c.Metrics))
		for _, name := range c.Metrics {
			m, _ := MetricByName(name)
			metrics = append(metrics, m)
		}
	}

	return NewEngine(
		WithLogger(logger),
		WithErrorPolicy(policy),
		WithWorkers(c.Workers),
		WithMetrics(metrics...),
	), nil
}
