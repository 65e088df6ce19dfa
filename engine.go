package filtereval

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Engine runs filters from a Registry against a waveform and collects the
// results in registration order.
//
// An Engine is safe for concurrent use; it holds no per-run state.
type Engine struct {
	invoker *Invoker
	logger  *zap.Logger
	policy  ErrorPolicy
	workers int
	metrics []Metric
}

// NewEngine creates an Engine. By default it runs sequentially, fails fast
// and computes no metrics.
func NewEngine(opts ...Option) *Engine {
	o := newOptions(opts)
	return &Engine{
		invoker: &Invoker{logger: o.logger},
		logger:  o.logger,
		policy:  o.policy,
		workers: o.workers,
		metrics: o.metrics,
	}
}

// RunOne applies spec to w and packages the pair under the spec's name.
func (e *Engine) RunOne(w Waveform, spec *FilterSpec) (*ComparisonResult, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, fmt.Errorf("%w: nil spec", ErrInvalidFilterSpec)
	}
	return e.runOne(w, spec)
}

func (e *Engine) runOne(w Waveform, spec *FilterSpec) (*ComparisonResult, error) {
	start := time.Now()
	filtered, adj, err := e.invoker.Apply(spec.name, w, spec.filter, spec.params)
	if err != nil {
		e.logger.Debug("filter failed", zap.String("filter", spec.name), zap.Error(err))
		return nil, err
	}

	original := w.Clone()
	result := &ComparisonResult{
		Name:       spec.name,
		Original:   original,
		Filtered:   filtered,
		Adjustment: adj,
		Metrics:    computeMetrics(e.metrics, original.Samples, filtered.Samples),
	}

	e.logger.Debug("filter complete",
		zap.String("filter", spec.name),
		zap.Duration("elapsed", time.Since(start)),
		zap.Stringer("length", adj.Kind))
	return result, nil
}

// RunAll applies every filter in reg to w, in registration order.
//
// Under FailFast the first failing filter aborts the run and RunAll returns
// a nil set with that filter's error. Under ContinueOnError every filter
// runs; the set holds the successful results and the error joins all
// failures, so a requested filter is never silently missing.
func (e *Engine) RunAll(w Waveform, reg *Registry) (*ComparisonSet, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrInvalidConfig)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	specs := reg.Specs()
	start := time.Now()

	var (
		results []*ComparisonResult
		errs    []error
	)
	if e.workers > 1 && len(specs) > 1 {
		results, errs = e.runParallel(w, specs)
	} else {
		results, errs = e.runSequential(w, specs)
	}

	set := newComparisonSet(len(specs))
	var failures []error
	for i := range specs {
		if errs[i] != nil {
			if e.policy == FailFast {
				e.logger.Info("batch aborted",
					zap.String("filter", specs[i].name),
					zap.Int("position", i),
					zap.Error(errs[i]))
				return nil, errs[i]
			}
			failures = append(failures, errs[i])
			continue
		}
		if results[i] != nil {
			set.add(results[i])
		}
	}

	e.logger.Info("batch complete",
		zap.Int("filters", len(specs)),
		zap.Int("succeeded", set.Len()),
		zap.Int("failed", len(failures)),
		zap.Stringer("policy", e.policy),
		zap.Duration("elapsed", time.Since(start)))

	return set, errors.Join(failures...)
}

func (e *Engine) runSequential(w Waveform, specs []*FilterSpec) ([]*ComparisonResult, []error) {
	results := make([]*ComparisonResult, len(specs))
	errs := make([]error, len(specs))
	for i, spec := range specs {
		results[i], errs[i] = e.runOne(w, spec)
		if errs[i] != nil && e.policy == FailFast {
			break
		}
	}
	return results, errs
}

// runParallel fans filters out to a bounded set of workers. Each filter
// receives its own copy of the input through the invoker, and results are
// stored by registry position so completion order does not matter.
func (e *Engine) runParallel(w Waveform, specs []*FilterSpec) ([]*ComparisonResult, []error) {
	results := make([]*ComparisonResult, len(specs))
	errs := make([]error, len(specs))

	var (
		failed atomic.Bool
		wg     sync.WaitGroup
	)
	jobs := make(chan int)

	workers := min(e.workers, len(specs))
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = e.runOne(w, specs[i])
				if errs[i] != nil {
					failed.Store(true)
				}
			}
		}()
	}

	// Jobs are dispatched in order, so once a failure is seen every earlier
	// filter has already been handed to a worker.
	for i := range specs {
		if e.policy == FailFast && failed.Load() {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, errs
}
