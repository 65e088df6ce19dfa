package filtereval

import (
	"errors"
	"fmt"
)

// Common errors returned by the pipeline.
var (
	// ErrInvalidWaveform indicates a waveform that violates its invariants
	// (empty samples, non-positive sample rate, non-finite values).
	ErrInvalidWaveform = errors.New("invalid waveform")

	// ErrLoad is matched by every *LoadError.
	ErrLoad = errors.New("load failed")

	// ErrFilterExecution is matched by every *FilterExecutionError.
	ErrFilterExecution = errors.New("filter execution failed")

	// ErrFilterPanic indicates that a filter capability panicked.
	ErrFilterPanic = errors.New("filter panicked")

	// ErrInvalidOutput indicates that a filter returned NaN or Inf samples.
	ErrInvalidOutput = errors.New("filter produced invalid output")

	// ErrDuplicateFilter is matched by every *DuplicateFilterError.
	ErrDuplicateFilter = errors.New("duplicate filter name")

	// ErrInvalidFilterSpec indicates an empty filter name or nil capability.
	ErrInvalidFilterSpec = errors.New("invalid filter spec")

	// ErrFilterNotFound indicates a registry lookup for an unknown name.
	ErrFilterNotFound = errors.New("filter not found")

	// ErrInvalidParam indicates a missing or mistyped filter parameter.
	ErrInvalidParam = errors.New("invalid filter parameter")

	// ErrSave indicates that a waveform could not be persisted.
	ErrSave = errors.New("save failed")

	// ErrInvalidConfig indicates invalid engine configuration.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)

// LoadError reports a source file that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrLoad.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// FilterExecutionError identifies the filter and parameters of a failed
// invocation.
type FilterExecutionError struct {
	Filter string
	Params Params
	Err    error
}

func (e *FilterExecutionError) Error() string {
	name := e.Filter
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("filter %q (params %s): %v", name, e.Params, e.Err)
}

func (e *FilterExecutionError) Unwrap() error { return e.Err }

// Is makes every FilterExecutionError match ErrFilterExecution.
func (e *FilterExecutionError) Is(target error) bool { return target == ErrFilterExecution }

// DuplicateFilterError reports a second registration of the same name.
type DuplicateFilterError struct {
	Name string
}

func (e *DuplicateFilterError) Error() string {
	return fmt.Sprintf("%v: %q is already registered", ErrDuplicateFilter, e.Name)
}

// Is makes every DuplicateFilterError match ErrDuplicateFilter.
func (e *DuplicateFilterError) Is(target error) bool { return target == ErrDuplicateFilter }
