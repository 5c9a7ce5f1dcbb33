package engine

import (
	"fmt"
	"strings"
)

// UnresolvableError is returned when a resolution sweep makes no progress
// while metrics remain pending: their dependencies can never be satisfied,
// whether through a cycle, a misspelled identifier, or a failed upstream
// query that starved them.
type UnresolvableError struct {
	Panel   string
	Metrics []string
}

func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("panel %q: metrics %s have unresolvable dependencies (cycle, unknown identifier, or failed query)",
		e.Panel, strings.Join(e.Metrics, ", "))
}

// EvalError wraps an Evaluator failure for a single metric. It aborts the
// whole execution so a dashboard is never silently incomplete.
type EvalError struct {
	Metric string
	Err    error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating metric %q: %v", e.Metric, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }
