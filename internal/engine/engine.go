package engine

import (
	"context"

	"github.com/vk/dashgrid/internal/dashboard"
)

// QuerySource executes one raw query against a data store and returns its
// numeric result. Implementations must tolerate as many concurrent
// invocations as the engine's configured concurrency.
type QuerySource interface {
	Query(ctx context.Context, query string) (float64, error)
}

// Evaluator computes a metric expression against name/number bindings.
// Evaluation is synchronous.
type Evaluator interface {
	Evaluate(expression string, bindings map[string]float64) (float64, error)
}

// DefaultConcurrency is the query fan-out ceiling used when no option
// overrides it.
const DefaultConcurrency = 4

// Engine computes dashboard results. It holds only the injected
// capabilities and settings; per-call state lives in an execution, so one
// Engine may serve concurrent calls.
type Engine struct {
	source      QuerySource
	eval        Evaluator
	concurrency int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithConcurrency caps the number of in-flight queries per batch.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.concurrency = n
		}
	}
}

// New builds an Engine around the given query source and evaluator.
func New(source QuerySource, eval Evaluator, opts ...Option) *Engine {
	e := &Engine{source: source, eval: eval, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs every panel of the dashboard in declared order and returns
// the materialized results. It is the eager counterpart of Stream and
// yields identical values for identical input.
func (e *Engine) Execute(ctx context.Context, cfg *dashboard.Config) ([]dashboard.PanelResult, error) {
	x := newExecution(e, cfg)
	results := make([]dashboard.PanelResult, 0, len(cfg.Panels))
	for _, p := range cfg.Panels {
		res, err := x.panel(ctx, p)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, nil
}
