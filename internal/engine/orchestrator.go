package engine

import (
	"context"

	"github.com/vk/dashgrid/internal/ctxlog"
	"github.com/vk/dashgrid/internal/dashboard"
)

// execution is the per-call state of one dashboard run. resolved is the
// shared value map spanning all panels of the call; cache holds finished
// panel results by title. Both are owned by the single goroutine driving
// the execution and are discarded when the call ends.
type execution struct {
	engine   *Engine
	cfg      *dashboard.Config
	resolved map[string]float64
	cache    map[string]*dashboard.PanelResult
}

func newExecution(e *Engine, cfg *dashboard.Config) *execution {
	return &execution{
		engine:   e,
		cfg:      cfg,
		resolved: make(map[string]float64),
		cache:    make(map[string]*dashboard.PanelResult),
	}
}

// panel computes one panel's result, or returns the cached result if the
// title was already produced within this execution. Caching is load-bearing:
// recomputing would re-issue queries whose side effects are externally
// visible.
func (x *execution) panel(ctx context.Context, p dashboard.Panel) (*dashboard.PanelResult, error) {
	if res, ok := x.cache[p.Title]; ok {
		return res, nil
	}

	logger := ctxlog.FromContext(ctx).With("panel", p.Title)
	ids := x.missingQueries(p)
	logger.Debug("Panel needs queries.", "count", len(ids), "ids", ids)

	// A dedicated context releases in-flight batch goroutines when the
	// resolver aborts before draining the sequence.
	qctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := x.runQueries(qctx, ids)
	values, err := x.resolvePanel(ctx, p, results)
	if err != nil {
		return nil, err
	}

	res := &dashboard.PanelResult{Title: p.Title, Values: values}
	x.cache[p.Title] = res
	logger.Debug("Panel complete.", "values", len(values))
	return res, nil
}

// missingQueries returns, in first-reference order and without duplicates,
// the query identifiers this panel's metrics depend on that no earlier
// panel has already resolved. This is the minimal query subset for the
// panel.
func (x *execution) missingQueries(p dashboard.Panel) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, m := range p.Metrics {
		for _, dep := range m.DependsOn {
			if _, isQuery := x.cfg.Queries[dep]; !isQuery {
				continue
			}
			if _, done := x.resolved[dep]; done {
				continue
			}
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			ids = append(ids, dep)
		}
	}
	return ids
}
