package engine

import (
	"context"

	"github.com/vk/dashgrid/internal/ctxlog"
	"github.com/vk/dashgrid/internal/dashboard"
)

// resolvePanel consumes query results as they settle, writing each into the
// shared resolved map, and sweeps the panel's pending metrics to a fixpoint:
// every sweep evaluates and removes each metric whose dependencies are all
// resolved, with the full resolved map as bindings. Values are returned in
// resolution order, so a metric always appears after its dependencies.
//
// A post-drain sweep that resolves nothing while metrics remain pending
// fails with an UnresolvableError naming the stuck metrics. An evaluator
// failure aborts immediately with an EvalError.
func (x *execution) resolvePanel(ctx context.Context, p dashboard.Panel, results <-chan queryResult) ([]dashboard.Value, error) {
	logger := ctxlog.FromContext(ctx).With("panel", p.Title)

	var out []dashboard.Value
	pending := make([]dashboard.Metric, 0, len(p.Metrics))
	for _, m := range p.Metrics {
		if v, ok := x.resolved[m.ID]; ok {
			// Already produced by an earlier panel; report the existing
			// value, never assign an identifier twice.
			out = append(out, dashboard.Value{ID: m.ID, Value: v})
			continue
		}
		pending = append(pending, m)
	}

	sweep := func() (int, error) {
		progress := 0
		remaining := pending[:0]
		for _, m := range pending {
			if !x.eligible(m) {
				remaining = append(remaining, m)
				continue
			}
			value, err := x.engine.eval.Evaluate(m.Expression, x.resolved)
			if err != nil {
				return 0, &EvalError{Metric: m.ID, Err: err}
			}
			x.resolved[m.ID] = value
			out = append(out, dashboard.Value{ID: m.ID, Value: value})
			logger.Debug("Metric resolved.", "id", m.ID, "value", value)
			progress++
		}
		pending = remaining
		return progress, nil
	}

	for qr := range results {
		x.resolved[qr.id] = qr.value
		out = append(out, dashboard.Value{ID: qr.id, Value: qr.value})
		if _, err := sweep(); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for len(pending) > 0 {
		progress, err := sweep()
		if err != nil {
			return nil, err
		}
		if progress == 0 {
			stuck := make([]string, len(pending))
			for i, m := range pending {
				stuck[i] = m.ID
			}
			return nil, &UnresolvableError{Panel: p.Title, Metrics: stuck}
		}
	}
	return out, nil
}

// eligible reports whether every dependency of m is resolved.
func (x *execution) eligible(m dashboard.Metric) bool {
	for _, dep := range m.DependsOn {
		if _, ok := x.resolved[dep]; !ok {
			return false
		}
	}
	return true
}
