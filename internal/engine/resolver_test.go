package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/dashgrid/internal/dashboard"
	"github.com/vk/dashgrid/internal/hclexpr"
)

// feed returns a closed channel preloaded with the given results, standing
// in for a finished batcher run.
func feed(results ...queryResult) <-chan queryResult {
	ch := make(chan queryResult, len(results))
	for _, qr := range results {
		ch <- qr
	}
	close(ch)
	return ch
}

func resolverExecution(eval Evaluator) *execution {
	return newExecution(New(nil, eval), &dashboard.Config{})
}

func TestResolverForwardReferences(t *testing.T) {
	// Metrics declared most-derived first; the fixpoint must not care.
	panel := dashboard.Panel{
		Title: "P",
		Metrics: []dashboard.Metric{
			{ID: "d", Expression: "c * 10", DependsOn: []string{"c"}},
			{ID: "c", Expression: "a + b", DependsOn: []string{"a", "b"}},
		},
	}
	x := resolverExecution(hclexpr.New())

	values, err := x.resolvePanel(context.Background(), panel, feed(
		queryResult{id: "a", value: 1},
		queryResult{id: "b", value: 2},
	))
	require.NoError(t, err)

	byID := make(map[string]float64, len(values))
	order := make(map[string]int, len(values))
	for i, v := range values {
		byID[v.ID] = v.Value
		order[v.ID] = i
	}
	assert.Equal(t, map[string]float64{"a": 1, "b": 2, "c": 3, "d": 30}, byID)
	assert.Less(t, order["c"], order["d"], "a metric resolves after its dependencies")
}

func TestResolverCycleTerminatesWithError(t *testing.T) {
	panel := dashboard.Panel{
		Title: "P",
		Metrics: []dashboard.Metric{
			{ID: "x", Expression: "y + 1", DependsOn: []string{"y"}},
			{ID: "y", Expression: "x + 1", DependsOn: []string{"x"}},
		},
	}
	x := resolverExecution(hclexpr.New())

	_, err := x.resolvePanel(context.Background(), panel, feed())

	var unresolvable *UnresolvableError
	require.ErrorAs(t, err, &unresolvable)
	assert.Equal(t, "P", unresolvable.Panel)
	assert.ElementsMatch(t, []string{"x", "y"}, unresolvable.Metrics)
}

func TestResolverStarvedByFailedQuery(t *testing.T) {
	// "b" never arrives (its query failed upstream), so "sum" can never
	// become eligible.
	panel := dashboard.Panel{
		Title: "P",
		Metrics: []dashboard.Metric{
			{ID: "sum", Expression: "a + b", DependsOn: []string{"a", "b"}},
		},
	}
	x := resolverExecution(hclexpr.New())

	_, err := x.resolvePanel(context.Background(), panel, feed(queryResult{id: "a", value: 1}))

	var unresolvable *UnresolvableError
	require.ErrorAs(t, err, &unresolvable)
	assert.Equal(t, []string{"sum"}, unresolvable.Metrics)
}

func TestResolverEvaluatorFailureAborts(t *testing.T) {
	panel := dashboard.Panel{
		Title: "P",
		Metrics: []dashboard.Metric{
			{ID: "m", Expression: "a /", DependsOn: []string{"a"}},
		},
	}
	x := resolverExecution(evalFunc(func(string, map[string]float64) (float64, error) {
		return 0, fmt.Errorf("syntax error")
	}))

	_, err := x.resolvePanel(context.Background(), panel, feed(queryResult{id: "a", value: 1}))

	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "m", evalErr.Metric)
}

func TestResolverEmitsAlreadyResolvedMetricWithoutReevaluation(t *testing.T) {
	evaluations := 0
	x := resolverExecution(evalFunc(func(string, map[string]float64) (float64, error) {
		evaluations++
		return 42, nil
	}))
	x.resolved["m"] = 7 // produced by an earlier panel

	panel := dashboard.Panel{
		Title:   "P",
		Metrics: []dashboard.Metric{{ID: "m", Expression: "a", DependsOn: []string{"a"}}},
	}

	values, err := x.resolvePanel(context.Background(), panel, feed())
	require.NoError(t, err)

	require.Len(t, values, 1)
	assert.Equal(t, dashboard.Value{ID: "m", Value: 7}, values[0])
	assert.Equal(t, 0, evaluations, "an identifier is never assigned twice")
}

func TestResolverNoMetrics(t *testing.T) {
	x := resolverExecution(hclexpr.New())

	values, err := x.resolvePanel(context.Background(), dashboard.Panel{Title: "P"}, feed(
		queryResult{id: "a", value: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, []dashboard.Value{{ID: "a", Value: 1}}, values)
}
