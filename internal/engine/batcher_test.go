package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/dashgrid/internal/dashboard"
)

// testExecution builds an execution whose query texts equal their
// identifiers, so the fake source can be keyed by identifier.
func testExecution(src QuerySource, concurrency int, ids ...string) *execution {
	queries := make(map[string]string, len(ids))
	for _, id := range ids {
		queries[id] = id
	}
	return newExecution(
		New(src, evalFunc(func(string, map[string]float64) (float64, error) { return 0, nil }), WithConcurrency(concurrency)),
		&dashboard.Config{Queries: queries},
	)
}

func drain(ch <-chan queryResult) map[string]float64 {
	out := make(map[string]float64)
	for qr := range ch {
		out[qr.id] = qr.value
	}
	return out
}

func TestBatcherConcurrencyCeiling(t *testing.T) {
	ids := make([]string, 10)
	values := make(map[string]float64, len(ids))
	for i := range ids {
		ids[i] = fmt.Sprintf("q%d", i)
		values[ids[i]] = float64(i)
	}

	src := newFakeSource(values)
	src.delay = 10 * time.Millisecond
	x := testExecution(src, 3, ids...)

	results := drain(x.runQueries(context.Background(), ids))

	assert.Len(t, results, 10)
	assert.LessOrEqual(t, src.maxInFlight(), 3, "in-flight work must never exceed the ceiling")
	for _, id := range ids {
		assert.Equal(t, values[id], results[id])
	}
}

func TestBatcherCeilingOfOneIsSequential(t *testing.T) {
	src := newFakeSource(map[string]float64{"a": 1, "b": 2, "c": 3})
	src.delay = 5 * time.Millisecond
	x := testExecution(src, 1, "a", "b", "c")

	results := drain(x.runQueries(context.Background(), []string{"a", "b", "c"}))

	assert.Len(t, results, 3)
	assert.Equal(t, 1, src.maxInFlight())
}

func TestBatcherCeilingAboveQueryCount(t *testing.T) {
	src := newFakeSource(map[string]float64{"a": 1, "b": 2, "c": 3})
	src.delay = 5 * time.Millisecond
	x := testExecution(src, 100, "a", "b", "c")

	results := drain(x.runQueries(context.Background(), []string{"a", "b", "c"}))

	assert.Len(t, results, 3)
	assert.LessOrEqual(t, src.maxInFlight(), 3)
}

func TestBatcherFailureExcludesOnlyThatQuery(t *testing.T) {
	src := newFakeSource(map[string]float64{"a": 1, "b": 2, "c": 3, "d": 4})
	src.errs["b"] = fmt.Errorf("datastore exploded")
	x := testExecution(src, 2, "a", "b", "c", "d")

	results := drain(x.runQueries(context.Background(), []string{"a", "b", "c", "d"}))

	assert.Len(t, results, 3)
	assert.NotContains(t, results, "b")
	assert.Equal(t, 1, src.callCount("c"), "later batches still run after a failure")
	assert.Equal(t, 1, src.callCount("d"))
}

func TestBatcherEmptyInput(t *testing.T) {
	src := newFakeSource(nil)
	x := testExecution(src, 4)

	results := drain(x.runQueries(context.Background(), nil))

	assert.Empty(t, results)
	assert.Equal(t, 0, src.totalCalls())
}

func TestBatcherCancellationStopsNewBatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// cancelingSource cancels the run from inside the first query, so the
	// first batch drains but no further batch starts.
	src := &cancelingSource{cancel: cancel}
	x := testExecution(src, 1, "a", "b", "c")

	drain(x.runQueries(ctx, []string{"a", "b", "c"}))

	assert.Equal(t, 1, src.total(), "batches after cancellation must not start")
}

type cancelingSource struct {
	cancel context.CancelFunc

	mu    sync.Mutex
	calls int
}

func (s *cancelingSource) Query(ctx context.Context, query string) (float64, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	s.cancel()
	return 1, nil
}

func (s *cancelingSource) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestBatcherPreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := newFakeSource(map[string]float64{"a": 1})
	x := testExecution(src, 1, "a")

	results := drain(x.runQueries(ctx, []string{"a"}))

	require.Empty(t, results)
	assert.Equal(t, 0, src.totalCalls())
}
