package engine

import (
	"context"
	"sync"

	"github.com/vk/dashgrid/internal/ctxlog"
)

// queryResult is one settled query: its identifier and value.
type queryResult struct {
	id    string
	value float64
}

// runQueries executes the given query identifiers against the engine's
// QuerySource and returns a lazily produced, once-iterable sequence of the
// successful results.
//
// Identifiers are partitioned positionally into batches of at most the
// configured concurrency. All queries of a batch run concurrently and the
// whole batch settles before the next one starts, so in-flight work never
// exceeds the ceiling. Within a batch, results surface in completion
// order. A failed query is logged and excluded; it aborts nothing.
// Cancellation stops new batches from starting and lets in-flight queries
// drain.
func (x *execution) runQueries(ctx context.Context, ids []string) <-chan queryResult {
	n := x.engine.concurrency
	out := make(chan queryResult)

	go func() {
		defer close(out)
		logger := ctxlog.FromContext(ctx)

		for start := 0; start < len(ids); start += n {
			if ctx.Err() != nil {
				logger.Warn("Context canceled, not starting remaining query batches.",
					"remaining", len(ids)-start)
				return
			}

			batch := ids[start:min(start+n, len(ids))]
			var wg sync.WaitGroup
			for _, id := range batch {
				wg.Add(1)
				go func(id string) {
					defer wg.Done()
					value, err := x.engine.source.Query(ctx, x.cfg.Queries[id])
					if err != nil {
						logger.Warn("Query failed, identifier excluded from results.",
							"id", id, "error", err)
						return
					}
					select {
					case out <- queryResult{id: id, value: value}:
					case <-ctx.Done():
					}
				}(id)
			}
			wg.Wait()
		}
	}()

	return out
}
