// Package engine is the computational core of dashgrid. It turns a
// dashboard definition into numeric results in two layers: raw queries are
// dispatched against an injected QuerySource with a hard concurrency
// ceiling, and derived metrics are resolved by repeatedly sweeping the
// pending set until every metric whose dependencies are satisfied has been
// evaluated (an iterative fixpoint rather than an explicit topological
// sort, so declaration order and forward references never matter).
//
// Each Execute or Stream call owns its own execution state: a resolved
// value map shared across the call's panels, so a value computed for one
// panel stays visible to later panels, and a per-title result cache that
// guarantees a panel is computed at most once per call. A single goroutine
// owns both; the only fan-out is the batcher's per-batch query goroutines,
// joined before the next batch starts. Engines are safe to reuse because
// no state outlives a call.
//
// A sweep that makes no progress while metrics remain pending means the
// dependency set can never be satisfied (a cycle, a typo, or a query that
// failed upstream); the resolver reports that as an UnresolvableError
// instead of spinning.
package engine
