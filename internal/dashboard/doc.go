// Package dashboard holds the data model of a dashboard definition: the
// query map, the ordered panels with their metrics, and the result types
// produced by an execution.
//
// Queries and metrics share one identifier namespace. A metric's DependsOn
// list references query identifiers and/or other metric identifiers; the
// engine resolves that implicit graph at execution time. The package also
// implements the variable substitution preprocessor, a pure step applied to
// a Config before it ever reaches the engine.
package dashboard
