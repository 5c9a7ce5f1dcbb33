// Package schema defines the Go struct representation of the dashgrid HCL
// file format. These structs are decoded directly from HCL by the loader and
// translated into the agnostic dashboard model afterwards; nothing outside
// the loader should depend on them.
package schema

// Dashboard is the root of a .hcl dashboard file.
type Dashboard struct {
	// Variables lists the variable names the file requires; substitution
	// fails when any of them is unbound.
	Variables []string `hcl:"variables,optional"`
	Queries   []Query  `hcl:"query,block"`
	Panels    []Panel  `hcl:"panel,block"`
}

// Query declares one raw data-source query.
type Query struct {
	ID   string `hcl:"id,label"`
	Text string `hcl:"text"`
}

// Panel groups metrics under a title unique across the dashboard.
type Panel struct {
	Title   string   `hcl:"title,label"`
	Metrics []Metric `hcl:"metric,block"`
}

// Metric declares a derived value. depends_on may be omitted, in which case
// the loader infers dependencies from the variables referenced by the
// expression.
type Metric struct {
	ID         string   `hcl:"id,label"`
	Expression string   `hcl:"expression"`
	DependsOn  []string `hcl:"depends_on,optional"`
}
