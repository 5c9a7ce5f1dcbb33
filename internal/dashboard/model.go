package dashboard

import (
	"fmt"
	"maps"
	"slices"
)

// Metric is a derived numeric value computed from an expression over raw
// query results and/or other metrics.
type Metric struct {
	ID         string
	Expression string
	DependsOn  []string
}

// Panel is a titled grouping of metrics presented together. The title must
// be unique across a dashboard; it doubles as the result cache key.
type Panel struct {
	Title   string
	Metrics []Metric
}

// Config is a full dashboard definition: the raw query texts keyed by
// identifier, the ordered panels, and the variable names the definition
// requires for substitution.
type Config struct {
	Queries   map[string]string
	Panels    []Panel
	Variables []string
}

// Value is one resolved identifier and its numeric result.
type Value struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}

// PanelResult is the output of one panel: its values in resolution order
// (query results as they settled, then metrics as they became computable).
type PanelResult struct {
	Title  string  `json:"panel"`
	Values []Value `json:"results"`
}

// Validate checks the static invariants of a dashboard definition: panel
// titles are unique, the query/metric identifier namespace has no
// collisions, and every dependency references a known identifier. Cycles
// are a runtime concern of the resolver, not checked here.
func (c *Config) Validate() error {
	ids := make(map[string]struct{}, len(c.Queries))
	for id := range c.Queries {
		ids[id] = struct{}{}
	}

	titles := make(map[string]struct{}, len(c.Panels))
	for _, p := range c.Panels {
		if _, dup := titles[p.Title]; dup {
			return fmt.Errorf("duplicate panel title %q", p.Title)
		}
		titles[p.Title] = struct{}{}

		for _, m := range p.Metrics {
			if _, dup := ids[m.ID]; dup {
				return fmt.Errorf("panel %q: identifier %q is already in use", p.Title, m.ID)
			}
			ids[m.ID] = struct{}{}
		}
	}

	for _, p := range c.Panels {
		for _, m := range p.Metrics {
			for _, dep := range m.DependsOn {
				if _, ok := ids[dep]; !ok {
					return fmt.Errorf("metric %q depends on unknown identifier %q", m.ID, dep)
				}
			}
		}
	}
	return nil
}

// clone returns a deep copy of the config so substitution never mutates its
// input.
func (c *Config) clone() *Config {
	out := &Config{
		Queries:   maps.Clone(c.Queries),
		Panels:    make([]Panel, len(c.Panels)),
		Variables: slices.Clone(c.Variables),
	}
	for i, p := range c.Panels {
		cp := Panel{Title: p.Title, Metrics: make([]Metric, len(p.Metrics))}
		for j, m := range p.Metrics {
			cp.Metrics[j] = Metric{
				ID:         m.ID,
				Expression: m.Expression,
				DependsOn:  slices.Clone(m.DependsOn),
			}
		}
		out.Panels[i] = cp
	}
	return out
}
