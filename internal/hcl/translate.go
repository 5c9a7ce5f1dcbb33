package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/dashgrid/internal/dashboard"
	"github.com/vk/dashgrid/internal/schema"
)

// translate converts the HCL-specific schema into the agnostic model.
func (l *Loader) translate(root *schema.Dashboard) (*dashboard.Config, error) {
	cfg := &dashboard.Config{
		Queries:   make(map[string]string, len(root.Queries)),
		Variables: root.Variables,
	}

	for _, q := range root.Queries {
		if _, dup := cfg.Queries[q.ID]; dup {
			return nil, fmt.Errorf("duplicate query %q", q.ID)
		}
		cfg.Queries[q.ID] = q.Text
	}

	for _, p := range root.Panels {
		panel := dashboard.Panel{Title: p.Title, Metrics: make([]dashboard.Metric, 0, len(p.Metrics))}
		for _, m := range p.Metrics {
			deps := m.DependsOn
			if len(deps) == 0 {
				inferred, err := inferDependencies(m.Expression)
				if err != nil {
					return nil, fmt.Errorf("metric %q: %w", m.ID, err)
				}
				deps = inferred
			}
			panel.Metrics = append(panel.Metrics, dashboard.Metric{
				ID:         m.ID,
				Expression: m.Expression,
				DependsOn:  deps,
			})
		}
		cfg.Panels = append(cfg.Panels, panel)
	}
	return cfg, nil
}

// inferDependencies extracts the identifiers an expression references, for
// metrics that omit depends_on. Sorted for a deterministic order.
func inferDependencies(expression string) ([]string, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(dashboard.MaskTokens(expression)), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing expression: %w", diags)
	}

	seen := make(map[string]struct{})
	var deps []string
	for _, traversal := range expr.Variables() {
		name := traversal.RootName()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		deps = append(deps, name)
	}
	sort.Strings(deps)
	return deps, nil
}
