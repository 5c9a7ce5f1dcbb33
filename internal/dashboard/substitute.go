package dashboard

import (
	"fmt"
	"regexp"
	"sort"
)

// tokenPattern matches {{name}} variable tokens inside query texts and
// metric expressions.
var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Substitute replaces every {{name}} token in the config's query texts and
// metric expressions with its binding from vars and returns the substituted
// copy. The receiver is never mutated.
//
// It fails with a MissingVariablesError naming all declared variables absent
// from vars, or with an UndeclaredVariableError when a token references a
// name that has no binding. A config without tokens passes through
// unchanged, so the operation is idempotent.
func (c *Config) Substitute(vars map[string]string) (*Config, error) {
	var missing []string
	for _, name := range c.Variables {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingVariablesError{Names: missing}
	}

	out := c.clone()
	for id, text := range out.Queries {
		substituted, err := substituteTokens(text, vars, fmt.Sprintf("query %q", id))
		if err != nil {
			return nil, err
		}
		out.Queries[id] = substituted
	}
	for pi := range out.Panels {
		for mi := range out.Panels[pi].Metrics {
			m := &out.Panels[pi].Metrics[mi]
			substituted, err := substituteTokens(m.Expression, vars, fmt.Sprintf("metric %q", m.ID))
			if err != nil {
				return nil, err
			}
			m.Expression = substituted
		}
	}
	return out, nil
}

// MaskTokens replaces every {{name}} token with the literal 0, yielding a
// string that parses as an expression before substitution has run. The
// loader relies on this for dependency inference.
func MaskTokens(s string) string {
	return tokenPattern.ReplaceAllString(s, "0")
}

func substituteTokens(s string, vars map[string]string, where string) (string, error) {
	var undeclared *UndeclaredVariableError
	result := tokenPattern.ReplaceAllStringFunc(s, func(token string) string {
		name := tokenPattern.FindStringSubmatch(token)[1]
		value, ok := vars[name]
		if !ok {
			if undeclared == nil {
				undeclared = &UndeclaredVariableError{Name: name, Where: where}
			}
			return token
		}
		return value
	})
	if undeclared != nil {
		return "", undeclared
	}
	return result, nil
}
