package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadVariables reads a YAML file of variable bindings. Values may be any
// scalar; they are stringified before substitution.
func loadVariables(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading variables file: %w", err)
	}

	var bindings map[string]any
	if err := yaml.Unmarshal(raw, &bindings); err != nil {
		return nil, fmt.Errorf("parsing variables file %s: %w", path, err)
	}

	vars := make(map[string]string, len(bindings))
	for name, value := range bindings {
		vars[name] = fmt.Sprint(value)
	}
	return vars, nil
}
