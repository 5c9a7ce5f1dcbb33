package dashboard

import (
	"fmt"
	"strings"
)

// MissingVariablesError reports every declared variable name absent from the
// bindings handed to Substitute, so the caller can fix all of them at once.
type MissingVariablesError struct {
	Names []string
}

func (e *MissingVariablesError) Error() string {
	return fmt.Sprintf("missing variables: %s", strings.Join(e.Names, ", "))
}

// UndeclaredVariableError reports a {{name}} token encountered during
// substitution whose name has no binding.
type UndeclaredVariableError struct {
	Name  string
	Where string
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("%s references undeclared variable %q", e.Where, e.Name)
}
