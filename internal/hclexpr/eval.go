// Package hclexpr implements the engine's Evaluator capability on top of
// HCL expression syntax and the cty value system. Bindings become number
// variables in the evaluation context, alongside a small set of arithmetic
// functions.
package hclexpr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Evaluator evaluates metric expressions. Safe for concurrent use; it holds
// only the immutable function table.
type Evaluator struct {
	funcs map[string]function.Function
}

// New returns an Evaluator with the built-in arithmetic functions.
func New() *Evaluator {
	return &Evaluator{funcs: map[string]function.Function{
		"abs":   stdlib.AbsoluteFunc,
		"ceil":  stdlib.CeilFunc,
		"floor": stdlib.FloorFunc,
		"log":   stdlib.LogFunc,
		"max":   stdlib.MaxFunc,
		"min":   stdlib.MinFunc,
		"pow":   stdlib.PowFunc,
	}}
}

// Evaluate parses expression and evaluates it with bindings exposed as
// number variables. The result must be a single number.
func (e *Evaluator) Evaluate(expression string, bindings map[string]float64) (float64, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(expression), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return 0, fmt.Errorf("parsing expression: %w", diags)
	}

	vars := make(map[string]cty.Value, len(bindings))
	for name, value := range bindings {
		vars[name] = cty.NumberFloatVal(value)
	}

	val, diags := expr.Value(&hcl.EvalContext{Variables: vars, Functions: e.funcs})
	if diags.HasErrors() {
		return 0, fmt.Errorf("evaluating expression: %w", diags)
	}
	if val.IsNull() || val.Type() != cty.Number {
		return 0, fmt.Errorf("expression produced %s, want a number", val.Type().FriendlyName())
	}

	result, _ := val.AsBigFloat().Float64()
	return result, nil
}
