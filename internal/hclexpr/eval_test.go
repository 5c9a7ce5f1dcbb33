package hclexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	eval := New()
	bindings := map[string]float64{"a": 1, "b": 2, "c": -3.5}

	tests := []struct {
		expression string
		want       float64
	}{
		{"a + b", 3},
		{"a + b * 2", 5},
		{"(a + b) * 2", 6},
		{"b / a", 2},
		{"abs(c)", 3.5},
		{"min(a, b)", 1},
		{"max(a, b, abs(c))", 3.5},
		{"pow(b, 3)", 8},
		{"floor(abs(c))", 3},
		{"a > 0 ? a : b", 1},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := eval.Evaluate(tt.expression, bindings)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluateUnknownVariable(t *testing.T) {
	_, err := New().Evaluate("a + missing", map[string]float64{"a": 1})
	assert.Error(t, err)
}

func TestEvaluateParseError(t *testing.T) {
	_, err := New().Evaluate("a +", map[string]float64{"a": 1})
	assert.ErrorContains(t, err, "parsing expression")
}

func TestEvaluateNonNumericResult(t *testing.T) {
	_, err := New().Evaluate("a > b", map[string]float64{"a": 1, "b": 2})
	assert.ErrorContains(t, err, "want a number")
}
