package units

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

var (
	errNotNumeric = errors.New("expression does not evaluate to a number")
	errNotFinite  = errors.New("expression is not finite")
)

// constants visible to scale and bias expressions
var expressionEnv = map[string]any{
	"pi": math.Pi,
	"e":  math.E,
}

// Evaluate computes a numeric scale or bias expression such as "1 / 3.28084"
// or "1000 * 1000".
func Evaluate(src string) (float64, error) {
	program, err := expr.Compile(src, expr.Env(expressionEnv))
	if err != nil {
		return 0, err
	}
	out, err := expr.Run(program, expressionEnv)
	if err != nil {
		return 0, err
	}
	var v float64
	switch n := out.(type) {
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case float64:
		v = n
	default:
		return 0, fmt.Errorf("%w: got %T", errNotNumeric, out)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}
