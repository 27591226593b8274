package adexpr_test

import (
	"testing"

	"github.com/mdgrid/adexpr"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("exp(x) / (x - 1)")
	f.Add("1×2")
	f.Fuzz(func(t *testing.T, s string) {
		expr, err := adexpr.ParseString(s, adexpr.Bind("x", adexpr.NewScalar(1)))
		if err != nil {
			return
		}
		expr.Eval(adexpr.StaticContext{})
	})
}
