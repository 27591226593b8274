package adexpr_test

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/mdgrid/adexpr"
)

func TestMonadic(t *testing.T) {
	abs := adexpr.Monadic("abs", math.Abs)
	if !abs.CanCall(1) {
		t.Error("monadic function rejects one argument")
	}
	if abs.CanCall(0) || abs.CanCall(2) {
		t.Error("monadic function accepts wrong arities")
	}

	t.Run("scalar", func(t *testing.T) {
		v, err := abs.Call([]adexpr.Value{adexpr.Num(-3)})
		if err != nil {
			t.Fatal(err)
		}
		if num(t, v) != 3 {
			t.Errorf("wrong result: got %v", v)
		}
	})
	t.Run("vector", func(t *testing.T) {
		v, err := abs.Call([]adexpr.Value{adexpr.NewVec([]float64{-1, 2, -3})})
		if err != nil {
			t.Fatal(err)
		}
		if got := vec(t, v); !eqvec(got, []float64{1, 2, 3}) {
			t.Errorf("wrong result: got %v", got)
		}
	})
	t.Run("domain", func(t *testing.T) {
		sqrt := adexpr.Monadic("sqrt", math.Sqrt)
		_, err := sqrt.Call([]adexpr.Value{adexpr.Num(-1)})
		var de *adexpr.DomainError
		if !errors.As(err, &de) {
			t.Fatalf("want DomainError, got %v", err)
		}
		if de.Func != "sqrt" || de.X != -1 {
			t.Errorf("wrong error detail: %+v", de)
		}
	})
	t.Run("domain-in-vector", func(t *testing.T) {
		ln := adexpr.Monadic("ln", math.Log)
		_, err := ln.Call([]adexpr.Value{adexpr.NewVec([]float64{1, -1})})
		var de *adexpr.DomainError
		if !errors.As(err, &de) {
			t.Fatalf("want DomainError, got %v", err)
		}
	})
	t.Run("matrix", func(t *testing.T) {
		m, err := adexpr.NewMatrix(mat.NewDense(1, 1, []float64{1})).Parse(adexpr.StaticContext{})
		if err != nil {
			t.Fatal(err)
		}
		_, err = abs.Call([]adexpr.Value{m})
		var de *adexpr.DomainError
		if !errors.As(err, &de) {
			t.Fatalf("want DomainError, got %v", err)
		}
		if de.Kind == "" {
			t.Errorf("error does not name the value kind: %+v", de)
		}
	})
}

func TestDyadic(t *testing.T) {
	pow := adexpr.Dyadic("pow", math.Pow)
	if !pow.CanCall(2) {
		t.Error("dyadic function rejects two arguments")
	}
	if pow.CanCall(1) || pow.CanCall(3) {
		t.Error("dyadic function accepts wrong arities")
	}

	t.Run("scalars", func(t *testing.T) {
		v, err := pow.Call([]adexpr.Value{adexpr.Num(2), adexpr.Num(10)})
		if err != nil {
			t.Fatal(err)
		}
		if num(t, v) != 1024 {
			t.Errorf("wrong result: got %v", v)
		}
	})
	t.Run("vectors", func(t *testing.T) {
		v, err := pow.Call([]adexpr.Value{adexpr.NewVec([]float64{2, 3}), adexpr.NewVec([]float64{3, 2})})
		if err != nil {
			t.Fatal(err)
		}
		if got := vec(t, v); !eqvec(got, []float64{8, 9}) {
			t.Errorf("wrong result: got %v", got)
		}
	})
	t.Run("broadcast-left", func(t *testing.T) {
		v, err := pow.Call([]adexpr.Value{adexpr.Num(2), adexpr.NewVec([]float64{1, 2, 3})})
		if err != nil {
			t.Fatal(err)
		}
		if got := vec(t, v); !eqvec(got, []float64{2, 4, 8}) {
			t.Errorf("wrong result: got %v", got)
		}
	})
	t.Run("broadcast-right", func(t *testing.T) {
		v, err := pow.Call([]adexpr.Value{adexpr.NewVec([]float64{1, 2, 3}), adexpr.Num(2)})
		if err != nil {
			t.Fatal(err)
		}
		if got := vec(t, v); !eqvec(got, []float64{1, 4, 9}) {
			t.Errorf("wrong result: got %v", got)
		}
	})
	t.Run("length-mismatch", func(t *testing.T) {
		_, err := pow.Call([]adexpr.Value{adexpr.NewVec([]float64{1, 2}), adexpr.NewVec([]float64{1, 2, 3})})
		var ae *adexpr.AlgebraError
		if !errors.As(err, &ae) {
			t.Fatalf("want AlgebraError, got %v", err)
		}
	})
}

func TestDefaultFuncs(t *testing.T) {
	// The defaults must all be reachable through the equation parser and
	// agree with the math package on a plain argument.
	cases := []struct {
		src  string
		want float64
	}{
		{"exp(1)", math.E},
		{"ln(exp(2))", 2},
		{"log(1000)", 3},
		{"sqrt(16)", 4},
		{"abs(0 - 5)", 5},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			expr, err := adexpr.ParseString(c.src)
			if err != nil {
				t.Fatal(err)
			}
			v, err := expr.Eval(adexpr.StaticContext{})
			if err != nil {
				t.Fatal(err)
			}
			if got := num(t, v); math.Abs(got-c.want) > 1e-12 {
				t.Errorf("wrong result: want %g, got %g", c.want, got)
			}
		})
	}
}
