package adexpr

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Func is the callable wrapped by a Function operator. Call receives the
// parsed argument values and returns the result; what the result carries
// (a plain value, a value-derivative pair encoded by the caller's
// conventions, ...) is up to the implementation.
type Func interface {
	// Call applies the function to a set of argument values. len(args) is a
	// count for which CanCall returned true.
	Call(args []Value) (Value, error)

	// CanCall reports whether the function accepts n arguments. The equation
	// parser uses this to validate call sites.
	CanCall(n int) bool
}

// Monadic adapts a float64 kernel into a Func applied elementwise over
// scalar and vector arguments. A NaN result or a matrix argument yields a
// *DomainError.
func Monadic(name string, f func(float64) float64) Func {
	return monadic{name: name, f: f}
}

type monadic struct {
	name string
	f    func(float64) float64
}

func (m monadic) CanCall(n int) bool { return n == 1 }

func (m monadic) Call(args []Value) (Value, error) {
	switch a := args[0].(type) {
	case Num:
		r := m.f(float64(a))
		if math.IsNaN(r) {
			return nil, &DomainError{Func: m.name, X: float64(a)}
		}
		return Num(r), nil
	case Vec:
		out := mat.NewVecDense(a.Len(), nil)
		for i := 0; i < a.Len(); i++ {
			r := m.f(a.AtVec(i))
			if math.IsNaN(r) {
				return nil, &DomainError{Func: m.name, X: a.AtVec(i)}
			}
			out.SetVec(i, r)
		}
		return Vec{out}, nil
	default:
		return nil, &DomainError{Func: m.name, Kind: a.valueKind()}
	}
}

// Dyadic adapts a two-argument float64 kernel into a Func. Vector arguments
// combine elementwise; a scalar argument broadcasts against a vector one.
func Dyadic(name string, f func(x, y float64) float64) Func {
	return dyadic{name: name, f: f}
}

type dyadic struct {
	name string
	f    func(x, y float64) float64
}

func (d dyadic) CanCall(n int) bool { return n == 2 }

func (d dyadic) Call(args []Value) (Value, error) {
	nx, okx := broadcastLen(args[0])
	ny, oky := broadcastLen(args[1])
	if !okx {
		return nil, &DomainError{Func: d.name, Kind: args[0].valueKind()}
	}
	if !oky {
		return nil, &DomainError{Func: d.name, Kind: args[1].valueKind()}
	}
	if nx > 1 && ny > 1 && nx != ny {
		return nil, &AlgebraError{Op: OpEvaluate, Left: args[0].valueKind(), Right: args[1].valueKind()}
	}
	n := max(nx, ny)
	if n == 1 {
		r := d.f(broadcastAt(args[0], 0), broadcastAt(args[1], 0))
		if math.IsNaN(r) {
			return nil, &DomainError{Func: d.name, X: broadcastAt(args[0], 0)}
		}
		return Num(r), nil
	}
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x := broadcastAt(args[0], i)
		r := d.f(x, broadcastAt(args[1], i))
		if math.IsNaN(r) {
			return nil, &DomainError{Func: d.name, X: x}
		}
		out.SetVec(i, r)
	}
	return Vec{out}, nil
}

// broadcastLen returns the broadcast length of a scalar or vector value.
func broadcastLen(v Value) (int, bool) {
	switch v := v.(type) {
	case Num:
		return 1, true
	case Vec:
		return v.Len(), true
	}
	return 0, false
}

// broadcastAt indexes a scalar or vector value, broadcasting scalars.
func broadcastAt(v Value, i int) float64 {
	switch v := v.(type) {
	case Num:
		return float64(v)
	case Vec:
		return v.AtVec(i)
	}
	panic("adexpr: broadcastAt on " + v.valueKind())
}

// globalfuncs is the default function set available to the equation parser.
var globalfuncs = map[string]*Function{
	"exp":  NewFunction("exp", Monadic("exp", math.Exp)),
	"ln":   NewFunction("ln", Monadic("ln", math.Log)),
	"log":  NewFunction("log", Monadic("log", math.Log10)),
	"sqrt": NewFunction("sqrt", Monadic("sqrt", math.Sqrt)),
	"abs":  NewFunction("abs", Monadic("abs", math.Abs)),
}

// DomainError is an error from applying a function to a value outside its
// domain, or to a value kind it has no elementwise meaning for.
type DomainError struct {
	// Func is the name of the function.
	Func string
	// X is the offending argument, when the argument was numeric.
	X float64
	// Kind is the offending value kind, when the argument was not numeric.
	Kind string
}

func (err *DomainError) Error() string {
	if err.Kind != "" {
		return "cannot apply " + err.Func + " to a " + err.Kind
	}
	return err.Func + " of " + strconv.FormatFloat(err.X, 'g', -1, 64) + " is not defined"
}
