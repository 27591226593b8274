package adexpr

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Add composes a + b. Operands may be Operators or raw values: numbers wrap
// as Scalar, []float64 and *mat.VecDense as Array, mat.Matrix as Matrix.
// Anything else panics with a *TypeError, and a bare *Function in either
// position panics with a *FunctionComposeError. Neither operand is modified;
// the result is a fresh composition node with children [a, b].
func Add(a, b any) Operator { return compose(OpAdd, a, b) }

// Sub composes a - b. Children keep left-to-right order, so b - a is spelled
// Sub(b, a). See Add for operand handling.
func Sub(a, b any) Operator { return compose(OpSub, a, b) }

// Mul composes a * b. See Add for operand handling.
func Mul(a, b any) Operator { return compose(OpMul, a, b) }

// Div composes a / b. See Add for operand handling.
func Div(a, b any) Operator { return compose(OpDiv, a, b) }

func compose(op Operation, a, b any) Operator {
	return &composite{tree: Tree{Op: op, Children: []Operator{operand(a), operand(b)}}}
}

// operand coerces a composition operand, rejecting bare functions.
func operand(v any) Operator {
	if f, ok := v.(*Function); ok {
		panic(&FunctionComposeError{Name: f.name})
	}
	n, ok := coerce(v)
	if !ok {
		panic(&TypeError{Value: v})
	}
	return n
}

// coerce wraps a raw value as a leaf operator. Operators pass through
// unchanged.
func coerce(v any) (Operator, bool) {
	switch v := v.(type) {
	case Operator:
		return v, true
	case float64:
		return NewScalar(v), true
	case int:
		return NewScalar(float64(v)), true
	case Num:
		return NewScalar(float64(v)), true
	case []float64:
		return NewArray(v), true
	case *mat.VecDense:
		return NewArrayVec(v), true
	case Vec:
		return NewArrayVec(v.VecDense), true
	case mat.Matrix:
		return NewMatrix(v), true
	default:
		return nil, false
	}
}

// TypeError reports a composition operand that is not an Operator and cannot
// be wrapped as one.
type TypeError struct {
	// Value is the offending operand.
	Value any
}

func (err *TypeError) Error() string {
	return fmt.Sprintf("cannot use %v (type %T) as an operator", err.Value, err.Value)
}

// FunctionComposeError reports arithmetic composition attempted on a bare
// Function. Functions take part in algebra only through the node returned by
// their Call method.
type FunctionComposeError struct {
	// Name is the function's name.
	Name string
}

func (err *FunctionComposeError) Error() string {
	return "function " + err.Name + " cannot be composed directly; call it first"
}
