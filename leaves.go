package adexpr

import (
	"strconv"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Scalar wraps a constant number as a leaf operator.
type Scalar struct {
	leaf
	val float64
}

// NewScalar wraps v.
func NewScalar(v float64) *Scalar { return &Scalar{val: v} }

// Value returns the wrapped number.
func (s *Scalar) Value() float64 { return s.val }

// Parse returns the wrapped number. The context is not consulted.
func (s *Scalar) Parse(ctx Context) (Value, error) { return Num(s.val), nil }

func (s *Scalar) String() string {
	return strconv.FormatFloat(s.val, 'g', -1, 64)
}

// Array wraps a constant dense vector as a leaf operator.
type Array struct {
	leaf
	vec *mat.VecDense
}

// NewArray wraps data without copying it.
func NewArray(data []float64) *Array {
	return &Array{vec: mat.NewVecDense(len(data), data)}
}

// NewArrayVec wraps an existing vector.
func NewArrayVec(v *mat.VecDense) *Array { return &Array{vec: v} }

// Len returns the vector length.
func (a *Array) Len() int { return a.vec.Len() }

// Parse returns the wrapped vector. The context is not consulted.
func (a *Array) Parse(ctx Context) (Value, error) { return Vec{a.vec}, nil }

func (a *Array) String() string {
	return "array(" + strconv.Itoa(a.vec.Len()) + ")"
}

// Matrix wraps a constant sparse matrix as a leaf operator.
type Matrix struct {
	leaf
	m *sparse.CSR
}

// NewMatrix wraps m, converting to CSR if it is not sparse already.
func NewMatrix(m mat.Matrix) *Matrix { return &Matrix{m: asCSR(m)} }

// Dims returns the matrix dimensions.
func (m *Matrix) Dims() (r, c int) { return m.m.Dims() }

// Parse returns the wrapped matrix. The context is not consulted.
func (m *Matrix) Parse(ctx Context) (Value, error) { return SpMat{m.m}, nil }

func (m *Matrix) String() string {
	r, c := m.m.Dims()
	return "matrix(" + strconv.Itoa(r) + "x" + strconv.Itoa(c) + ")"
}
