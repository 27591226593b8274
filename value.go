package adexpr

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Value is a parsed numerical value: Num, Vec, SpMat, or a *Function for
// nodes whose evaluation is deferred to the tree walker. The set is closed.
type Value interface {
	valueKind() string
}

// Num is a scalar value.
type Num float64

func (Num) valueKind() string { return "scalar" }

// Vec is a dense vector value.
type Vec struct {
	*mat.VecDense
}

func (Vec) valueKind() string { return "vector" }

// NewVec wraps data in a vector value. The slice is used directly, not
// copied.
func NewVec(data []float64) Vec {
	return Vec{mat.NewVecDense(len(data), data)}
}

// SpMat is a sparse matrix value.
type SpMat struct {
	*sparse.CSR
}

func (SpMat) valueKind() string { return "matrix" }

// AlgebraError reports an operand combination the forward algebra has no
// meaning for, such as adding a scalar to a sparse matrix.
type AlgebraError struct {
	// Op is the operation that was attempted.
	Op Operation
	// Left and Right are the operand kinds.
	Left, Right string
}

func (err *AlgebraError) Error() string {
	return "cannot " + err.Op.String() + " " + err.Left + " and " + err.Right
}

// combine applies a binary operation tag to two evaluated child values,
// following the forward-mode conventions of the assembly algebra: scalars and
// vectors combine elementwise, while multiplication involving a matrix is a
// matrix product. Dimension mismatches panic in gonum, as they do for any
// direct use of mat.
func combine(op Operation, a, b Value) (Value, error) {
	switch a := a.(type) {
	case Num:
		switch b := b.(type) {
		case Num:
			return numNum(op, a, b)
		case Vec:
			return scalarVec(op, float64(a), b, false)
		case SpMat:
			if op == OpMul {
				return SpMat{scaleCSR(float64(a), b.CSR)}, nil
			}
		}
	case Vec:
		switch b := b.(type) {
		case Num:
			return scalarVec(op, float64(b), a, true)
		case Vec:
			return vecVec(op, a, b)
		}
	case SpMat:
		switch b := b.(type) {
		case Num:
			switch op {
			case OpMul:
				return SpMat{scaleCSR(float64(b), a.CSR)}, nil
			case OpDiv:
				return SpMat{scaleCSR(1/float64(b), a.CSR)}, nil
			}
		case Vec:
			if op == OpMul {
				r, _ := a.Dims()
				out := mat.NewVecDense(r, nil)
				out.MulVec(a.CSR, b.VecDense)
				return Vec{out}, nil
			}
		case SpMat:
			switch op {
			case OpAdd:
				return SpMat{addCSR(a.CSR, b.CSR, 1)}, nil
			case OpSub:
				return SpMat{addCSR(a.CSR, b.CSR, -1)}, nil
			case OpMul:
				var out sparse.CSR
				out.Mul(a.CSR, b.CSR)
				return SpMat{&out}, nil
			}
		}
	}
	return nil, &AlgebraError{Op: op, Left: a.valueKind(), Right: b.valueKind()}
}

func numNum(op Operation, a, b Num) (Value, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		return a / b, nil
	}
	return nil, &AlgebraError{Op: op, Left: a.valueKind(), Right: b.valueKind()}
}

// scalarVec combines a scalar with a vector elementwise. vecLeft indicates
// the vector was the left operand, which matters for sub and div.
func scalarVec(op Operation, s float64, v Vec, vecLeft bool) (Value, error) {
	n := v.Len()
	out := make([]float64, n)
	copy(out, v.RawVector().Data)
	switch op {
	case OpAdd:
		floats.AddConst(s, out)
	case OpSub:
		if vecLeft {
			floats.AddConst(-s, out)
		} else {
			for i := range out {
				out[i] = s - out[i]
			}
		}
	case OpMul:
		floats.Scale(s, out)
	case OpDiv:
		if vecLeft {
			floats.Scale(1/s, out)
		} else {
			for i := range out {
				out[i] = s / out[i]
			}
		}
	default:
		return nil, &AlgebraError{Op: op, Left: "scalar", Right: "vector"}
	}
	return NewVec(out), nil
}

func vecVec(op Operation, a, b Vec) (Value, error) {
	out := mat.NewVecDense(a.Len(), nil)
	switch op {
	case OpAdd:
		out.AddVec(a.VecDense, b.VecDense)
	case OpSub:
		out.SubVec(a.VecDense, b.VecDense)
	case OpMul:
		out.MulElemVec(a.VecDense, b.VecDense)
	case OpDiv:
		out.DivElemVec(a.VecDense, b.VecDense)
	default:
		return nil, &AlgebraError{Op: op, Left: "vector", Right: "vector"}
	}
	return Vec{out}, nil
}

// scaleCSR returns s*m as a fresh matrix.
func scaleCSR(s float64, m *sparse.CSR) *sparse.CSR {
	r, c := m.Dims()
	var rows, cols []int
	var data []float64
	m.DoNonZero(func(i, j int, v float64) {
		rows = append(rows, i)
		cols = append(cols, j)
		data = append(data, s*v)
	})
	return sparse.NewCOO(r, c, rows, cols, data).ToCSR()
}

// addCSR returns a + sign*b. Entries common to both matrices are summed
// during COO conversion.
func addCSR(a, b *sparse.CSR, sign float64) *sparse.CSR {
	r, c := a.Dims()
	var rows, cols []int
	var data []float64
	a.DoNonZero(func(i, j int, v float64) {
		rows = append(rows, i)
		cols = append(cols, j)
		data = append(data, v)
	})
	b.DoNonZero(func(i, j int, v float64) {
		rows = append(rows, i)
		cols = append(cols, j)
		data = append(data, sign*v)
	})
	return sparse.NewCOO(r, c, rows, cols, data).ToCSR()
}

// asCSR converts any matrix to CSR, returning it unchanged when it already
// is one.
func asCSR(m mat.Matrix) *sparse.CSR {
	if csr, ok := m.(*sparse.CSR); ok {
		return csr
	}
	r, c := m.Dims()
	var rows, cols []int
	var data []float64
	emit := func(i, j int, v float64) {
		rows = append(rows, i)
		cols = append(cols, j)
		data = append(data, v)
	}
	if sp, ok := m.(sparse.Sparser); ok {
		sp.DoNonZero(emit)
	} else {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if v := m.At(i, j); v != 0 {
					emit(i, j, v)
				}
			}
		}
	}
	return sparse.NewCOO(r, c, rows, cols, data).ToCSR()
}

// blockDiag concatenates matrices along the diagonal in the order given.
func blockDiag(ms []mat.Matrix) *sparse.CSR {
	var nr, nc int
	for _, m := range ms {
		r, c := m.Dims()
		nr += r
		nc += c
	}
	var rows, cols []int
	var data []float64
	var ro, co int
	for _, m := range ms {
		r, c := m.Dims()
		ro0, co0 := ro, co
		asCSR(m).DoNonZero(func(i, j int, v float64) {
			rows = append(rows, ro0+i)
			cols = append(cols, co0+j)
			data = append(data, v)
		})
		ro += r
		co += c
	}
	return sparse.NewCOO(nr, nc, rows, cols, data).ToCSR()
}
