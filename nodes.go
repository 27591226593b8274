package adexpr

import (
	"strconv"
	"strings"
)

// Operation is the tag on a tree node deciding how evaluated children
// combine.
type Operation int8

const (
	// OpVoid tags leaf nodes. A void tree has no children.
	OpVoid Operation = iota
	// OpAdd, OpSub, OpMul and OpDiv tag binary compositions with children in
	// left-to-right order.
	OpAdd
	OpSub
	OpMul
	OpDiv
	// OpEvaluate tags a function invocation. The first child is the Function;
	// the remaining children are its arguments.
	OpEvaluate
)

func (op Operation) String() string {
	switch op {
	case OpVoid:
		return "void"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpEvaluate:
		return "evaluate"
	default:
		return "Operation(" + strconv.Itoa(int(op)) + ")"
	}
}

// Tree records how an operator was composed. Leaves own a void tree with no
// children; composites own the operation tag and the operand nodes. A Tree is
// never shared between operators and never modified after construction.
type Tree struct {
	Op       Operation
	Children []Operator
}

// Operator is a node in an expression tree. The variant set is closed:
// Scalar, Array, Matrix, Variable, MergedVariable, MergedOperator, Function,
// and the unexported composite built by Add, Sub, Mul, Div and Function.Call.
type Operator interface {
	// Tree returns the node's composition record.
	Tree() *Tree
	// IsLeaf reports whether the node has no children.
	IsLeaf() bool
	// Parse translates an atomic operator into its numerical value against
	// ctx. Composite nodes and variables are not parsable; they are resolved
	// by a tree walker such as Evaluate.
	Parse(ctx Context) (Value, error)

	String() string
}

// leaf provides the tree accessors shared by every atomic operator. Each
// Tree call returns a fresh void tree, so no two nodes ever share one and a
// caller mutating a returned tree cannot reach other nodes through it.
type leaf struct{}

func (leaf) Tree() *Tree { return &Tree{Op: OpVoid} }

func (leaf) IsLeaf() bool { return true }

// composite is a node formed by arithmetic composition. It has no numerical
// value of its own.
type composite struct {
	tree Tree
}

func (c *composite) Tree() *Tree { return &c.tree }

func (c *composite) IsLeaf() bool { return len(c.tree.Children) == 0 }

func (c *composite) Parse(ctx Context) (Value, error) {
	return nil, &NotParsableError{Op: c.tree.Op}
}

func (c *composite) String() string {
	var b strings.Builder
	c.fmt(&b)
	return b.String()
}

func (c *composite) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	if c.tree.Op == OpEvaluate {
		b.WriteString(c.tree.Children[0].String())
		b.WriteByte('[')
		for i, ch := range c.tree.Children[1:] {
			if i > 0 {
				b.WriteString(", ")
			}
			fmtchild(b, ch)
		}
		b.WriteByte(']')
		return
	}
	fmtchild(b, c.tree.Children[0])
	switch c.tree.Op {
	case OpAdd:
		b.WriteString(" + ")
	case OpSub:
		b.WriteString(" - ")
	case OpMul:
		b.WriteString(" * ")
	case OpDiv:
		b.WriteString(" / ")
	default:
		panic("adexpr: invalid tree operation " + c.tree.Op.String())
	}
	fmtchild(b, c.tree.Children[1])
}

func fmtchild(b *strings.Builder, ch Operator) {
	if sub, ok := ch.(*composite); ok {
		sub.fmt(b)
		return
	}
	b.WriteString(ch.String())
}

// NotParsableError is the result of calling Parse on a node that has no value
// of its own: a pure composition of other operators, which must be evaluated
// by a tree walker instead, or an unknown, which only an equation driver can
// bind a state to.
type NotParsableError struct {
	// Op is the operation tag of the node.
	Op Operation
	// Var is the unknown's name, when the node was a variable rather than a
	// composition.
	Var string
}

func (err *NotParsableError) Error() string {
	if err.Var != "" {
		return "variable " + err.Var + " has no value of its own; bind a state to it through an equation driver"
	}
	return "operator with operation " + err.Op.String() + " cannot be parsed directly; evaluate its tree instead"
}
