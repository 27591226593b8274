package adexpr

import "strconv"

// Evaluate walks an operator tree against a context and returns its value.
// Leaves are resolved through their Parse methods; evaluate-tagged nodes
// apply their Function to the evaluated arguments; the remaining binary tags
// combine their children through the forward algebra. Trees containing
// variables cannot be evaluated directly — variables have no value outside
// an equation driver — and report a *NotParsableError.
//
// Evaluation never mutates the tree, so independent evaluations of the same
// tree against a shared read-only context may run concurrently.
func Evaluate(op Operator, ctx Context) (Value, error) {
	if op.IsLeaf() {
		return op.Parse(ctx)
	}
	t := op.Tree()
	if t.Op == OpEvaluate {
		return evalCall(t, ctx)
	}
	if len(t.Children) != 2 {
		// Composition only produces binary nodes.
		panic("adexpr: malformed tree: " + t.Op.String() + " with " + strconv.Itoa(len(t.Children)) + " children")
	}
	l, err := Evaluate(t.Children[0], ctx)
	if err != nil {
		return nil, err
	}
	r, err := Evaluate(t.Children[1], ctx)
	if err != nil {
		return nil, err
	}
	return combine(t.Op, l, r)
}

func evalCall(t *Tree, ctx Context) (Value, error) {
	f, ok := t.Children[0].(*Function)
	if !ok {
		panic("adexpr: malformed tree: evaluate node without a function head")
	}
	args := make([]Value, len(t.Children)-1)
	for i, ch := range t.Children[1:] {
		v, err := Evaluate(ch, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return f.fn.Call(args)
}
