package adexpr

// Function wraps an external callable as a leaf operator. A bare Function
// cannot take part in arithmetic composition; Call it to obtain a node the
// algebra accepts. The callable's numerical contract — including how it
// reports derivatives — belongs to the physics module that supplies it.
type Function struct {
	leaf
	name string
	fn   Func
}

// NewFunction wraps fn under the given name.
func NewFunction(name string, fn Func) *Function {
	return &Function{name: name, fn: fn}
}

// Name returns the function's name.
func (f *Function) Name() string { return f.name }

// Func returns the wrapped callable.
func (f *Function) Func() Func { return f.fn }

// Call packages an invocation of the function as an evaluate-tagged node
// whose children are the function followed by its arguments. Arguments
// coerce like composition operands; an unsupported argument panics with a
// *TypeError. Evaluation of the node is deferred to the tree walker, which
// parses the arguments and applies the callable.
func (f *Function) Call(args ...any) Operator {
	children := make([]Operator, 1, len(args)+1)
	children[0] = f
	for _, a := range args {
		n, ok := coerce(a)
		if !ok {
			panic(&TypeError{Value: a})
		}
		children = append(children, n)
	}
	return &composite{tree: Tree{Op: OpEvaluate, Children: children}}
}

// Parse returns the function itself; applying it is the tree walker's job.
func (f *Function) Parse(ctx Context) (Value, error) { return f, nil }

func (f *Function) valueKind() string { return "function" }

func (f *Function) String() string { return f.name }
