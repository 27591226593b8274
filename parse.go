package adexpr

import (
	"io"
	"strconv"
	"strings"
)

// Equation = Term { ('+' | '-') Term }
// Term = Unary { ('*' | '/') Unary }
// Unary = '-' Unary | '+' Unary | Primary
// Primary = num | name | funcname '(' Args ')' | '(' Equation ')'
// Args = [ Equation { ',' Equation } ]
//
// Names resolve against bound operators at parse time; there is no implicit
// multiplication and no exponentiation, since the composition algebra has
// neither.

// Expr is a parsed equation that can be evaluated with a context or handed
// to an equation driver as an operator tree.
type Expr struct {
	// op is the root of the operator tree.
	op Operator
	// vars is the sorted list of variable names referenced by the equation.
	vars []string
}

// Parse parses equation text into an operator tree. The given options are
// applied in order. Every identifier must be bound to an operator by an
// option, except the default function names.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	ps := parser{
		scan: lex(src),
		ctx:  parsectx{vars: make(map[string]bool)},
	}
	for _, opt := range opts {
		ps.ctx = opt.parseOption(ps.ctx)
	}
	if ps.ctx.binds == nil {
		ps.ctx.binds = make(map[string]Operator, len(globalfuncs))
		for k, v := range globalfuncs {
			ps.ctx.binds[k] = v
		}
	} else if !ps.ctx.nodefaults {
		// Only set default functions that aren't already bound.
		for k, v := range globalfuncs {
			if _, ok := ps.ctx.binds[k]; !ok {
				ps.ctx.binds[k] = v
			}
		}
	}
	n, err := ps.equation()
	if err != nil {
		return nil, err
	}
	switch tok := ps.scan.must(); tok.kind {
	case tokenEOF:
	case tokenClose:
		return nil, &BracketError{Col: tok.pos, Close: true}
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos}
	default:
		return nil, &JuxtaposeError{Col: tok.pos, Text: tok.text}
	}
	ex := Expr{
		op:   n,
		vars: make([]string, 0, len(ps.ctx.vars)),
	}
	for k := range ps.ctx.vars {
		ex.vars = append(ex.vars, k)
	}
	sortstrs(ex.vars)
	return &ex, nil
}

// ParseString is a shortcut to parse equation text from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// Op returns the root of the parsed operator tree.
func (e *Expr) Op() Operator { return e.op }

// Vars returns the names of the variables the equation references, sorted.
func (e *Expr) Vars() []string {
	return append([]string(nil), e.vars...)
}

// Eval evaluates the equation against a context.
func (e *Expr) Eval(ctx Context) (Value, error) {
	return Evaluate(e.op, ctx)
}

// String renders the parsed operator tree.
func (e *Expr) String() string { return e.op.String() }

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

type parser struct {
	scan *lexer
	ctx  parsectx
}

// equation parses a full additive expression. If there is no error, then
// equation pushes the last token it scans, including EOF.
func (ps *parser) equation() (Operator, error) {
	n, err := ps.term()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := ps.scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || (tok.text != "+" && tok.text != "-") {
			ps.scan.push(tok)
			return n, nil
		}
		rhs, err := ps.term()
		if err != nil {
			return nil, err
		}
		if tok.text == "+" {
			n = Add(n, rhs)
		} else {
			n = Sub(n, rhs)
		}
	}
}

func (ps *parser) term() (Operator, error) {
	n, err := ps.unary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := ps.scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || (tok.text != "*" && tok.text != "/") {
			ps.scan.push(tok)
			return n, nil
		}
		rhs, err := ps.unary()
		if err != nil {
			return nil, err
		}
		if tok.text == "*" {
			n = Mul(n, rhs)
		} else {
			n = Div(n, rhs)
		}
	}
}

func (ps *parser) unary() (Operator, error) {
	tok, err := ps.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenOp {
		switch tok.text {
		case "+":
			return ps.unary()
		case "-":
			// The operation set has no negation; lower to a product.
			rhs, err := ps.unary()
			if err != nil {
				return nil, err
			}
			return Mul(NewScalar(-1), rhs), nil
		default:
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
		}
	}
	ps.scan.push(tok)
	return ps.primary()
}

func (ps *parser) primary() (Operator, error) {
	tok, err := ps.scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		return NewScalar(v), nil
	case tokenIdent:
		op, ok := ps.ctx.binds[tok.text]
		if !ok || op == nil {
			return nil, &NameError{Col: tok.pos, Name: tok.text}
		}
		if f, ok := op.(*Function); ok {
			return ps.call(f, tok)
		}
		switch op.(type) {
		case *Variable, *MergedVariable:
			ps.ctx.vars[tok.text] = true
		}
		nxt, err := ps.scan.next()
		if err != nil {
			return nil, err
		}
		if nxt.kind == tokenOpen {
			return nil, &CallError{Col: nxt.pos, Name: tok.text, NotFunc: true}
		}
		ps.scan.push(nxt)
		return op, nil
	case tokenOpen:
		n, err := ps.equation()
		if err != nil {
			return nil, err
		}
		switch end := ps.scan.must(); end.kind {
		case tokenClose:
			return n, nil
		case tokenEOF:
			return nil, &BracketError{Col: end.pos}
		case tokenSep:
			return nil, &SeparatorError{Col: end.pos}
		default:
			return nil, &JuxtaposeError{Col: end.pos, Text: end.text}
		}
	case tokenClose:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("adexpr: unknown token: " + tok.String())
	}
}

// call parses the argument list of a function call. name is the token the
// function name came from.
func (ps *parser) call(f *Function, name lexToken) (Operator, error) {
	tok, err := ps.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOpen {
		// A function without its argument list cannot take part in algebra.
		ps.scan.push(tok)
		return nil, &CallError{Col: name.pos, Name: f.Name(), Len: -1}
	}
	tok, err = ps.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenClose {
		// Niladic call.
		if !f.fn.CanCall(0) {
			return nil, &CallError{Col: tok.pos, Name: f.Name(), Len: 0}
		}
		return f.Call(), nil
	}
	ps.scan.push(tok)
	var args []any
	for {
		a, err := ps.equation()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		switch end := ps.scan.must(); end.kind {
		case tokenClose:
			if !f.fn.CanCall(len(args)) {
				return nil, &CallError{Col: end.pos, Name: f.Name(), Len: len(args)}
			}
			return f.Call(args...), nil
		case tokenSep:
			// Next argument.
		case tokenEOF:
			return nil, &BracketError{Col: end.pos}
		default:
			return nil, &JuxtaposeError{Col: end.pos, Text: end.text}
		}
	}
}
