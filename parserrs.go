package adexpr

import "strconv"

// OperatorError is an error indicating an operator token where a term was
// expected. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that cannot start a term.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" cannot start a term")
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// JuxtaposeError is an error indicating two adjacent terms with no operator
// between them. Unlike notebook arithmetic, equation text has no implicit
// multiplication. It implements InputError.
type JuxtaposeError struct {
	// Col is the position of the second term.
	Col int
	// Text is the token starting the second term.
	Text string
}

func (err *JuxtaposeError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text)+"; write multiplication with *")
}

func (err *JuxtaposeError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the error.
	Col int
	// Close is true for a close bracket with no matching open bracket, and
	// false for an open bracket that was never closed.
	Close bool
}

func (err *BracketError) Error() string {
	if err.Close {
		return errpos(err.Col, "close bracket with no open bracket")
	}
	return errpos(err.Col, "open bracket with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside a function argument
// list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator")
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// CallError is an error indicating a misused function: called with an
// argument count it does not accept, used without being called, or a call on
// a name that is not a function. It implements InputError.
type CallError struct {
	// Col is the position of the call expression.
	Col int
	// Name is the name that was called or misused.
	Name string
	// Len is the number of arguments the call supplied, or -1 if the
	// function was not called at all.
	Len int
	// NotFunc indicates a call on a name bound to a non-function operator.
	NotFunc bool
}

func (err *CallError) Error() string {
	switch {
	case err.NotFunc:
		return errpos(err.Col, err.Name+" is not a function")
	case err.Len < 0:
		return errpos(err.Col, "function "+err.Name+" must be called")
	default:
		return errpos(err.Col, "cannot call "+err.Name+" with "+strconv.Itoa(err.Len)+" arguments")
	}
}

func (err *CallError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// NameError is an error indicating an identifier with no bound operator. It
// implements InputError.
type NameError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the unbound identifier.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined name "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid equation text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*JuxtaposeError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*LexError)(nil)
)
