package compiler

import (
	"errors"
	"fmt"
)

// ExtraTokensError is returned by Compile when a complete program was
// recognised but input remains after its final semicolon.
type ExtraTokensError struct {
	Found Token
}

func (e *ExtraTokensError) Error() string {
	return fmt.Sprintf("extra tokens found at the end of program, starting with %s", e.Found)
}

// LexError reports a character that cannot start any token.
type LexError struct {
	Char rune
	Line int
	Col  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("Invalid character %q.", e.Char)
}

// SyntaxError is a mismatch between the lookahead and what the grammar
// allows at that point. Expected names the production or token that was
// being matched.
type SyntaxError struct {
	Expected string
	Found    Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Expected: %s, found: %s", e.Expected, e.Found)
}

// SemanticKind classifies a SemanticError.
type SemanticKind int

const (
	AlreadyDeclared SemanticKind = iota
	NotDeclared
	TypeMismatch
)

func (k SemanticKind) String() string {
	switch k {
	case AlreadyDeclared:
		return "already declared"
	case NotDeclared:
		return "not declared"
	case TypeMismatch:
		return "type mismatch"
	}
	return fmt.Sprintf("SemanticKind(%d)", int(k))
}

// SemanticError is a fatal declaration or type error. At is the token the
// translator was looking at when the error was detected.
type SemanticError struct {
	Kind SemanticKind
	Msg  string
	At   Token
}

func (e *SemanticError) Error() string { return e.Msg }

func alreadyDeclared(id string, at Token) *SemanticError {
	return &SemanticError{
		Kind: AlreadyDeclared,
		Msg:  fmt.Sprintf("The identifier %s has already been declared.", id),
		At:   at,
	}
}

func notDeclared(id string, at Token) *SemanticError {
	return &SemanticError{
		Kind: NotDeclared,
		Msg:  fmt.Sprintf("The identifier %s has not been declared.", id),
		At:   at,
	}
}

func typeMismatch(expected, found ExprType, at Token) *SemanticError {
	return &SemanticError{
		Kind: TypeMismatch,
		Msg:  fmt.Sprintf("Type error: expected %s found %s.", expected, found),
		At:   at,
	}
}

// printTypeMismatch is the one diagnostic with two acceptable types.
func printTypeMismatch(found ExprType, at Token) *SemanticError {
	return &SemanticError{
		Kind: TypeMismatch,
		Msg:  fmt.Sprintf("Type error: expected %s or %s, found %s.", Int, Bool, found),
		At:   at,
	}
}

// InternalError signals a broken translator invariant, such as running out
// of registers or freeing one twice. It is never caused by the input alone.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return "internal error: " + e.Err.Error() }

func (e *InternalError) Unwrap() error { return e.Err }

// fatal carries an error through a panic from deep inside the descent up to
// ParseProgram, the only place that recovers it.
type fatal struct {
	err error
}

// Position returns the line and column an error refers to, if it has one.
func Position(err error) (line, col int, ok bool) {
	var lexErr *LexError
	var synErr *SyntaxError
	var semErr *SemanticError
	var extra *ExtraTokensError
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Line, lexErr.Col, true
	case errors.As(err, &synErr):
		return synErr.Found.Line, synErr.Found.Col, synErr.Found.Line > 0
	case errors.As(err, &semErr):
		return semErr.At.Line, semErr.At.Col, semErr.At.Line > 0
	case errors.As(err, &extra):
		return extra.Found.Line, extra.Found.Col, extra.Found.Line > 0
	}
	return 0, 0, false
}
