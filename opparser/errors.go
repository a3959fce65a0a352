package opparser

import "fmt"

// ParseError is the base error type for all opparser errors.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// LexError represents a lexer-level error (unterminated string, invalid character).
type LexError struct{ ParseError }

// SyntaxError represents a grammar-level error (unexpected token).
type SyntaxError struct {
	ParseError
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: expected %s, got %s", e.Pos.Line, e.Pos.Column, e.Expected, e.Got)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// BindError reports a call that lexed and parsed but could not be bound
// against the registry (unknown operation, bad arguments). It wraps the
// underlying pipeline error so callers can still match on its type.
type BindError struct {
	ParseError
	Op string
}
