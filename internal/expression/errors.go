package expression

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package wraps exactly one of them.
var (
	ErrUnbalancedParenthesis = errors.New("unbalanced parenthesis")
	ErrInvalidExpression     = errors.New("invalid expression")
	ErrInvalidToken          = errors.New("invalid token")
)

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUnbalancedParenthesis
	KindInvalidExpression
	KindInvalidToken
	KindUnknown
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindUnbalancedParenthesis:
		return "UnbalancedParenthesis"
	case KindInvalidExpression:
		return "InvalidExpression"
	case KindInvalidToken:
		return "InvalidToken"
	default:
		return "Unknown"
	}
}

// KindOf reports the kind of err. A nil error is KindNone.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnbalancedParenthesis):
		return KindUnbalancedParenthesis
	case errors.Is(err, ErrInvalidExpression):
		return KindInvalidExpression
	case errors.Is(err, ErrInvalidToken):
		return KindInvalidToken
	default:
		return KindUnknown
	}
}

// ParseError represents a parenthesis mismatch found while reordering tokens.
type ParseError struct {
	Position int
	Expected string
	Got      string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: expected %s, got %s", e.Position, e.Expected, e.Got)
}

// Unwrap returns ErrUnbalancedParenthesis.
func (e *ParseError) Unwrap() error {
	return ErrUnbalancedParenthesis
}

// NewParseError creates a new ParseError.
func NewParseError(pos int, expected, got string) *ParseError {
	return &ParseError{
		Position: pos,
		Expected: expected,
		Got:      got,
	}
}

// EvaluationError represents an error during postfix evaluation.
type EvaluationError struct {
	Position int    // Position of the offending token, -1 when not tied to one
	Token    string // Offending token literal
	Message  string
	Cause    error // One of the sentinel errors
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("evaluation error at position %d: %s: %v", e.Position, e.Message, e.Cause)
	}
	return fmt.Sprintf("evaluation error: %s: %v", e.Message, e.Cause)
}

// Unwrap returns the underlying error.
func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

// NewEvaluationError creates a new EvaluationError.
func NewEvaluationError(cause error, tok *Token, message string) *EvaluationError {
	e := &EvaluationError{
		Position: -1,
		Message:  message,
		Cause:    cause,
	}
	if tok != nil {
		e.Position = tok.Pos
		e.Token = tok.Literal
	}
	return e
}
