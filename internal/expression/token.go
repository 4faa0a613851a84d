// Package expression provides calculator expression tokenizing, infix to
// postfix conversion and postfix evaluation.
package expression

import "strings"

// TokenType represents the type of a token.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenNumber // decimal literal, never signed
	TokenIdent  // function or constant name

	// Operators
	TokenOperator // + - * / % ^
	TokenPostfix  // !

	// Delimiters
	TokenLParen // (
	TokenRParen // )
)

// String returns the string representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenNumber:
		return "NUMBER"
	case TokenIdent:
		return "IDENT"
	case TokenOperator:
		return "OPERATOR"
	case TokenPostfix:
		return "POSTFIX"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int // Byte offset in the input string
}

// RPN is a postfix token sequence produced by the parser.
type RPN struct {
	Tokens []Token
}

// String renders the sequence as space separated postfix notation.
func (r *RPN) String() string {
	if r == nil {
		return ""
	}
	parts := make([]string, len(r.Tokens))
	for i, tok := range r.Tokens {
		parts[i] = tok.Literal
	}
	return strings.Join(parts, " ")
}

// Len returns the number of tokens in the sequence.
func (r *RPN) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Tokens)
}
