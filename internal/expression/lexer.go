package expression

import "unicode/utf8"

const (
	piSymbol   = 'π'
	sqrtSymbol = '√'
)

// Lexer tokenizes calculator input.
//
// Characters that start no token (whitespace included) are skipped, so
// "2 + x$3" yields 2, +, x, 3.
type Lexer struct {
	input   string
	pos     int  // start of the current rune
	readPos int  // position after the current rune
	ch      rune // current rune under examination
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar decodes the next rune and advances the position.
func (l *Lexer) readChar() {
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.readPos += width
}

// peekChar returns the next rune without advancing the position.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	for !l.atEOF() {
		pos := l.pos

		switch {
		case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
			return l.readNumber()
		case isLetter(l.ch):
			return l.readIdentifier()
		case l.ch == piSymbol || l.ch == sqrtSymbol:
			tok := Token{Type: TokenIdent, Literal: string(l.ch), Pos: pos}
			l.readChar()
			return tok
		}

		var tok Token
		switch l.ch {
		case '+', '-', '*', '/', '%', '^':
			tok = Token{Type: TokenOperator, Literal: string(l.ch), Pos: pos}
		case '!':
			tok = Token{Type: TokenPostfix, Literal: "!", Pos: pos}
		case '(':
			tok = Token{Type: TokenLParen, Literal: "(", Pos: pos}
		case ')':
			tok = Token{Type: TokenRParen, Literal: ")", Pos: pos}
		default:
			l.readChar()
			continue
		}

		l.readChar()
		return tok
	}

	return Token{Type: TokenEOF, Literal: "", Pos: l.pos}
}

// readIdentifier reads a run of ASCII letters.
func (l *Lexer) readIdentifier() Token {
	pos := l.pos
	for isLetter(l.ch) {
		l.readChar()
	}
	return Token{Type: TokenIdent, Literal: l.input[pos:l.pos], Pos: pos}
}

// readNumber reads digits with at most one decimal point ("12", "1.5", "3.", ".5").
func (l *Lexer) readNumber() Token {
	pos := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return Token{Type: TokenNumber, Literal: l.input[pos:l.pos], Pos: pos}
}

// Tokenize scans the whole input and returns its tokens without the trailing EOF.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
