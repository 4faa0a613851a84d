package expression

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Associativity of a binary operator.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

type operator struct {
	precedence int
	assoc      Associativity
	apply      func(a, b float64) float64
}

var operators = map[string]operator{
	"+": {precedence: 1, assoc: LeftAssoc, apply: func(a, b float64) float64 { return a + b }},
	"-": {precedence: 1, assoc: LeftAssoc, apply: func(a, b float64) float64 { return a - b }},
	"*": {precedence: 2, assoc: LeftAssoc, apply: func(a, b float64) float64 { return a * b }},
	"/": {precedence: 2, assoc: LeftAssoc, apply: func(a, b float64) float64 { return a / b }},
	"%": {precedence: 2, assoc: LeftAssoc, apply: math.Mod},
	"^": {precedence: 3, assoc: RightAssoc, apply: math.Pow},
}

// Trigonometric functions take radians.
var functions = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"sqrt": math.Sqrt,
	"ln":   math.Log,
	"log":  math.Log10,
}

var functionAliases = map[string]string{
	string(sqrtSymbol): "sqrt",
}

var constants = map[string]float64{
	"pi":             math.Pi,
	string(piSymbol): math.Pi,
	"e":              math.E,
}

// maxFactorial is the largest argument whose factorial fits in a float64.
const maxFactorial = 170

// Factorial returns floor(n)! for 0 <= n <= 170 and +Inf outside that range.
// NaN is returned unchanged.
func Factorial(n float64) float64 {
	if math.IsNaN(n) {
		return n
	}
	if n < 0 || n > maxFactorial {
		return math.Inf(1)
	}
	result := 1.0
	for i := 2.0; i <= math.Floor(n); i++ {
		result *= i
	}
	return result
}

// IsFunction reports whether name is a known unary function after normalization.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// IsOperator reports whether symbol is a known binary operator.
func IsOperator(symbol string) bool {
	_, ok := operators[symbol]
	return ok
}

// Normalize replaces constant identifiers with number tokens, resolves
// function aliases and lowercases every other identifier.
func Normalize(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type != TokenIdent {
			out = append(out, tok)
			continue
		}

		name := strings.ToLower(tok.Literal)
		if v, ok := constants[name]; ok {
			out = append(out, Token{
				Type:    TokenNumber,
				Literal: strconv.FormatFloat(v, 'f', -1, 64),
				Pos:     tok.Pos,
			})
			continue
		}
		if alias, ok := functionAliases[name]; ok {
			name = alias
		}
		out = append(out, Token{Type: TokenIdent, Literal: name, Pos: tok.Pos})
	}
	return out
}

// OperatorInfo describes a binary operator.
type OperatorInfo struct {
	Symbol           string `json:"symbol"`
	Precedence       int    `json:"precedence"`
	RightAssociative bool   `json:"right_associative"`
}

// Operators lists the binary operators ordered by precedence, then symbol.
func Operators() []OperatorInfo {
	infos := make([]OperatorInfo, 0, len(operators))
	for symbol, op := range operators {
		infos = append(infos, OperatorInfo{
			Symbol:           symbol,
			Precedence:       op.precedence,
			RightAssociative: op.assoc == RightAssoc,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Precedence != infos[j].Precedence {
			return infos[i].Precedence < infos[j].Precedence
		}
		return infos[i].Symbol < infos[j].Symbol
	})
	return infos
}

// Functions lists the unary function names in alphabetical order.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Constants returns the named constants recognised by Normalize.
func Constants() map[string]float64 {
	out := make(map[string]float64, len(constants))
	for k, v := range constants {
		out[k] = v
	}
	return out
}
