package expression

import (
	stack "github.com/duke-git/lancet/v2/datastructure/stack"
)

// Parser reorders infix tokens into postfix using the shunting-yard algorithm.
type Parser struct {
	tokens []Token
}

// NewParser creates a new Parser for normalized tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse converts the tokens to postfix order.
//
// Function names wait on the operator stack until the parenthesis that closes
// their argument; "!" goes straight to the output. Identifiers that are not
// functions are emitted as literals and rejected later by the evaluator.
func (p *Parser) Parse() (*RPN, error) {
	output := make([]Token, 0, len(p.tokens))
	ops := stack.NewArrayStack[Token]()

	for _, tok := range p.tokens {
		switch tok.Type {
		case TokenIdent:
			if IsFunction(tok.Literal) {
				ops.Push(tok)
			} else {
				output = append(output, tok)
			}

		case TokenLParen:
			ops.Push(tok)

		case TokenRParen:
			var err error
			output, err = p.closeParen(ops, output, tok)
			if err != nil {
				return nil, err
			}

		case TokenOperator:
			output = p.pushOperator(ops, output, tok)

		default:
			// numbers, "!" and anything else the evaluator will judge
			output = append(output, tok)
		}
	}

	for !ops.IsEmpty() {
		top, _ := ops.Pop()
		if top.Type == TokenLParen {
			return nil, NewParseError(top.Pos, ")", "end of input")
		}
		output = append(output, *top)
	}

	return &RPN{Tokens: output}, nil
}

// closeParen pops operators to the output until the matching "(" and then
// emits the function owning the parenthesis, if any.
func (p *Parser) closeParen(ops *stack.ArrayStack[Token], output []Token, tok Token) ([]Token, error) {
	matched := false
	for !ops.IsEmpty() {
		top, _ := ops.Pop()
		if top.Type == TokenLParen {
			matched = true
			break
		}
		output = append(output, *top)
	}
	if !matched {
		return nil, NewParseError(tok.Pos, "(", ")")
	}

	if top, err := ops.Peak(); err == nil && top.Type == TokenIdent {
		fn := *top
		_, _ = ops.Pop()
		output = append(output, fn)
	}
	return output, nil
}

// pushOperator pops operators that bind at least as tightly as tok, then pushes tok.
func (p *Parser) pushOperator(ops *stack.ArrayStack[Token], output []Token, tok Token) []Token {
	op := operators[tok.Literal]
	for !ops.IsEmpty() {
		top, _ := ops.Peak()
		if top.Type != TokenOperator {
			break // "(" or a function waiting for its argument
		}
		topOp := operators[top.Literal]
		if topOp.precedence > op.precedence || (topOp.precedence == op.precedence && op.assoc == LeftAssoc) {
			popped, _ := ops.Pop()
			output = append(output, *popped)
			continue
		}
		break
	}
	ops.Push(tok)
	return output
}

// ToPostfix converts normalized tokens to postfix order.
func ToPostfix(tokens []Token) (*RPN, error) {
	return NewParser(tokens).Parse()
}

// Compile tokenizes, normalizes and reorders an expression string.
func Compile(input string) (*RPN, error) {
	return ToPostfix(Normalize(Tokenize(input)))
}
