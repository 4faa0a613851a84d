package expression

import (
	"errors"
	"fmt"
	"strconv"

	stack "github.com/duke-git/lancet/v2/datastructure/stack"
)

// Evaluator compiles and evaluates calculator expressions.
type Evaluator interface {
	// Compile converts an expression string into postfix form.
	Compile(expr string) (*RPN, error)

	// Run evaluates a postfix sequence.
	Run(rpn *RPN) (float64, error)

	// EvaluateString compiles and evaluates an expression string.
	EvaluateString(expr string) (float64, error)
}

// DefaultEvaluator is the default implementation of Evaluator. It holds no
// state and is safe for concurrent use.
type DefaultEvaluator struct{}

// NewEvaluator creates a new DefaultEvaluator.
func NewEvaluator() *DefaultEvaluator {
	return &DefaultEvaluator{}
}

// Compile converts an expression string into postfix form.
func (e *DefaultEvaluator) Compile(expr string) (*RPN, error) {
	return Compile(expr)
}

// EvaluateString compiles and evaluates an expression string.
func (e *DefaultEvaluator) EvaluateString(expr string) (float64, error) {
	rpn, err := e.Compile(expr)
	if err != nil {
		return 0, err
	}
	return e.Run(rpn)
}

// Run evaluates a postfix sequence against an operand stack.
//
// Domain problems such as sqrt(-1) or 1/0 are not errors: they yield NaN or
// ±Inf. Literals too long for a float64 become +Inf. Only structural problems
// fail.
func (e *DefaultEvaluator) Run(rpn *RPN) (float64, error) {
	if rpn == nil {
		return 0, NewEvaluationError(ErrInvalidExpression, nil, "nil program")
	}

	operands := stack.NewArrayStack[float64]()

	for i := range rpn.Tokens {
		tok := &rpn.Tokens[i]

		switch {
		case tok.Type == TokenOperator && IsOperator(tok.Literal):
			if operands.Size() < 2 {
				return 0, NewEvaluationError(ErrInvalidExpression, tok,
					fmt.Sprintf("operator %s needs 2 operands", tok.Literal))
			}
			b, _ := operands.Pop()
			a, _ := operands.Pop()
			operands.Push(operators[tok.Literal].apply(*a, *b))

		case tok.Type == TokenPostfix:
			if operands.IsEmpty() {
				return 0, NewEvaluationError(ErrInvalidExpression, tok, "factorial needs an operand")
			}
			n, _ := operands.Pop()
			operands.Push(Factorial(*n))

		case tok.Type == TokenIdent && IsFunction(tok.Literal):
			if operands.IsEmpty() {
				return 0, NewEvaluationError(ErrInvalidExpression, tok,
					fmt.Sprintf("function %s needs an argument", tok.Literal))
			}
			x, _ := operands.Pop()
			operands.Push(functions[tok.Literal](*x))

		case tok.Type == TokenNumber:
			v, err := strconv.ParseFloat(tok.Literal, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return 0, NewEvaluationError(ErrInvalidToken, tok,
					fmt.Sprintf("cannot parse number %q", tok.Literal))
			}
			operands.Push(v)

		default:
			return 0, NewEvaluationError(ErrInvalidToken, tok,
				fmt.Sprintf("unknown token %q", tok.Literal))
		}
	}

	if operands.Size() != 1 {
		return 0, NewEvaluationError(ErrInvalidExpression, nil,
			fmt.Sprintf("expected 1 value after evaluation, got %d", operands.Size()))
	}

	result, _ := operands.Pop()
	return *result, nil
}

// Evaluate is a convenience function to evaluate an expression string.
func Evaluate(expr string) (float64, error) {
	return NewEvaluator().EvaluateString(expr)
}
