// Package eval computes the integer value of an expression tree.
package eval

import (
	"errors"
	"fmt"

	"github.com/tiehuis/cc/expr/parser"
)

var (
	ErrDivisionByZero      = errors.New("division by zero")
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// Eval walks n bottom-up. Arithmetic is on int64 with C semantics:
// division truncates toward zero and the remainder takes the sign of the
// dividend. Overflow wraps.
func Eval(n parser.Node) (int64, error) {
	switch n := n.(type) {
	case *parser.Leaf:
		return n.Value, nil
	case *parser.Unary:
		v, err := Eval(n.Operand)
		if err != nil {
			return 0, err
		}
		return unary(n.Op, v)
	case *parser.Binary:
		left, err := Eval(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := Eval(n.Right)
		if err != nil {
			return 0, err
		}
		return binary(n.Op, left, right)
	case nil:
		return 0, errors.New("eval: nil node")
	}
	return 0, fmt.Errorf("eval: unknown node %T", n)
}

func unary(op parser.Operator, v int64) (int64, error) {
	switch op {
	case parser.TokenPlus:
		return v, nil
	case parser.TokenMinus:
		return -v, nil
	case parser.TokenBitNot:
		return ^v, nil
	case parser.TokenNot:
		if v == 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("unary %s: %w", op, ErrUnsupportedOperator)
}

func binary(op parser.Operator, l, r int64) (int64, error) {
	switch op {
	case parser.TokenPlus:
		return l + r, nil
	case parser.TokenMinus:
		return l - r, nil
	case parser.TokenMultiply:
		return l * r, nil
	case parser.TokenDiv:
		if r == 0 {
			return 0, fmt.Errorf("%d / %d: %w", l, r, ErrDivisionByZero)
		}
		return l / r, nil
	case parser.TokenMod:
		if r == 0 {
			return 0, fmt.Errorf("%d %% %d: %w", l, r, ErrDivisionByZero)
		}
		return l % r, nil
	case parser.TokenBitAnd:
		return l & r, nil
	case parser.TokenBitOr:
		return l | r, nil
	case parser.TokenBitXor:
		return l ^ r, nil
	}
	return 0, fmt.Errorf("binary %s: %w", op, ErrUnsupportedOperator)
}

// String parses and evaluates text in one step.
func String(text string, opts ...parser.Option) (int64, error) {
	n, err := parser.Parse(text, opts...)
	if err != nil {
		return 0, err
	}
	return Eval(n)
}
