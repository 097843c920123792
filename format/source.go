package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/tiehuis/cc/expr/parser"
)

// SourceEncoder renders a tree back to expression text with spaces
// around binary operators and only the parentheses needed to keep its
// shape. Text from a tree the parser built parses back to the same tree.
// Unary nodes and negative leaves have no grammar rule yet: they print in
// C notation, e.g. "~(1 + 2)" or "-1", which the parser rejects.
type SourceEncoder struct {
	w    io.Writer
	node parser.Node
}

func NewSourceEncoder(w io.Writer) *SourceEncoder {
	return &SourceEncoder{w: w}
}

func (e *SourceEncoder) Encode(node parser.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err == nil {
		text = append(text, '\n')
	}
	return write(e.w, text, err)
}

func (e *SourceEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if err := writeSource(&sb, e.node); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// Source returns the expression text of n.
func Source(n parser.Node) (string, error) {
	var sb strings.Builder
	err := writeSource(&sb, n)
	return sb.String(), err
}

const primaryPrecedence = 6

func precedence(n parser.Node) int {
	b, ok := n.(*parser.Binary)
	if !ok {
		return primaryPrecedence
	}
	switch b.Op {
	case parser.TokenBitOr:
		return 1
	case parser.TokenBitXor:
		return 2
	case parser.TokenBitAnd:
		return 3
	case parser.TokenPlus, parser.TokenMinus:
		return 4
	case parser.TokenMultiply, parser.TokenDiv, parser.TokenMod:
		return 5
	}
	return 0
}

func writeSource(sb *strings.Builder, n parser.Node) error {
	switch n := n.(type) {
	case *parser.Leaf:
		fmt.Fprintf(sb, "%d", n.Value)
	case *parser.Unary:
		sb.WriteString(n.Op.String())
		return writeOperand(sb, n.Operand, precedence(n.Operand) < primaryPrecedence)
	case *parser.Binary:
		prec := precedence(n)
		if prec == 0 {
			return fmt.Errorf("format: operator %s has no source form", n.Op)
		}
		if err := writeOperand(sb, n.Left, precedence(n.Left) < prec); err != nil {
			return err
		}
		sb.WriteString(" ")
		sb.WriteString(n.Op.String())
		sb.WriteString(" ")
		// Operators are left-associative, so an equal-precedence right
		// operand needs parentheses.
		return writeOperand(sb, n.Right, precedence(n.Right) <= prec)
	default:
		return fmt.Errorf("format: unknown node %T", n)
	}
	return nil
}

func writeOperand(sb *strings.Builder, n parser.Node, paren bool) error {
	if !paren {
		return writeSource(sb, n)
	}
	sb.WriteString("(")
	if err := writeSource(sb, n); err != nil {
		return err
	}
	sb.WriteString(")")
	return nil
}
