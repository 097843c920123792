package parser

import (
	"strconv"
	"strings"
)

// Operator identifies the operation of a Unary or Binary node by the
// token kind that spelled it.
type Operator = TokenKind

// Node is one of *Leaf, *Unary or *Binary. Each node owns its children;
// trees never share subtrees.
type Node interface {
	node()
	String() string
}

// Leaf is a numeric literal.
type Leaf struct {
	Value int64
}

// Unary applies Op to Operand. No grammar rule produces it yet.
type Unary struct {
	Op      Operator
	Operand Node
}

type Binary struct {
	Op    Operator
	Left  Node
	Right Node
}

func (*Leaf) node()   {}
func (*Unary) node()  {}
func (*Binary) node() {}

func (n *Leaf) String() string {
	return strconv.FormatInt(n.Value, 10)
}

func (n *Unary) String() string {
	return "(" + n.Op.String() + " " + n.Operand.String() + ")"
}

func (n *Binary) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(n.Op.String())
	b.WriteString(" ")
	b.WriteString(n.Left.String())
	b.WriteString(" ")
	b.WriteString(n.Right.String())
	b.WriteString(")")
	return b.String()
}

// Equal reports whether a and b have the same shape, operators and
// values.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Leaf:
		b, ok := b.(*Leaf)
		return ok && a.Value == b.Value
	case *Unary:
		b, ok := b.(*Unary)
		return ok && a.Op == b.Op && Equal(a.Operand, b.Operand)
	case *Binary:
		b, ok := b.(*Binary)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case nil:
		return b == nil
	}
	return false
}

// Walk calls fn for n and then for each of its descendants, depth first,
// left to right. It stops descending into a node when fn returns false.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Unary:
		Walk(n.Operand, fn)
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	}
}
