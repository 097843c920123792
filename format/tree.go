package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/tiehuis/cc/expr/parser"
)

// TreeEncoder writes one node per line, children indented two spaces
// below their parent:
//
//	Binary +
//	  Leaf 2
//	  Binary *
//	    Leaf 3
//	    Leaf 4
type TreeEncoder struct {
	w    io.Writer
	node parser.Node
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(node parser.Node) error {
	e.node = node
	text, err := e.MarshalText()
	return write(e.w, text, err)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if err := writeTree(&sb, e.node, 0); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func writeTree(sb *strings.Builder, n parser.Node, depth int) error {
	sb.WriteString(strings.Repeat("  ", depth))
	switch n := n.(type) {
	case *parser.Leaf:
		fmt.Fprintf(sb, "Leaf %d\n", n.Value)
	case *parser.Unary:
		fmt.Fprintf(sb, "Unary %s\n", n.Op)
		return writeTree(sb, n.Operand, depth+1)
	case *parser.Binary:
		fmt.Fprintf(sb, "Binary %s\n", n.Op)
		if err := writeTree(sb, n.Left, depth+1); err != nil {
			return err
		}
		return writeTree(sb, n.Right, depth+1)
	default:
		return fmt.Errorf("format: unknown node %T", n)
	}
	return nil
}
