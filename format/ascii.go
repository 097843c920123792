package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tiehuis/cc/expr/parser"
)

// ASCIIEncoder draws a tree top-down with each node in a boxed cell and
// dashed connectors to its children:
//
//	  .--( + )--.
//	(001)     (002)
type ASCIIEncoder struct {
	w    io.Writer
	node parser.Node
	rows [][]byte
}

func NewASCIIEncoder(w io.Writer) *ASCIIEncoder {
	return &ASCIIEncoder{w: w}
}

func (e *ASCIIEncoder) Encode(node parser.Node) error {
	e.node = node
	text, err := e.MarshalText()
	return write(e.w, text, err)
}

func (e *ASCIIEncoder) MarshalText() ([]byte, error) {
	e.rows = nil
	if _, err := e.draw(e.node, false, 0, 0); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, row := range e.rows {
		buf.Write(bytes.TrimRight(row, " "))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func cell(n parser.Node) (string, error) {
	switch n := n.(type) {
	case *parser.Leaf:
		return fmt.Sprintf("(%03d)", n.Value), nil
	case *parser.Unary:
		return fmt.Sprintf("(%2s )", n.Op), nil
	case *parser.Binary:
		return fmt.Sprintf("(%2s )", n.Op), nil
	}
	return "", fmt.Errorf("format: unknown node %T", n)
}

// draw places n at depth with its subtree starting at column offset and
// returns the width the subtree occupies. The connector to the parent is
// drawn on the row above.
func (e *ASCIIEncoder) draw(n parser.Node, isLeft bool, offset, depth int) (int, error) {
	label, err := cell(n)
	if err != nil {
		return 0, err
	}
	width := len(label)

	left, right := 0, 0
	switch n := n.(type) {
	case *parser.Unary:
		if left, err = e.draw(n.Operand, true, offset, depth+1); err != nil {
			return 0, err
		}
	case *parser.Binary:
		if left, err = e.draw(n.Left, true, offset, depth+1); err != nil {
			return 0, err
		}
		if right, err = e.draw(n.Right, false, offset+left+width, depth+1); err != nil {
			return 0, err
		}
	}

	e.put(depth, offset+left, label)

	mid := offset + left + width/2
	if depth > 0 && isLeft {
		for i := 0; i < width+right; i++ {
			e.put(depth-1, mid+i, "-")
		}
		e.put(depth-1, mid, ".")
	} else if depth > 0 {
		for i := 0; i < left+width; i++ {
			e.put(depth-1, offset-width/2+i, "-")
		}
		e.put(depth-1, mid, ".")
	}

	return left + width + right, nil
}

func (e *ASCIIEncoder) put(row, col int, s string) {
	for len(e.rows) <= row {
		e.rows = append(e.rows, nil)
	}
	r := e.rows[row]
	for len(r) < col+len(s) {
		r = append(r, ' ')
	}
	copy(r[col:], s)
	e.rows[row] = r
}
