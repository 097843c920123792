package format

import (
	"encoding/json"
	"io"

	"github.com/tiehuis/cc/expr/parser"
)

type ASTJSONEncoder struct {
	w    io.Writer
	node parser.Node
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node parser.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err == nil {
		text = append(text, '\n')
	}
	return write(e.w, text, err)
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.node, "", "  ")
}
