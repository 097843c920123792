// Package format renders expression trees and token streams as text.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/tiehuis/cc/expr/parser"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(node parser.Node) error
}

// NewEncoder returns the encoder registered under name: "tree", "ascii",
// "json" or "source".
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w), nil
	case "ascii":
		return NewASCIIEncoder(w), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	case "source":
		return NewSourceEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

func write(w io.Writer, text []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
