package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/tiehuis/cc/expr/parser"
)

// LineEncoder writes a token stream one token per line as
// "line:column<TAB>kind<TAB>text".
type LineEncoder struct {
	w              io.Writer
	tokens         []parser.Token
	skipWhitespace bool
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

// SkipWhitespace leaves TokenWhitespace out of the output.
func (e *LineEncoder) SkipWhitespace(skip bool) *LineEncoder {
	e.skipWhitespace = skip
	return e
}

func (e *LineEncoder) Encode(tokens []parser.Token) error {
	e.tokens = tokens
	text, err := e.MarshalText()
	return write(e.w, text, err)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, tok := range e.tokens {
		if e.skipWhitespace && tok.Kind == parser.TokenWhitespace {
			continue
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", tok.Pos, tok.Kind, tok.Text)
	}
	return []byte(sb.String()), nil
}
