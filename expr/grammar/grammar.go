// Package grammar holds the EBNF description of the expression language
// and a lexer driven by it. The hand-written lexer in package parser is
// the one used for real work; this one exists so the two can be checked
// against each other.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"reflect"

	"golang.org/x/exp/ebnf"
)

// Start is the production every other production is reachable from.
const Start = "Input"

// TokenProduction lists the lexical alternatives the Lexer tries.
const TokenProduction = "token"

//go:embed expr.ebnf
var source []byte

// Source returns the text of the built-in grammar.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses and verifies the built-in grammar.
func Load() (ebnf.Grammar, error) {
	return Parse("expr.ebnf", bytes.NewReader(source), Start)
}

// LoadFile parses the grammar in filename. A non-empty start also runs
// ebnf.Verify from that production.
func LoadFile(filename, start string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Parse(filename, f, start)
}

func Parse(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if start == "" {
		return g, nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// Errors flattens the error list ebnf returns into its entries.
func Errors(err error) []error {
	for u := err; u != nil; {
		v := reflect.ValueOf(u)
		if v.Kind() == reflect.Slice {
			errs := make([]error, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				if e, ok := v.Index(i).Interface().(error); ok {
					errs = append(errs, e)
				}
			}
			return errs
		}
		w, ok := u.(interface{ Unwrap() error })
		if !ok {
			break
		}
		u = w.Unwrap()
	}
	if err == nil {
		return nil
	}
	return []error{err}
}
