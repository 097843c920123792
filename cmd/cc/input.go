package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tiehuis/cc/expr/parser"
)

// input is the expression source shared by lex, parse and eval: either a
// file argument, an -e expression, or stdin.
type input struct {
	expr string
}

func (in *input) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.expr, "expr", "e", "", "expression text to use instead of a file")
}

func (in *input) args() cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if in.expr != "" && len(args) > 0 {
			return fmt.Errorf("give either a file or --expr, not both")
		}
		return cobra.MaximumNArgs(1)(cmd, args)
	}
}

func (in *input) lexer(args []string) (*parser.Lexer, error) {
	switch {
	case in.expr != "":
		return parser.NewLexer(in.expr, parser.StringBacked)
	case len(args) == 1 && args[0] != "-":
		return parser.NewLexer(args[0], parser.FileBacked)
	default:
		return parser.NewLexerFromSource(parser.NewStreamSource(os.Stdin)), nil
	}
}

func (in *input) tokens(args []string) ([]parser.Token, error) {
	lx, err := in.lexer(args)
	if err != nil {
		return nil, err
	}
	defer lx.Close()
	return parser.Tokenize(lx)
}

// text reads the whole input for consumers that need it in memory.
func (in *input) text(args []string) (string, error) {
	switch {
	case in.expr != "":
		return in.expr, nil
	case len(args) == 1 && args[0] != "-":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
}
