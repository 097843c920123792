package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tiehuis/cc/expr/eval"
	"github.com/tiehuis/cc/expr/parser"
)

func newEvalCmd() *cobra.Command {
	var in input
	var strict bool

	cmd := &cobra.Command{
		Use:   "eval [file]",
		Short: "Evaluate an expression and print its value",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := in.tokens(args)
			if err != nil {
				return fmt.Errorf("lex: %w", err)
			}

			var opts []parser.Option
			if strict {
				opts = append(opts, parser.WithStrict())
			}
			node, err := parser.ParseTokens(tokens, opts...)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			value, err := eval.Eval(node)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	cmd.Args = in.args()
	in.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "reject tokens after the expression")

	return cmd
}
