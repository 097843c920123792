package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tiehuis/cc/expr/parser"
	"github.com/tiehuis/cc/format"
)

func newParseCmd() *cobra.Command {
	var in input
	var outputFormat string
	var strict bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an expression and dump its syntax tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

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

			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}
	cmd.Args = in.args()
	in.register(cmd)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, ascii, json, source)")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject tokens after the expression")

	return cmd
}
