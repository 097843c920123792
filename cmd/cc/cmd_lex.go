package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tiehuis/cc/format"
)

func newLexCmd() *cobra.Command {
	var in input
	var whitespace bool

	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Print the token stream of an expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := in.tokens(args)
			if err != nil {
				return fmt.Errorf("lex: %w", err)
			}
			return format.NewLineEncoder(cmd.OutOrStdout()).SkipWhitespace(!whitespace).Encode(tokens)
		},
	}
	cmd.Args = in.args()
	in.register(cmd)
	cmd.Flags().BoolVar(&whitespace, "whitespace", false, "include whitespace tokens")

	return cmd
}
