package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tiehuis/cc/expr/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the expression grammar in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarLexCmd())
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file, or the built-in grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) == 0 {
				_, err = grammar.Load()
			} else {
				_, err = grammar.LoadFile(args[0], startProduction)
			}
			if err != nil {
				for _, e := range grammar.Errors(err) {
					fmt.Fprintln(cmd.OutOrStdout(), e)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarLexCmd() *cobra.Command {
	var in input

	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Tokenize with the grammar instead of the built-in lexer",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := in.text(args)
			if err != nil {
				return err
			}
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			lx, err := grammar.NewLexer(g, text)
			if err != nil {
				return err
			}
			tokens, err := lx.Tokenize()
			if err != nil {
				return fmt.Errorf("lex: %w", err)
			}
			for _, tok := range tokens {
				if tok.Kind == "whitespace" {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", tok.Pos, tok.Kind, tok.Text)
			}
			return nil
		},
	}
	cmd.Args = in.args()
	in.register(cmd)

	return cmd
}

func newGrammarMatchCmd() *cobra.Command {
	var in input
	var startProduction string

	cmd := &cobra.Command{
		Use:   "match [file]",
		Short: "Check an expression against the grammar with an Earley recognizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := in.tokens(args)
			if err != nil {
				return fmt.Errorf("lex: %w", err)
			}
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			r, err := grammar.NewRecognizer(g)
			if err != nil {
				return err
			}
			if err := r.Recognize(startProduction, tokens); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Args = in.args()
	in.register(cmd)
	cmd.Flags().StringVar(&startProduction, "start", "Expression", "production the input must derive from")

	return cmd
}
