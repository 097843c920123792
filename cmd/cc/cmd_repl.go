package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/tiehuis/cc/expr/eval"
	"github.com/tiehuis/cc/expr/parser"
	"github.com/tiehuis/cc/format"
	"github.com/tliron/commonlog"
)

const (
	prompt      = " > "
	historyFile = ".cc_history"
)

var replLog = commonlog.GetLogger("cc.repl")

func newReplCmd() *cobra.Command {
	var showTree bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read expressions line by line and print their values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			if histPath, ok := historyPath(os.UserHomeDir); ok {
				if f, err := os.Open(histPath); err == nil {
					_, _ = ln.ReadHistory(f)
					_ = f.Close()
				}
				defer func() {
					if f, err := os.Create(histPath); err == nil {
						_, _ = ln.WriteHistory(f)
						_ = f.Close()
					}
				}()
			}

			r := newRepl(cmd.OutOrStdout())
			r.showTree = showTree
			r.history = ln.AppendHistory
			return r.run(ln)
		},
	}
	cmd.Flags().BoolVar(&showTree, "tree", false, "print the syntax tree before each value")

	return cmd
}

// historyPath locates the history file in the home directory. Without a
// home directory history is not kept.
func historyPath(home func() (string, error)) (string, bool) {
	dir, err := home()
	if err != nil || dir == "" {
		replLog.Warningf("history disabled: no home directory: %v", err)
		return "", false
	}
	return filepath.Join(dir, historyFile), true
}

type prompter interface {
	Prompt(prompt string) (string, error)
}

// repl evaluates one line at a time. Every line's tree lives in the same
// arena, which is reset once the line has been printed.
type repl struct {
	out      io.Writer
	arena    *parser.Arena
	showTree bool
	history  func(string)
}

func newRepl(out io.Writer) *repl {
	return &repl{out: out, arena: parser.NewArena()}
}

func (r *repl) run(p prompter) error {
	for {
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return nil
		}
		if r.history != nil {
			r.history(line)
		}
		r.line(line)
	}
}

func (r *repl) line(text string) {
	defer r.arena.Reset()

	lx := parser.NewLexerFromSource(parser.NewStringSource(text))
	tokens, err := parser.Tokenize(lx)
	if err != nil {
		replLog.Debugf("lex %q: %s", text, err)
		fmt.Fprintln(r.out, "Invalid Syntax")
		return
	}

	node, err := parser.ParseTokens(tokens, parser.WithArena(r.arena))
	if err != nil {
		replLog.Debugf("parse %q: %s", text, err)
		fmt.Fprintln(r.out, "Invalid expression")
		return
	}

	if r.showTree {
		if err := format.NewASCIIEncoder(r.out).Encode(node); err != nil {
			replLog.Warningf("print tree: %s", err)
		}
	}

	value, err := eval.Eval(node)
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	fmt.Fprintln(r.out, value)
	replLog.Debugf("%q = %d, %d nodes", text, value, r.arena.Len())
}
