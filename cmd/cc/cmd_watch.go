package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tiehuis/cc/expr/workspace"
)

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-evaluate " + workspace.Ext + " files whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("stat %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			fw := workspace.NewFileWatcher(workspace.New(dir), interval)
			fw.OnChange = reporter(cmd.OutOrStdout(), dir)
			fw.Start()

			sigc := make(chan os.Signal, 1)
			signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigc)
			<-sigc

			fw.Stop()
			return nil
		},
	}
	cmd.Flags().DurationVarP(&interval, "interval", "i", time.Second, "polling interval")

	return cmd
}

// reporter prints one line per changed file, relative to dir.
func reporter(out io.Writer, dir string) func(string, *workspace.File) {
	return func(path string, f *workspace.File) {
		name := path
		if rel, err := filepath.Rel(dir, path); err == nil {
			name = rel
		}
		switch {
		case f == nil:
			fmt.Fprintf(out, "%s: removed\n", name)
		case f.ParseErr != nil:
			fmt.Fprintf(out, "%s: %s\n", name, f.ParseErr)
		case f.EvalErr != nil:
			fmt.Fprintf(out, "%s: %s\n", name, f.EvalErr)
		default:
			fmt.Fprintf(out, "%s = %d\n", name, f.Value)
		}
	}
}
