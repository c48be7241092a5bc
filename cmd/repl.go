// Copyright © 2018 The ELPS authors

package cmd

import (
	"io"
	"os"

	"github.com/luthersystems/eclj/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ReplPrompt is the prompt displayed by the repl command.
const ReplPrompt = "eclj> "

// ReplCommand returns the repl command.
func ReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive REPL",
		Long: `Start an interactive read-eval-print loop.

Each line is evaluated as a sequence of forms in a global environment that
persists for the whole session.  Line editing, command history and symbol
completion are supported via readline.  Use Ctrl-D to exit.

Example REPL session:
  eclj> (defn add3 [a b c] (+ a b c))
  ok
  eclj> (add3 1 2 3)
  6
  eclj> (cons 1 [2 3])
  (1 2 3)
  eclj> (car 1)
  error: native-error: car: argument is not a sequence: number`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
			logger, err := newLogger(stderr)
			if err != nil {
				return err
			}
			opts := []repl.Option{
				repl.WithStdout(stdout),
				repl.WithStderr(stderr),
				repl.WithHistoryFile(viper.GetString(keyHistoryFile)),
				repl.WithColor(colorMode()),
				repl.WithEnvConfig(envConfig(stdout, stderr, logger)...),
			}
			if in := cmd.InOrStdin(); in != os.Stdin {
				opts = append(opts, repl.WithStdin(io.NopCloser(in)))
			}
			return repl.RunRepl(ReplPrompt, opts...)
		},
	}
}
