// Copyright © 2018 The ELPS authors

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/lisp/x/profiler"
	"github.com/spf13/cobra"
)

type runOptions struct {
	expression bool
	print      bool
	trace      string
	traceDocs  bool
}

// RunCommand returns the run command.
func RunCommand() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [flags] FILE...",
		Short: "Run source files or expressions",
		Long: `Run source code supplied via files or the command line.

Every file is evaluated in order in a single environment, so definitions
made by one file are visible to the files after it.  An argument of the form
DIR/... runs every .clj and .eclj file under DIR.  Evaluation stops at the
first error, which is reported with the location of the failing form.

Examples:
  eclj run main.clj
  eclj run lib/... main.clj
  eclj run -p -e '(cons 1 [2 3])'
  eclj run --trace otel --log-level info main.clj`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&opts.expression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	flags.BoolVarP(&opts.print, "print", "p", false,
		"Print expression values to stdout")
	flags.StringVar(&opts.trace, "trace", "",
		`Log a span for every procedure application ("otel" or "opencensus")`)
	flags.BoolVar(&opts.traceDocs, "trace-docs", false,
		`Only trace procedures whose docstring contains "@trace"`)
	return cmd
}

// source is a named unit of source text.
type source struct {
	name string
	text []byte
}

func (opts *runOptions) run(stdout, stderr io.Writer, args []string) (err error) {
	srcs, err := opts.readSources(args)
	if err != nil {
		return err
	}
	env, err := newEnv(stdout, stderr)
	if err != nil {
		return err
	}
	if opts.trace != "" {
		var popts []profiler.Option
		if opts.traceDocs {
			popts = append(popts, profiler.WithDocFilter(), profiler.WithDocLabeler())
		}
		complete, err := enableTracing(context.Background(), opts.trace, env, env.Runtime.Logger, popts...)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := complete(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	texts := make(map[string][]byte, len(srcs))
	for _, src := range srcs {
		texts[src.name] = src.text
	}
	for _, src := range srcs {
		err := opts.eval(env, stdout, src)
		if err != nil {
			return renderError(stderr, texts, err)
		}
	}
	return nil
}

func (opts *runOptions) eval(env *lisp.LEnv, stdout io.Writer, src source) error {
	exprs, err := env.Runtime.Reader.Read(src.name, bytes.NewReader(src.text))
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		v, err := env.Eval(expr)
		if err != nil {
			return err
		}
		if opts.print {
			if _, err := fmt.Fprintln(stdout, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (opts *runOptions) readSources(args []string) ([]source, error) {
	if opts.expression {
		srcs := make([]source, len(args))
		for i, arg := range args {
			srcs[i] = source{name: fmt.Sprintf("<expr %d>", i+1), text: []byte(arg)}
		}
		return srcs, nil
	}
	paths, err := expandArgs(args)
	if err != nil {
		return nil, err
	}
	srcs := make([]source, len(paths))
	for i, path := range paths {
		b, err := os.ReadFile(path) //nolint:gosec // runs user-specified source files
		if err != nil {
			return nil, err
		}
		srcs[i] = source{name: path, text: b}
	}
	return srcs, nil
}
