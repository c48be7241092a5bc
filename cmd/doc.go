// Copyright © 2021 The ELPS authors

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/luthersystems/eclj/lisp"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

type docOptions struct {
	sourceFile string
	list       bool
}

// DocCommand returns the doc command.
func DocCommand() *cobra.Command {
	opts := &docOptions{}
	cmd := &cobra.Command{
		Use:   "doc [flags] NAME",
		Short: "Show documentation for procedures and special forms",
		Long: `Show documentation for a special form, primitive procedure, or any other
name bound in the global environment.

Procedures have their signature and any docstring rendered.  Other values
have their type and current value printed.  Use -f to evaluate a source
file first (useful for documenting your own code).

Examples:
  eclj doc cons                    Show docs for the cons primitive
  eclj doc cond                    Show docs for the cond special form
  eclj doc -f mylib.clj my-func    Load a file, then show docs for my-func
  eclj doc -l                      List every documented name`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.loadEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := bufio.NewWriter(cmd.OutOrStdout())
			if opts.list {
				err = renderNames(out, env)
			} else {
				err = renderDoc(out, env, args[0])
			}
			if err != nil {
				return err
			}
			return out.Flush()
		},
	}
	cmd.Flags().StringVarP(&opts.sourceFile, "source-file", "f", "",
		"Evaluate a lisp source file before querying documentation.")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false,
		"List special forms and global bindings.")
	return cmd
}

// loadEnv returns an environment with the source file loaded.  Program
// output produced while loading is discarded.
func (opts *docOptions) loadEnv(stderr io.Writer) (*lisp.LEnv, error) {
	env, err := newEnv(io.Discard, stderr)
	if err != nil {
		return nil, err
	}
	if opts.sourceFile == "" {
		return env, nil
	}
	text, err := os.ReadFile(opts.sourceFile) //nolint:gosec // reads a user-specified source file
	if err != nil {
		return nil, err
	}
	_, err = env.LoadString(opts.sourceFile, string(text))
	if err != nil {
		return nil, renderError(stderr, map[string][]byte{opts.sourceFile: text}, err)
	}
	return env, nil
}

func renderDoc(w io.Writer, env *lisp.LEnv, name string) error {
	for _, form := range lisp.SpecialForms() {
		if form.Name == name {
			if _, err := fmt.Fprintf(w, "special form %s\n", form.Formals); err != nil {
				return err
			}
			return writeDocstring(w, form.Doc)
		}
	}
	exprs, err := env.Runtime.Reader.Read("query", strings.NewReader(name))
	if err != nil {
		return err
	}
	if len(exprs) != 1 || exprs[0].Type != lisp.LSymbol {
		return fmt.Errorf("not a symbol: %s", name)
	}
	v, err := env.Lookup(exprs[0])
	if err != nil {
		return fmt.Errorf("no documentation for %s: %w", name, err)
	}
	switch {
	case v.IsPrimitive():
		sig, doc, _ := strings.Cut(v.Doc, "\n\n")
		if _, err := fmt.Fprintf(w, "primitive %s\n", sig); err != nil {
			return err
		}
		return writeDocstring(w, doc)
	case v.IsCompound():
		sig := make([]*lisp.LVal, 0, 1+v.Params().Len())
		sig = append(sig, exprs[0])
		sig = append(sig, v.Params().Cells...)
		if _, err := fmt.Fprintf(w, "compound %v\n", lisp.List(sig)); err != nil {
			return err
		}
		return writeDocstring(w, v.Doc)
	}
	_, err = fmt.Fprintf(w, "%s %s %v\n", v.Type, name, v)
	return err
}

func writeDocstring(w io.Writer, doc string) error {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return nil
	}
	doc = indent.String(wordwrap.String(doc, 72), 2)
	_, err := fmt.Fprintln(w, strings.TrimSuffix(doc, "\n"))
	return err
}

// renderNames lists every special form and global binding with its kind.
func renderNames(w io.Writer, env *lisp.LEnv) error {
	kinds := make(map[string]string)
	for _, form := range lisp.SpecialForms() {
		kinds[form.Name] = "special form"
	}
	root := env.Root()
	for _, name := range root.Names() {
		if _, ok := kinds[name]; ok {
			continue
		}
		v := root.Scope[name]
		switch {
		case v.IsPrimitive():
			kinds[name] = lisp.FunPrimitive.String()
		case v.IsCompound():
			kinds[name] = lisp.FunCompound.String()
		default:
			kinds[name] = v.Type.String()
		}
	}
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%-12s %s\n", name, kinds[name]); err != nil {
			return err
		}
	}
	return nil
}
