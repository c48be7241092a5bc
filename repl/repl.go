// Copyright © 2018 The ELPS authors

// Package repl implements the interactive line-based front end.  Each input
// line is read, wrapped in an implicit do form and evaluated against a
// long-lived root environment.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/eclj/diagnostic"
	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/parser"
)

// InputName is the source name given to each line read by the REPL.
const InputName = "stdin"

type config struct {
	stdin       io.ReadCloser
	stdout      io.Writer
	stderr      io.Writer
	historyFile *string
	color       diagnostic.ColorMode
	envConfig   []lisp.Config
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures a REPL.
type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStdout allows overriding the stream that results and program output
// are written to.
func WithStdout(stdout io.Writer) Option {
	return func(c *config) {
		c.stdout = stdout
	}
}

// WithStderr allows overriding the stream that prompts and diagnostics are
// written to.
func WithStderr(stderr io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithHistoryFile sets the readline history file.  An empty path disables
// history.  The default is ~/.eclj_history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = &path
	}
}

// WithColor sets the color mode used to render diagnostics.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithEnvConfig adds config applied to the environment created by RunRepl.
func WithEnvConfig(cfgs ...lisp.Config) Option {
	return func(c *config) {
		c.envConfig = append(c.envConfig, cfgs...)
	}
}

// RunRepl runs a repl in a new root environment with the default
// primitives installed.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	env := lisp.NewEnvRuntime(nil)
	envOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
	}
	if cfg.stdout != nil {
		envOpts = append(envOpts, lisp.WithStdout(cfg.stdout))
	}
	if cfg.stderr != nil {
		envOpts = append(envOpts, lisp.WithStderr(cfg.stderr))
	}
	envOpts = append(envOpts, cfg.envConfig...)
	err := lisp.InitializeUserEnv(env, envOpts...)
	if err != nil {
		return fmt.Errorf("language initialization failure: %w", err)
	}
	return RunEnv(env, prompt, opts...)
}

// RunEnv runs a repl with env as the global environment.  RunEnv returns nil
// when the input stream is exhausted.
func RunEnv(env *lisp.LEnv, prompt string, opts ...Option) error {
	if env.Parent != nil {
		return errors.New("repl environment is not a root environment")
	}
	if env.Runtime.Reader == nil {
		env.Runtime.Reader = parser.NewReader()
	}
	cfg := newConfig(opts...)
	stdout := cfg.stdout
	if stdout == nil {
		stdout = env.Runtime.Stdout
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := cfg.stderr
	if stderr == nil {
		stderr = env.Runtime.Stderr
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	history := historyPath()
	if cfg.historyFile != nil {
		history = *cfg.historyFile
	}
	ensureHistoryFilePermissions(history)

	rlCfg := &readline.Config{
		Stdout:            stderr,
		Stderr:            stderr,
		Prompt:            prompt,
		HistoryFile:       history,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: env},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	s := &session{
		env:    env,
		stdout: stdout,
		stderr: stderr,
		color:  cfg.color,
	}
	for {
		line, err := rl.ReadSlice()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		s.evalLine(string(line))
	}
	_, err = fmt.Fprintln(stdout, "REPL closing.")
	return err
}

// session evaluates the lines of a single REPL run.
type session struct {
	env    *lisp.LEnv
	stdout io.Writer
	stderr io.Writer
	color  diagnostic.ColorMode
}

// evalLine evaluates every form in line as the body of an implicit do form.
// Lines containing no forms are ignored.
func (s *session) evalLine(line string) {
	forms, err := s.env.Runtime.Reader.Read(InputName, strings.NewReader(line))
	if err != nil {
		s.renderError(line, err)
		return
	}
	if len(forms) == 0 {
		return
	}
	if logger := s.env.Runtime.Logger; logger != nil {
		logger.WithField("forms", len(forms)).Debug("read line")
	}
	cells := make([]*lisp.LVal, 0, len(forms)+1)
	cells = append(cells, lisp.Symbol("do"))
	cells = append(cells, forms...)
	v, err := s.env.Eval(lisp.List(cells))
	if err != nil {
		s.renderError(line, err)
		return
	}
	fmt.Fprintln(s.stdout, v) //nolint:errcheck // best-effort REPL output
}

// renderError writes err as a diagnostic.  The current line is the only
// source available to annotate.
func (s *session) renderError(line string, err error) {
	r := &diagnostic.Renderer{
		Color: s.color,
		SourceReader: func(name string) ([]byte, error) {
			if name != InputName {
				return os.ReadFile(name)
			}
			return []byte(line), nil
		},
	}
	rerr := r.RenderError(s.stderr, err)
	if rerr != nil && s.env.Runtime.Logger != nil {
		s.env.Runtime.Logger.WithError(rerr).Warn("failed to render diagnostic")
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".eclj_history")
}

// ensureHistoryFilePermissions creates path if necessary and restricts it to
// the current user.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // user-configured history path
	if err != nil {
		return
	}
	f.Close() //nolint:errcheck,gosec // opened only to create the file
	_ = os.Chmod(path, 0600)
}
