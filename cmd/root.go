// Copyright © 2018 The ELPS authors

// Package cmd implements the eclj command line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luthersystems/eclj/lisp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys.  Each key may be set in the config file, with an
// ECLJ_ environment variable (dashes become underscores), or with the
// persistent flag of the same name.
const (
	keyMaxDepth    = "max-depth"
	keyLogLevel    = "log-level"
	keyColor       = "color"
	keyHistoryFile = "history-file"
)

var cfgFile string

// errReported is returned by commands which have already rendered their
// failure to stderr.
var errReported = errors.New("error reported")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eclj",
	Short: "ECLJ, a small Clojure-flavoured Lisp interpreter",
	Long: `ECLJ is a small interpreter for a Clojure-flavoured Lisp.  It provides a
REPL, a file runner and built-in documentation.

Getting started:
  eclj run file.clj            Run a source file
  eclj run -p -e '(+ 1 2)'     Evaluate an expression and print the result
  eclj repl                    Start an interactive REPL
  eclj doc cons                Show documentation for a primitive
  eclj doc -l                  List every primitive and special form

Language overview:
  Lists are written (f a b) and vectors [a b].  Vectors evaluate to
  themselves.  Only false and nil are falsy.  Procedures are created with
  (fn [params] body) or (defn name [params] body).  Keywords such as :a and
  :ns/a evaluate to themselves.

Configuration is read from $HOME/.eclj.yaml and ECLJ_* environment
variables.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.eclj.yaml)")
	flags.String(keyColor, "auto", `Control colored output: "auto", "always", or "never".`)
	flags.String(keyLogLevel, "warn", "Interpreter log level (trace, debug, info, warn, error).")
	flags.Int(keyMaxDepth, lisp.DefaultMaxHeight, "Maximum call stack height (0 for unlimited).")
	for _, key := range []string{keyColor, keyLogLevel, keyMaxDepth} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(ReplCommand(), RunCommand(), DocCommand())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyMaxDepth, lisp.DefaultMaxHeight)
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyColor, "auto")
	v.SetDefault(keyHistoryFile, defaultHistoryFile())
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".eclj_history")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".eclj")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ECLJ")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !(errors.As(err, &notFound) && cfgFile == "") {
		fmt.Fprintln(os.Stderr, "error: reading config:", err)
		os.Exit(1)
	}
	if level, lerr := logrus.ParseLevel(viper.GetString(keyLogLevel)); lerr == nil {
		logrus.SetLevel(level)
	}
	if err == nil {
		logrus.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}
