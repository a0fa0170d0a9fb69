// Package cli wires the bugalert commands together.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/sprite-ai/bugalert/internal/config"
	"github.com/sprite-ai/bugalert/internal/scoring"
)

// ExitError ends the process with Code without printing an error message.
// analyze uses it to report the risk level as the exit status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// app is the state shared by the commands of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRootCmd builds the bugalert command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "bugalert",
		Short: "Estimate how likely a piece of code is to contain bugs",
		Long: `bugalert reads source code, extracts lexical metrics (size, complexity,
nesting, comments, duplication) and turns them into a bug probability, a risk
level and a list of recommendations.

It works on any language and never executes or parses the code.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default .bugalert.yaml in . or $HOME)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	a.bind("log.level", pf.Lookup("log-level"))
	a.bind("log.format", pf.Lookup("log-format"))

	rootCmd.AddCommand(
		newAnalyzeCmd(a),
		newServeCmd(a),
		newTUICmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		var exit *ExitError
		if errors.As(err, &exit) {
			return exit.Code
		}
		return 1
	}
	return 0
}

func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
	a.logger.Debug("config loaded", "file", a.v.ConfigFileUsed())
	return nil
}

// bind ties a flag to a config key. Flag names are fixed at build time, so a
// failure is a programming error.
func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

func (a *app) newScorer() *scoring.Scorer {
	return scoring.New(scoring.WithSeed(a.cfg.Scoring.Seed))
}
