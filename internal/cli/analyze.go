package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sprite-ai/bugalert/internal/model"
	"github.com/sprite-ai/bugalert/internal/report"
	"github.com/sprite-ai/bugalert/internal/source"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Analyze a source file and print a bug-risk report",
		Long: `Analyze one source file (or standard input with "-") and print the bug
probability, risk level, metrics and recommendations.
Useful for CI, pre-commit hooks, and piping into other tools.

Exit codes:
  0  low risk
  1  medium risk, or an error
  2  high risk`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runAnalyze,
	}

	f := cmd.Flags()
	f.Bool("sample", false, "analyze the built-in sample program")
	f.StringP("format", "f", "text", "output format: text, json, markdown, html")
	f.Int64("max-bytes", source.DefaultMaxBytes, "largest input accepted, 0 for no limit")
	f.Uint64("seed", 0, "seed for the confidence value, 0 for time based")
	a.bind("input.max_bytes", f.Lookup("max-bytes"))
	a.bind("scoring.seed", f.Lookup("seed"))
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	sample, _ := cmd.Flags().GetBool("sample")
	in, err := a.loadInput(cmd, args, sample)
	if err != nil {
		return err
	}
	if in.Blank() {
		return fmt.Errorf("no input: %w", source.ErrEmpty)
	}

	res := a.newScorer().Predict(in.Text)
	a.logger.Debug("analysis complete",
		"input", in.Name,
		"probability", res.BugProbability,
		"risk", res.RiskLevel.String(),
	)

	if err := report.Write(cmd.OutOrStdout(), format, report.Report{Input: in, Result: res}); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if code := exitCode(res.RiskLevel); code != 0 {
		cmd.SilenceErrors = true
		return &ExitError{Code: code}
	}
	return nil
}

// loadInput resolves the analyze arguments to a single input.
func (a *app) loadInput(cmd *cobra.Command, args []string, sample bool) (source.Input, error) {
	switch {
	case sample && len(args) > 0:
		return source.Input{}, errors.New("--sample cannot be combined with a file argument")
	case sample:
		return source.Sample(), nil
	case len(args) == 0:
		return source.Input{}, errors.New("no input: pass a file, - for stdin, or --sample")
	}
	return source.Load(args[0], cmd.InOrStdin(), a.cfg.Input.MaxBytes)
}

func exitCode(r model.RiskLevel) int {
	switch r {
	case model.RiskHigh:
		return 2
	case model.RiskMedium:
		return 1
	default:
		return 0
	}
}
