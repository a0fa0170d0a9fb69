package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/sprite-ai/bugalert/internal/source"
	"github.com/sprite-ai/bugalert/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Open the interactive terminal UI",
		Long: `Open a terminal UI with a code editor on the left and the analysis on
the right. Paste code, load a file, or press ctrl+s for the built-in sample,
then press ctrl+r to analyze.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runTUI,
	}

	f := cmd.Flags()
	f.Bool("sample", false, "start with the built-in sample program")
	f.Duration("delay", 0, "simulated latency before results appear")
	return cmd
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	sample, _ := cmd.Flags().GetBool("sample")
	delay, _ := cmd.Flags().GetDuration("delay")

	var in source.Input
	switch {
	case sample && len(args) > 0:
		return errors.New("--sample cannot be combined with a file argument")
	case sample:
		in = source.Sample()
	case len(args) == 1:
		if args[0] == "-" {
			return errors.New("the terminal UI reads from the keyboard; pass a file instead of -")
		}
		loaded, err := source.Load(args[0], nil, a.cfg.Input.MaxBytes)
		if err != nil {
			return err
		}
		in = loaded
	}

	return tui.Run(tui.Options{
		Scorer: a.newScorer(),
		Input:  in,
		Delay:  delay,
	})
}
