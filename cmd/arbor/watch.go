package main

import (
	"os"
	"strings"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/export"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/node"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var watchCmd = &cobra.Command{
	Use:   "watch <grammar>",
	Short: "Regenerate the output whenever the grammar changes",
	Long: `Development mode: binds the grammar file to step, angle and time attributes and
rewrites the output on every save. A broken grammar is reported and the last good output is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		opts := cli.WatchOptions{Path: args[0]}
		opts.Output, _ = flags.GetString("output")
		opts.Format, _ = flags.GetString("format")
		opts.Radius, _ = flags.GetFloat64("radius")
		opts.Attributes.StepSize, _ = flags.GetFloat64("step")
		opts.Attributes.Angle, _ = flags.GetFloat64("angle")
		opts.Attributes.Time, _ = flags.GetFloat64("time")
		if flags.Changed("seed") {
			v, _ := flags.GetInt64("seed")
			opts.Seed = &v
		}

		if term.IsTerminal(int(os.Stderr.Fd())) {
			tui.PrintBanner(os.Stderr, strings.TrimSpace(arbor.Version))
		}
		return app.Watch(cmd.Context(), opts)
	},
}

func init() {
	defaults := node.DefaultAttributes()

	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	watchCmd.Flags().StringP("format", "f", "", "Output format (default from config)")
	watchCmd.Flags().Float64("radius", export.DefaultRadius, "Profile radius of MEL branches")
	watchCmd.Flags().Float64("step", defaults.StepSize, "Step size attribute")
	watchCmd.Flags().Float64("angle", defaults.Angle, "Angle attribute in degrees")
	watchCmd.Flags().Float64("time", defaults.Time, "Time attribute; iterations are its floor")
	watchCmd.Flags().Int64("seed", 0, "Seed for stochastic grammars")
}
