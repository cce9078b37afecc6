package main

import (
	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

// addGrammarFlags registers the source and override flags shared by the commands that
// load a grammar.
func addGrammarFlags(cmd *cobra.Command) {
	cmd.Flags().String("preset", "", "Use a built-in preset instead of a grammar file")
	cmd.Flags().UintP("iterations", "n", 0, "Rewriting iterations (default from preset or config)")
	cmd.Flags().Float64("angle", 0, "Turn angle in degrees, overriding the grammar")
	cmd.Flags().Float64("step", 0, "Step length, overriding the grammar")
	cmd.Flags().Int64("seed", 0, "Seed for stochastic grammars")
}

// grammarOptions reads the flags registered by addGrammarFlags. Flags left unset stay nil
// so the configuration and the grammar can supply them.
func grammarOptions(cmd *cobra.Command, args []string) cli.GenerateOptions {
	flags := cmd.Flags()
	var opts cli.GenerateOptions
	if len(args) > 0 {
		opts.Path = args[0]
	}
	opts.Preset, _ = flags.GetString("preset")

	if flags.Changed("iterations") {
		n, _ := flags.GetUint("iterations")
		opts.Iterations = &n
	}
	if flags.Changed("angle") {
		v, _ := flags.GetFloat64("angle")
		opts.Angle = &v
	}
	if flags.Changed("step") {
		v, _ := flags.GetFloat64("step")
		opts.Step = &v
	}
	if flags.Changed("seed") {
		v, _ := flags.GetInt64("seed")
		opts.Seed = &v
	}
	return opts
}
