package main

import (
	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [grammar]",
	Short: "Summarize a grammar and its expansion",
	Long:  `Prints the rules, expansion statistics and bounds of a grammar, or its rule graph as a Mermaid diagram (graph TD).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		return app.Inspect(cmd.Context(), grammarOptions(cmd, args), mermaid)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [grammar]",
	Short: "Check a grammar for syntax and bracket errors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Validate(cmd.Context(), grammarOptions(cmd, args))
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <grammar>",
	Short: "Rewrite a grammar in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		opts := cli.FmtOptions{Source: cli.Source{Path: args[0]}}
		opts.YAML, _ = cmd.Flags().GetBool("yaml")
		opts.Write, _ = cmd.Flags().GetBool("write")
		return app.Fmt(cmd.Context(), opts)
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the preset grammars",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Presets()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addGrammarFlags(inspectCmd)
	inspectCmd.Flags().Bool("mermaid", false, "Print the rule graph as Mermaid")

	rootCmd.AddCommand(validateCmd)
	addGrammarFlags(validateCmd)

	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().Bool("yaml", false, "Print the YAML form")
	fmtCmd.Flags().BoolP("write", "w", false, "Rewrite the file in place")

	rootCmd.AddCommand(presetsCmd)
}
