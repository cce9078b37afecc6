package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/internal/presentation/export"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [grammar]",
	Short: "Generate branch geometry from a grammar",
	Long: fmt.Sprintf(`Expands the grammar, interprets it with the turtle and writes the branches.

Supported formats: %s.`, formatList()),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		opts := grammarOptions(cmd, args)
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Radius, _ = cmd.Flags().GetFloat64("radius")
		return app.Generate(cmd.Context(), opts)
	},
}

var expandCmd = &cobra.Command{
	Use:   "expand [grammar]",
	Short: "Print the rewritten symbol sequence",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Expand(cmd.Context(), grammarOptions(cmd, args))
	},
}

func formatList() string {
	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGrammarFlags(generateCmd)
	generateCmd.Flags().StringP("format", "f", "", "Output format (default from config)")
	generateCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	generateCmd.Flags().Float64("radius", export.DefaultRadius, "Profile radius of MEL branches")

	rootCmd.AddCommand(expandCmd)
	addGrammarFlags(expandCmd)
}
