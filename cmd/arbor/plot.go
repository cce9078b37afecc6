package main

import (
	"github.com/aretw0/arbor/internal/cli"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

var plotCmd = &cobra.Command{
	Use:   "plot [grammar]",
	Short: "Render a 2D preview of the branches",
	Long:  `Projects the branches onto a plane and draws them. The image format follows the output extension (png, svg, pdf...).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		opts := cli.PlotOptions{GenerateOptions: grammarOptions(cmd, args)}
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Plane, _ = cmd.Flags().GetString("plane")
		cm, _ := cmd.Flags().GetFloat64("size")
		opts.Size = vg.Length(cm) * vg.Centimeter
		return app.Plot(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	addGrammarFlags(plotCmd)
	plotCmd.Flags().StringP("output", "o", "", "Image file (default PNG on stdout)")
	plotCmd.Flags().String("plane", "xy", "Projection plane: xy, xz or zy")
	plotCmd.Flags().Float64("size", float64(cli.DefaultPlotSize/vg.Centimeter), "Image side in centimeters")
}
