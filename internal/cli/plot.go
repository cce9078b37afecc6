package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/arbor/internal/presentation/plot"
	"gonum.org/v1/plot/vg"
)

// DefaultPlotSize is the side of the square preview.
const DefaultPlotSize = 12 * vg.Centimeter

// PlotOptions configures a 2D preview of the branches.
type PlotOptions struct {
	GenerateOptions
	Plane string
	Size  vg.Length
}

// Plot renders a projection of the branches to opts.Output; the image format follows the
// file extension. Without an output file a PNG is written to Out.
func (a *App) Plot(ctx context.Context, opts PlotOptions) error {
	if opts.Plane == "" {
		opts.Plane = string(plot.PlaneXY)
	}
	plane, err := plot.ParsePlane(opts.Plane)
	if err != nil {
		return err
	}
	size := opts.Size
	if size <= 0 {
		size = DefaultPlotSize
	}

	res, err := a.Build(ctx, opts.GenerateOptions)
	if err != nil {
		return err
	}

	p := plot.New(res.Branches, plot.Options{
		Title: fmt.Sprintf("%s (n=%d)", res.Name, res.Iterations),
		Plane: plane,
	})

	if opts.Output == "" || opts.Output == "-" {
		return plot.Write(a.Out, p, size, "png")
	}
	if err := plot.Save(p, size, opts.Output); err != nil {
		return err
	}
	a.Logger.Info("preview written", "path", opts.Output,
		"format", strings.TrimPrefix(filepath.Ext(opts.Output), "."), "plane", plane)
	return nil
}
