package plot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plane selects the two world axes a preview is projected onto.
type Plane string

const (
	PlaneXY Plane = "xy" // front view, growth axis up
	PlaneXZ Plane = "xz" // top view
	PlaneZY Plane = "zy" // side view
)

// ParsePlane validates a user supplied plane name.
func ParsePlane(s string) (Plane, error) {
	switch p := Plane(strings.ToLower(strings.TrimSpace(s))); p {
	case PlaneXY, PlaneXZ, PlaneZY:
		return p, nil
	default:
		return "", fmt.Errorf("unknown projection plane %q (want xy, xz or zy)", s)
	}
}

// Project maps a world point onto the plane.
func (p Plane) Project(v r3.Vec) (x, y float64) {
	switch p {
	case PlaneXZ:
		return v.X, v.Z
	case PlaneZY:
		return v.Z, v.Y
	default:
		return v.X, v.Y
	}
}

// Skeleton implements the plot.Plotter interface, drawing each branch as a line segment.
type Skeleton struct {
	Branches []domain.Branch
	Plane    Plane
	draw.LineStyle
}

// NewSkeleton returns a plotter for branches with a thin dark line style.
func NewSkeleton(branches []domain.Branch, plane Plane) *Skeleton {
	return &Skeleton{
		Branches: branches,
		Plane:    plane,
		LineStyle: draw.LineStyle{
			Color: color.RGBA{R: 0x3f, G: 0x2a, B: 0x14, A: 0xff},
			Width: vg.Points(0.75),
		},
	}
}

// Plot implements the plot.Plotter interface.
func (s *Skeleton) Plot(c draw.Canvas, p *gonumplot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, b := range s.Branches {
		x1, y1 := s.Plane.Project(b.Start)
		x2, y2 := s.Plane.Project(b.End)
		c.StrokeLine2(s.LineStyle, trX(x1), trY(y1), trX(x2), trY(y2))
	}
}

// DataRange implements the plot.DataRanger interface.
// The range is squared around its center so the preview keeps the tree's proportions.
func (s *Skeleton) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(s.Branches) == 0 {
		return -1, 1, -1, 1
	}
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, b := range s.Branches {
		for _, v := range [2]r3.Vec{b.Start, b.End} {
			x, y := s.Plane.Project(v)
			xmin, xmax = min(xmin, x), max(xmax, x)
			ymin, ymax = min(ymin, y), max(ymax, y)
		}
	}

	half := max(xmax-xmin, ymax-ymin, 1e-9) / 2
	cx, cy := (xmin+xmax)/2, (ymin+ymax)/2
	return cx - half, cx + half, cy - half, cy + half
}

// Options configures a preview.
type Options struct {
	Title string
	Plane Plane
}

// New builds a preview plot of branches.
func New(branches []domain.Branch, opts Options) *gonumplot.Plot {
	plane := opts.Plane
	if plane == "" {
		plane = PlaneXY
	}

	p := gonumplot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = strings.ToUpper(string(plane[0:1]))
	p.Y.Label.Text = strings.ToUpper(string(plane[1:2]))
	p.Add(NewSkeleton(branches, plane))
	return p
}

// Save renders the plot to a file; the format follows the extension (png, svg, pdf, ...).
func Save(p *gonumplot.Plot, size vg.Length, path string) error {
	if err := p.Save(size, size, path); err != nil {
		return fmt.Errorf("failed to save preview %s: %w", path, err)
	}
	return nil
}

// Write renders the plot to w in the given format (png, svg, pdf, ...).
func Write(w io.Writer, p *gonumplot.Plot, size vg.Length, format string) error {
	wt, err := p.WriterTo(size, size, format)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
