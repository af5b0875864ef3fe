// Package render draws solver results with gonum/plot.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"honnef.co/go/lenseq"
)

// Scene is the content of a plot: the searched region, the source position
// and the solutions found for it.
type Scene struct {
	Title   string
	Bounds  lenseq.Rect
	Beta    lenseq.Point
	Images  []lenseq.Point
	Sources []lenseq.Point
}

var (
	gridColor   = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	imageColor  = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	sourceColor = color.RGBA{R: 40, G: 80, B: 200, A: 255}
	betaColor   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// Size of saved plots.
const (
	Width  = 6 * vg.Inch
	Height = 6 * vg.Inch
)

// New builds the plot for s. Image positions and their source-plane
// counterparts share the same axes.
func New(s Scene) (*plot.Plot, error) {
	if len(s.Images) != len(s.Sources) {
		return nil, fmt.Errorf("got %d images but %d sources", len(s.Images), len(s.Sources))
	}

	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	b := s.Bounds
	outline, err := plotter.NewPolygon(plotter.XYs{
		{X: b.X0, Y: b.Y0},
		{X: b.X1, Y: b.Y0},
		{X: b.X1, Y: b.Y1},
		{X: b.X0, Y: b.Y1},
	})
	if err != nil {
		return nil, fmt.Errorf("grid outline: %w", err)
	}
	outline.Color = nil
	outline.LineStyle.Color = gridColor
	outline.LineStyle.Width = vg.Points(1)
	p.Add(outline)
	p.Legend.Add("search grid", outline)

	if len(s.Images) > 0 {
		images, err := scatter(s.Images, imageColor, draw.CrossGlyph{})
		if err != nil {
			return nil, fmt.Errorf("images: %w", err)
		}
		p.Add(images)
		p.Legend.Add("images θ", images)

		sources, err := scatter(s.Sources, sourceColor, draw.RingGlyph{})
		if err != nil {
			return nil, fmt.Errorf("sources: %w", err)
		}
		p.Add(sources)
		p.Legend.Add("mapped β(θ)", sources)
	}

	beta, err := scatter([]lenseq.Point{s.Beta}, betaColor, draw.PlusGlyph{})
	if err != nil {
		return nil, fmt.Errorf("beta: %w", err)
	}
	beta.GlyphStyle.Radius = vg.Points(5)
	p.Add(beta)
	p.Legend.Add("source β", beta)

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	p.X.Min, p.X.Max = b.X0, b.X1
	p.Y.Min, p.Y.Max = b.Y0, b.Y1
	return p, nil
}

func scatter(pts []lenseq.Point, c color.Color, shape draw.GlyphDrawer) (*plotter.Scatter, error) {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X, xys[i].Y = pt.Splat()
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Shape = shape
	sc.GlyphStyle.Radius = vg.Points(3)
	return sc, nil
}

// ErrNoPath is returned by Save for an empty output path.
var ErrNoPath = errors.New("no output path configured")

// Save renders s to path. The image format is chosen from the file extension,
// as supported by gonum/plot (png, svg, pdf, ...).
func Save(path string, s Scene) error {
	if path == "" {
		return ErrNoPath
	}
	p, err := New(s)
	if err != nil {
		return err
	}
	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
