package lenseq

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrGridShape is returned when the x and y coordinate grids are empty or
// differ in shape.
var ErrGridShape = errors.New("invalid grid shape")

// Grid is a regular, axis-aligned sampling of the image plane, stored as a
// flat list of pixel centers.
//
// The spacing is taken from the first two columns of the x grid and assumed
// to be the same in both directions. It is not validated: a grid with a
// single column, or with repeated coordinates, has a pixel scale of zero and
// triangulates into degenerate triangles.
type Grid struct {
	xs, ys     []float64
	rows, cols int
	pixScale   float64
}

// NewGrid returns the grid of pixel centers described by the coordinate
// matrices x and y. Both matrices are read in row-major order.
func NewGrid(x, y mat.Matrix) (*Grid, error) {
	r, c := x.Dims()
	ry, cy := y.Dims()
	if r != ry || c != cy {
		return nil, fmt.Errorf("%w: x is %d×%d, y is %d×%d", ErrGridShape, r, c, ry, cy)
	}
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrGridShape)
	}
	g := &Grid{
		xs:   make([]float64, 0, r*c),
		ys:   make([]float64, 0, r*c),
		rows: r,
		cols: c,
	}
	for i := range r {
		for j := range c {
			g.xs = append(g.xs, x.At(i, j))
			g.ys = append(g.ys, y.At(i, j))
		}
	}
	if c > 1 {
		g.pixScale = math.Abs(x.At(0, 0) - x.At(0, 1))
	}
	return g, nil
}

// PixelScale returns the pixel spacing of the grid.
func (g *Grid) PixelScale() float64 { return g.pixScale }

// NumPix returns the number of pixels in the grid.
func (g *Grid) NumPix() int { return len(g.xs) }

// Dims returns the number of rows and columns of the grid.
func (g *Grid) Dims() (rows, cols int) { return g.rows, g.cols }

// Bounds returns the region covered by the grid's pixels, that is the extent
// of the pixel centers inflated by half a pixel.
func (g *Grid) Bounds() Rect {
	r := Rect{
		X0: floats.Min(g.xs),
		Y0: floats.Min(g.ys),
		X1: floats.Max(g.xs),
		Y1: floats.Max(g.ys),
	}
	d := 0.5 * g.pixScale
	return r.Inflate(d, d)
}

// Triangulate splits every pixel in half along a diagonal, returning
// 2·NumPix right triangles of area PixelScale²/2. For a pixel with corners LL,
// LR, UL and UR, the triangles are (LL, LR, UL) and (LR, UR, UL), sharing the
// edge from LR to UL. The two triangles of a pixel are adjacent in the output.
func (g *Grid) Triangulate() Batch {
	d := 0.5 * g.pixScale
	out := make(Batch, 0, 2*len(g.xs))
	for i := range g.xs {
		x, y := g.xs[i], g.ys[i]
		ll := Pt(x-d, y-d)
		lr := Pt(x+d, y-d)
		ul := Pt(x-d, y+d)
		ur := Pt(x+d, y+d)
		out = append(out,
			Triangle{ll, lr, ul},
			Triangle{lr, ur, ul},
		)
	}
	return out
}

// PixelCenters returns the centers of n equally sized pixels spanning
// [lo, hi]. It panics if n < 1.
func PixelCenters(lo, hi float64, n int) []float64 {
	if n < 1 {
		panic(fmt.Sprintf("invalid number of pixels %d", n))
	}
	d := 0.5 * (hi - lo) / float64(n)
	if n == 1 {
		return []float64{lo + d}
	}
	return floats.Span(make([]float64, n), lo+d, hi-d)
}

// Meshgrid returns coordinate matrices with len(ys) rows and len(xs) columns,
// such that x.At(i, j) == xs[j] and y.At(i, j) == ys[i]. Like [mat.NewDense],
// it panics if either slice is empty.
func Meshgrid(xs, ys []float64) (x, y *mat.Dense) {
	x = mat.NewDense(len(ys), len(xs), nil)
	y = mat.NewDense(len(ys), len(xs), nil)
	for i := range ys {
		x.SetRow(i, xs)
		for j := range xs {
			y.Set(i, j, ys[i])
		}
	}
	return x, y
}
