package lenseq

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func testGrid(t *testing.T, x0, x1, y0, y1 float64, nx, ny int) *Grid {
	t.Helper()
	gx, gy := Meshgrid(PixelCenters(x0, x1, nx), PixelCenters(y0, y1, ny))
	g, err := NewGrid(gx, gy)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestPixelCenters(t *testing.T) {
	diff(t, []float64{0.125, 0.375, 0.625, 0.875}, PixelCenters(0, 1, 4), approx)
	diff(t, []float64{-0.5}, PixelCenters(-1, 0, 1))
}

func TestMeshgrid(t *testing.T) {
	x, y := Meshgrid([]float64{1, 2, 3}, []float64{10, 20})
	if r, c := x.Dims(); r != 2 || c != 3 {
		t.Fatalf("got %d×%d, want 2×3", r, c)
	}
	diff(t, []float64{1, 2, 3, 1, 2, 3}, x.RawMatrix().Data)
	diff(t, []float64{10, 10, 10, 20, 20, 20}, y.RawMatrix().Data)
}

func TestNewGrid(t *testing.T) {
	g := testGrid(t, 0, 2, -1, 0.5, 4, 3)
	diff(t, 0.5, g.PixelScale(), approx)
	diff(t, 12, g.NumPix())
	rows, cols := g.Dims()
	diff(t, [2]int{3, 4}, [2]int{rows, cols})
	diff(t, Rect{X0: 0, Y0: -1, X1: 2, Y1: 0.5}, g.Bounds(), approx)
}

func TestNewGridShape(t *testing.T) {
	x := mat.NewDense(2, 3, nil)
	y := mat.NewDense(3, 2, nil)
	if _, err := NewGrid(x, y); !errors.Is(err, ErrGridShape) {
		t.Errorf("got error %v, want %v", err, ErrGridShape)
	}
}

func TestNewGridSingleColumn(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{0, 0})
	y := mat.NewDense(2, 1, []float64{0, 1})
	g, err := NewGrid(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if g.PixelScale() != 0 {
		t.Errorf("got pixel scale %g, want 0", g.PixelScale())
	}
	for _, tri := range g.Triangulate() {
		if tri.Area() != 0 {
			t.Errorf("got area %g for triangle of a degenerate grid", tri.Area())
		}
	}
}

func TestTriangulate(t *testing.T) {
	g := testGrid(t, -1, 1, -0.5, 1, 4, 3)
	tris := g.Triangulate()
	if len(tris) != 2*g.NumPix() {
		t.Fatalf("got %d triangles, want %d", len(tris), 2*g.NumPix())
	}

	h := g.PixelScale()
	for i, tri := range tris {
		diff(t, h*h/2, tri.Area(), approx)
		if i%2 == 0 {
			// The two triangles of a pixel share their LR–UL edge.
			next := tris[i+1]
			diff(t, tri.P1, next.P0)
			diff(t, tri.P2, next.P2)
		}
	}
	diff(t, g.Bounds().Width()*g.Bounds().Height(), tris.Area(), approx)

	// The first pixel is centered on (-0.75, -0.25).
	d := h / 2
	ll := Pt(-0.75-d, -0.25-d)
	lr := Pt(-0.75+d, -0.25-d)
	ul := Pt(-0.75-d, -0.25+d)
	ur := Pt(-0.75+d, -0.25+d)
	diff(t, Tri(ll, lr, ul), tris[0], approx)
	diff(t, Tri(lr, ur, ul), tris[1], approx)
}

func TestTriangulateCoverage(t *testing.T) {
	// Every point that is not on an edge lies in exactly one triangle.
	g := testGrid(t, -1, 1, -1, 1, 5, 5)
	tris := g.Triangulate()
	for _, pt := range []Point{Pt(0.013, 0.021), Pt(-0.93, 0.71), Pt(0.55, -0.33), Pt(0.97, 0.98)} {
		n := CountTrue(tris.Contains(pt))
		if n != 1 {
			t.Errorf("%s is contained in %d triangles, want 1", pt, n)
		}
	}
	if n := CountTrue(tris.Contains(Pt(1.5, 0))); n != 0 {
		t.Errorf("point outside the grid is contained in %d triangles", n)
	}
	if !scalar.EqualWithinAbs(tris.Area(), 4, 1e-12) {
		t.Errorf("got total area %g, want 4", tris.Area())
	}
}
