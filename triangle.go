package lenseq

import (
	"fmt"
	"math"
)

// Triangle is an ordered triple of vertices. The order matters to [Triangle.Scale]
// and [Triangle.Subdivide], which must treat all triangles of a batch the same
// way, but not to [Triangle.Contains], which accepts either orientation.
type Triangle struct {
	P0 Point
	P1 Point
	P2 Point
}

// Tri returns the triangle with vertices p0, p1 and p2.
func Tri(p0, p1, p2 Point) Triangle {
	return Triangle{p0, p1, p2}
}

func (t Triangle) String() string {
	return fmt.Sprintf("△(%s, %s, %s)", t.P0, t.P1, t.P2)
}

// Centroid returns the arithmetic mean of the triangle's vertices.
func (t Triangle) Centroid() Point {
	return Point{
		X: (t.P0.X + t.P1.X + t.P2.X) / 3,
		Y: (t.P0.Y + t.P1.Y + t.P2.Y) / 3,
	}
}

// SignedArea returns the area of the triangle, positive if its vertices wind
// counter-clockwise in a y-up coordinate system.
func (t Triangle) SignedArea() float64 {
	return 0.5 * t.P1.Sub(t.P0).Cross(t.P2.Sub(t.P1))
}

// Area returns the unsigned area of the triangle.
func (t Triangle) Area() float64 {
	return math.Abs(t.SignedArea())
}

// Contains reports whether pt lies strictly inside the triangle.
//
// The point is inside if the cross products of consecutive vertex
// displacements d_i = P_i − pt all have the same, nonzero sign. Points on an
// edge or vertex produce a zero cross product and are reported as outside, as
// is every point for a degenerate (zero-area) triangle or a triangle with NaN
// vertices.
func (t Triangle) Contains(pt Point) bool {
	d0 := t.P0.Sub(pt)
	d1 := t.P1.Sub(pt)
	d2 := t.P2.Sub(pt)
	s := sign(d0.Cross(d1)) + sign(d1.Cross(d2)) + sign(d2.Cross(d0))
	return s == 3 || s == -3
}

// sign returns -1, 0 or 1. NaN maps to 0.
func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Scale inflates the triangle about its centroid so that its area is
// multiplied by f. Every vertex moves to c + √f·(v − c); the centroid c is
// unchanged.
func (t Triangle) Scale(f float64) Triangle {
	c := t.Centroid()
	s := math.Sqrt(f)
	return Triangle{
		P0: c.Translate(t.P0.Sub(c).Mul(s)),
		P1: c.Translate(t.P1.Sub(c).Mul(s)),
		P2: c.Translate(t.P2.Sub(c).Mul(s)),
	}
}

// Subdivide splits the triangle into four congruent triangles using the
// midpoints of its edges. With v1..v3 the vertices and v4 = mid(v1, v2),
// v5 = mid(v2, v3), v6 = mid(v3, v1), the children are (v1, v4, v6),
// (v4, v2, v5), (v6, v4, v5) and (v6, v5, v3), in that order.
func (t Triangle) Subdivide() [4]Triangle {
	v1, v2, v3 := t.P0, t.P1, t.P2
	v4 := v1.Midpoint(v2)
	v5 := v2.Midpoint(v3)
	v6 := v3.Midpoint(v1)
	return [4]Triangle{
		{v1, v4, v6},
		{v4, v2, v5},
		{v6, v4, v5},
		{v6, v5, v3},
	}
}

func (t Triangle) Transform(aff Affine) Triangle {
	return Triangle{
		P0: t.P0.Transform(aff),
		P1: t.P1.Transform(aff),
		P2: t.P2.Transform(aff),
	}
}

func (t Triangle) BoundingBox() Rect {
	return NewRectFromPoints(t.P0, t.P1).UnionPoint(t.P2)
}

// IsNaN reports whether any vertex has a NaN coordinate.
func (t Triangle) IsNaN() bool {
	return t.P0.IsNaN() || t.P1.IsNaN() || t.P2.IsNaN()
}
