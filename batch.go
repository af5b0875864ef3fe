package lenseq

import (
	"fmt"
)

// Batch is a working set of triangles, processed together so that the
// forward mapping can be evaluated for all of their vertices at once.
type Batch []Triangle

// Centroids returns the centroid of every triangle, in batch order.
func (b Batch) Centroids() []Point {
	out := make([]Point, len(b))
	for i, t := range b {
		out[i] = t.Centroid()
	}
	return out
}

// Contains reports, for every triangle in the batch, whether pt lies strictly
// inside of it. See [Triangle.Contains].
func (b Batch) Contains(pt Point) []bool {
	out := make([]bool, len(b))
	for i, t := range b {
		out[i] = t.Contains(pt)
	}
	return out
}

// Scale returns a new batch with every triangle scaled about its centroid by
// the area factor f.
func (b Batch) Scale(f float64) Batch {
	out := make(Batch, len(b))
	for i, t := range b {
		out[i] = t.Scale(f)
	}
	return out
}

// Subdivide splits every triangle into four, n times over, returning 4ⁿ·len(b)
// triangles.
//
// Children are grouped by their position in [Triangle.Subdivide], not by
// parent: for a batch of length m, the k-th child of triangle i is stored at
// index k·m + i. Repeated levels apply the same layout to the previous level's
// output. Selection picks triangles in index order, so this layout decides
// which of several containing triangles survive.
//
// Subdivide panics if n < 1.
func (b Batch) Subdivide(n int) Batch {
	if n < 1 {
		panic(fmt.Sprintf("invalid number of subdivisions %d", n))
	}
	cur := b
	for range n {
		m := len(cur)
		next := make(Batch, 4*m)
		for i, t := range cur {
			for k, child := range t.Subdivide() {
				next[k*m+i] = child
			}
		}
		cur = next
	}
	return cur
}

// SignedAreas returns the signed area of every triangle, in batch order.
func (b Batch) SignedAreas() []float64 {
	out := make([]float64, len(b))
	for i, t := range b {
		out[i] = t.SignedArea()
	}
	return out
}

// Area returns the sum of the unsigned areas of all triangles.
func (b Batch) Area() float64 {
	var sum float64
	for _, t := range b {
		sum += t.Area()
	}
	return sum
}

// Pick returns a new batch consisting of the triangles at the given indices.
// Indices may repeat.
func (b Batch) Pick(indices []int) Batch {
	out := make(Batch, len(indices))
	for i, idx := range indices {
		out[i] = b[idx]
	}
	return out
}

// BoundingBox returns the smallest rectangle enclosing all triangles. It
// returns the zero Rect for an empty batch.
func (b Batch) BoundingBox() Rect {
	if len(b) == 0 {
		return Rect{}
	}
	r := b[0].BoundingBox()
	for _, t := range b[1:] {
		r = r.UnionPoint(t.P0).UnionPoint(t.P1).UnionPoint(t.P2)
	}
	return r
}

// Vertices flattens the batch into two parallel coordinate slices of length
// 3·len(b). Vertex j of triangle i is stored at index 3·i + j.
func (b Batch) Vertices() (xs, ys []float64) {
	xs = make([]float64, 3*len(b))
	ys = make([]float64, 3*len(b))
	for i, t := range b {
		xs[3*i], ys[3*i] = t.P0.Splat()
		xs[3*i+1], ys[3*i+1] = t.P1.Splat()
		xs[3*i+2], ys[3*i+2] = t.P2.Splat()
	}
	return xs, ys
}

// BatchFromVertices is the inverse of [Batch.Vertices]. It panics if the
// slices differ in length or their length isn't a multiple of three.
func BatchFromVertices(xs, ys []float64) Batch {
	if len(xs) != len(ys) || len(xs)%3 != 0 {
		panic(fmt.Sprintf("invalid vertex slices of lengths %d and %d", len(xs), len(ys)))
	}
	out := make(Batch, len(xs)/3)
	for i := range out {
		out[i] = Triangle{
			P0: Pt(xs[3*i], ys[3*i]),
			P1: Pt(xs[3*i+1], ys[3*i+1]),
			P2: Pt(xs[3*i+2], ys[3*i+2]),
		}
	}
	return out
}

// SelectFirstN returns the indices of the first n true entries of mask, in
// index order. If fewer than n entries are true, the remaining slots are
// filled with index 0, so the result always has length n.
//
// The padding refers to the first element of the batch whether or not it
// satisfies the mask. Callers that need to know how many entries were genuine
// can count them with [CountTrue].
func SelectFirstN(mask []bool, n int) []int {
	out := make([]int, n)
	j := 0
	for i, ok := range mask {
		if j == n {
			break
		}
		if ok {
			out[j] = i
			j++
		}
	}
	return out
}

// CountTrue returns the number of true entries in mask.
func CountTrue(mask []bool) int {
	n := 0
	for _, ok := range mask {
		if ok {
			n++
		}
	}
	return n
}
