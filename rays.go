package lenseq

import (
	"errors"
	"fmt"
)

// ErrMappingShape is returned when a ray-shooting function returns a different
// number of coordinates than it was given.
var ErrMappingShape = errors.New("ray-shooting function returned mismatched coordinates")

// RayShootingFunc is the forward lens mapping β = θ − α(θ). It maps the
// image-plane coordinates (x[i], y[i]) to source-plane coordinates and must
// return two slices of the same length as its inputs, index for index.
//
// params is passed through unexamined. The function must not retain or modify
// x and y, and must be safe for concurrent use if the [Solver] using it is.
type RayShootingFunc[P any] func(x, y []float64, params P) ([]float64, []float64, error)

// mapBatch maps every vertex of b to the source plane with a single call to
// shoot. Triangle and vertex order are preserved. Errors returned by shoot are
// passed through as is.
func mapBatch[P any](shoot RayShootingFunc[P], b Batch, params P) (Batch, error) {
	xs, ys := b.Vertices()
	bx, by, err := shoot(xs, ys, params)
	if err != nil {
		return nil, err
	}
	if len(bx) != len(xs) || len(by) != len(ys) {
		return nil, fmt.Errorf("%w: sent %d coordinates, got %d and %d", ErrMappingShape, len(xs), len(bx), len(by))
	}
	return BatchFromVertices(bx, by), nil
}
