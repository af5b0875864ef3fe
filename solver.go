package lenseq

import (
	"errors"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidOptions is returned by [Solver.SolveOpt] for options that cannot
// describe a refinement schedule.
var ErrInvalidOptions = errors.New("invalid solve options")

// SolveOptions controls the refinement schedule of [Solver.SolveOpt].
type SolveOptions struct {
	// NSolutions is the number of images to return. It should match the
	// number of images the lens configuration produces, such as 5 for a quad
	// with its central image. If fewer images are found, the remaining slots
	// are filled with duplicates (see [SelectFirstN]); if more exist, the
	// excess is dropped.
	NSolutions int
	// NIter is the number of scale and subdivide rounds.
	NIter int
	// ScaleFactor is the factor by which each candidate triangle's area is
	// inflated at the start of a round.
	ScaleFactor float64
	// NSubdivisions is the number of times each candidate is split into four
	// per round.
	NSubdivisions int

	// Logger, if not nil, receives a line per round with the number of
	// candidates and how many of them genuinely contain the source.
	Logger *log.Logger
}

// DefaultSolveOptions returns the options used by [Solver.Solve].
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{
		NSolutions:    5,
		NIter:         5,
		ScaleFactor:   2,
		NSubdivisions: 1,
	}
}

// Validate reports whether the options describe a usable schedule.
func (opts SolveOptions) Validate() error {
	switch {
	case opts.NSolutions < 1:
		return fmt.Errorf("%w: NSolutions must be at least 1, got %d", ErrInvalidOptions, opts.NSolutions)
	case opts.NIter < 0:
		return fmt.Errorf("%w: NIter must not be negative, got %d", ErrInvalidOptions, opts.NIter)
	case opts.NSubdivisions < 1:
		return fmt.Errorf("%w: NSubdivisions must be at least 1, got %d", ErrInvalidOptions, opts.NSubdivisions)
	case !(opts.ScaleFactor > 0) || math.IsInf(opts.ScaleFactor, 0):
		return fmt.Errorf("%w: ScaleFactor must be positive and finite, got %g", ErrInvalidOptions, opts.ScaleFactor)
	}
	return nil
}

// Solver finds the multiple images of a point source by refining a
// triangulation of the image plane.
//
// A Solver is immutable after construction. It is safe to call its methods
// concurrently as long as the ray-shooting function is.
type Solver[P any] struct {
	grid  *Grid
	shoot RayShootingFunc[P]
}

// NewSolver returns a solver that searches the grid of pixel centers given by
// gridX and gridY, using shoot to map image-plane positions to the source
// plane. The grid must be regular and axis-aligned, with equal spacing in both
// directions.
func NewSolver[P any](gridX, gridY mat.Matrix, shoot RayShootingFunc[P]) (*Solver[P], error) {
	g, err := NewGrid(gridX, gridY)
	if err != nil {
		return nil, err
	}
	return &Solver[P]{grid: g, shoot: shoot}, nil
}

// Grid returns the grid the solver searches.
func (s *Solver[P]) Grid() *Grid { return s.grid }

// ShootRays maps image-plane positions to the source plane using the
// solver's ray-shooting function.
func (s *Solver[P]) ShootRays(x, y []float64, params P) ([]float64, []float64, error) {
	return s.shoot(x, y, params)
}

// EstimateAccuracy returns the expected size of the final triangles, and thus
// the accuracy of the image positions, for the given schedule.
//
// Every round scales the linear size of a triangle by √scaleFactor and
// subdivision shrinks it by 2^nsubdivisions, giving
// pixelScale·(scaleFactor/4^nsubdivisions)^(niter/2).
func (s *Solver[P]) EstimateAccuracy(niter int, scaleFactor float64, nsubdivisions int) float64 {
	return s.grid.pixScale * math.Pow(scaleFactor/math.Pow(4, float64(nsubdivisions)), float64(niter)/2)
}

// Solve is like [Solver.SolveOpt] with [DefaultSolveOptions].
func (s *Solver[P]) Solve(beta Point, params P) (images, sources []Point, err error) {
	return s.SolveOpt(beta, params, DefaultSolveOptions())
}

// SolveOpt solves the lens equation β = θ − α(θ) for the source position beta.
//
// It returns opts.NSolutions image-plane positions and the source-plane
// positions they map to. The order of the solutions has no geometric meaning.
//
// The search triangulates the grid, keeps the first opts.NSolutions triangles
// whose source-plane image contains beta, and then, opts.NIter times, inflates
// the survivors by opts.ScaleFactor, subdivides them and selects again. When
// fewer triangles than requested contain beta, the selection is padded with
// the first triangle of the batch, at every round. Padding is not an error:
// the returned slices may contain duplicates or positions that aren't
// solutions. Set opts.Logger to see when padding happens, and compare
// source positions against beta to weed out spurious results.
//
// Errors from the ray-shooting function are returned unchanged.
func (s *Solver[P]) SolveOpt(beta Point, params P, opts SolveOptions) (images, sources []Point, err error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	img := s.grid.Triangulate()
	src, err := mapBatch(s.shoot, img, params)
	if err != nil {
		return nil, nil, err
	}
	img = selectContaining(img, src, beta, opts, 0)

	for round := 1; round <= opts.NIter; round++ {
		img = img.Scale(opts.ScaleFactor).Subdivide(opts.NSubdivisions)
		src, err = mapBatch(s.shoot, img, params)
		if err != nil {
			return nil, nil, err
		}
		img = selectContaining(img, src, beta, opts, round)
	}

	src, err = mapBatch(s.shoot, img, params)
	if err != nil {
		return nil, nil, err
	}
	return img.Centroids(), src.Centroids(), nil
}

// selectContaining returns the image-plane triangles whose source-plane
// counterparts contain beta, per [SelectFirstN].
func selectContaining(img, src Batch, beta Point, opts SolveOptions, round int) Batch {
	mask := src.Contains(beta)
	if opts.Logger != nil {
		found := CountTrue(mask)
		opts.Logger.Printf("round %d: %d of %d triangles contain %s", round, found, len(src), beta)
		if found < opts.NSolutions {
			opts.Logger.Printf("round %d: padding %d of %d solutions with triangle 0", round, opts.NSolutions-found, opts.NSolutions)
		}
	}
	return img.Pick(SelectFirstN(mask, opts.NSolutions))
}
