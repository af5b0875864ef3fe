// Package lenseq finds the multiple images of a point source produced by a
// gravitational lens. It solves the lens equation
//
//	β = θ − α(θ)
//
// for all image-plane positions θ, given a fixed source-plane position β and
// a forward mapping ("ray shooting") from the image plane to the source plane.
// The mapping is cheap to evaluate but has no closed-form inverse, and the
// number of images is not known in advance.
//
// # Triangulation search
//
// [Solver] covers a regular grid of the image plane with two triangles per
// pixel (see [Grid.Triangulate]), maps every vertex to the source plane and
// keeps the image-plane triangles whose source-plane images contain β. It then
// refines the survivors for a fixed number of rounds: each triangle is
// inflated about its centroid ([Triangle.Scale]) to tolerate the distortion of
// the mapping, split into four ([Triangle.Subdivide]), mapped and selected
// again. The centroids of the final triangles are the image positions. Their
// size, and thus the accuracy of the result, is given by
// [Solver.EstimateAccuracy].
//
// The mapping is supplied as a [RayShootingFunc]. It is called once per round
// with the coordinates of all vertices of all candidates, so that expensive
// lens models can be evaluated in a vectorized fashion. Lens parameters are
// passed through as an opaque value of the solver's type parameter.
//
// # Fixed-size results
//
// A solve always returns exactly [SolveOptions.NSolutions] positions. When
// fewer triangles contain β, the selection is filled with the first triangle
// of the batch ([SelectFirstN]), and these duplicates are refined like genuine
// candidates. Callers must choose NSolutions to match the lens configuration,
// and should treat repeated or non-converging positions as padding.
//
// Nothing proves that every image has been found. A grid that is too coarse
// can miss images that are closer together than a pixel.
//
// # Geometry
//
// The package uses small value types for 2D geometry: [Point], [Vec2],
// [Affine], [Rect] and [Triangle]. [Batch] holds a working set of triangles
// and converts between triangles and the flat coordinate slices that
// ray-shooting functions operate on.
//
// Concrete lens models for use with the solver live in package
// honnef.co/go/lenseq/lensmodel.
package lenseq
