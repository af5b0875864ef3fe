package lenseq

import (
	"math"
	"testing"
)

func TestAffineTransform(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Scale(1, -1)), Pt(3, -4), epsilon)
	assertNear(t, p.Transform(Affine{1, 0, 0, 1, 5, 6}), Pt(8, 10), epsilon)
	// A symmetric shear matrix, [[g1 g2] [g2 -g1]].
	assertNear(t, p.Transform(Affine{0.5, 0.25, 0.25, -0.5, 0, 0}), Pt(2.5, -1.25), epsilon)
}

func TestAffineIsNaN(t *testing.T) {
	if Scale(1, 2).IsNaN() {
		t.Error("Scale(1, 2) shouldn't be NaN")
	}
	if !(Affine{N5: math.NaN()}).IsNaN() {
		t.Error("expected NaN transform")
	}
}
