package lenseq

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-12)

func assertNear(t *testing.T, got Point, want Point, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); d > epsilon {
		t.Fatalf("got %s, expected %s (distance %g > %g)", got, want, d, epsilon)
	}
}
