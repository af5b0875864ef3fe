package lenseq

import (
	"errors"
	"testing"
)

func TestMapBatchSingleCall(t *testing.T) {
	b := Batch{
		Tri(Pt(0, 0), Pt(1, 0), Pt(0, 1)),
		Tri(Pt(1, 0), Pt(1, 1), Pt(0, 1)),
		Tri(Pt(5, 5), Pt(6, 5), Pt(5, 6)),
	}
	var calls, sent int
	shift := func(x, y []float64, d Vec2) ([]float64, []float64, error) {
		calls++
		sent = len(x)
		bx := make([]float64, len(x))
		by := make([]float64, len(y))
		for i := range x {
			bx[i] = x[i] + d.X
			by[i] = y[i] + d.Y
		}
		return bx, by, nil
	}

	got, err := mapBatch[Vec2](shift, b, Vec2{10, -1})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("mapping called %d times, want 1", calls)
	}
	if sent != 3*len(b) {
		t.Errorf("mapping received %d vertices, want %d", sent, 3*len(b))
	}
	want := make(Batch, len(b))
	for i, tri := range b {
		want[i] = tri.Transform(Affine{1, 0, 0, 1, 10, -1})
	}
	diff(t, want, got)
}

func TestMapBatchErrors(t *testing.T) {
	b := Batch{Tri(Pt(0, 0), Pt(1, 0), Pt(0, 1))}

	errBoom := errors.New("boom")
	failing := func(x, y []float64, _ struct{}) ([]float64, []float64, error) {
		return nil, nil, errBoom
	}
	if _, err := mapBatch[struct{}](failing, b, struct{}{}); err != errBoom {
		t.Errorf("got error %v, want %v unchanged", err, errBoom)
	}

	short := func(x, y []float64, _ struct{}) ([]float64, []float64, error) {
		return x[:1], y, nil
	}
	if _, err := mapBatch[struct{}](short, b, struct{}{}); !errors.Is(err, ErrMappingShape) {
		t.Errorf("got error %v, want %v", err, ErrMappingShape)
	}
}
