package hullruntime

import (
	stderrors "errors"
	"testing"

	"github.com/hullkit/hull-runtime/errors"
)

func TestCollectCoords(t *testing.T) {
	cc, err := CollectCoords([][]float64{
		{0, 0},
		{1, 0},
		{0, 1},
	})
	if err != nil {
		t.Fatalf("CollectCoords failed: %v", err)
	}
	if cc.Dim != 2 || cc.Count != 3 {
		t.Errorf("Dim = %d, Count = %d, want 2 and 3", cc.Dim, cc.Count)
	}
	want := []float64{0, 0, 1, 0, 0, 1}
	if len(cc.Coords) != len(want) {
		t.Fatalf("Coords has %d values, want %d", len(cc.Coords), len(want))
	}
	for i, w := range want {
		if cc.Coords[i] != w {
			t.Errorf("Coords[%d] = %g, want %g", i, cc.Coords[i], w)
		}
	}
}

func TestCollectCoords_Empty(t *testing.T) {
	cc, err := CollectCoords(nil)
	if err != nil {
		t.Fatalf("CollectCoords(nil) failed: %v", err)
	}
	if cc.Coords != nil || cc.Count != 0 || cc.Dim != 0 {
		t.Errorf("empty input produced %+v", cc)
	}
}

func TestCollectCoords_Mismatch(t *testing.T) {
	_, err := CollectCoords([][]float64{
		{0, 0, 0},
		{1, 1, 1},
		{2, 2},
	})
	if err == nil {
		t.Fatal("mismatched arity was accepted")
	}
	var dm *errors.DimensionMismatchError
	if !stderrors.As(err, &dm) {
		t.Fatalf("error type %T, want *DimensionMismatchError", err)
	}
	if dm.Expected != 3 || dm.Got != 2 || dm.Index != 2 {
		t.Errorf("mismatch detail = %+v", dm)
	}
}

func TestPrepareDelaunayCoords(t *testing.T) {
	cc, err := PrepareDelaunayCoords([][]float64{
		{1, 2},
		{-3, 0},
	})
	if err != nil {
		t.Fatalf("PrepareDelaunayCoords failed: %v", err)
	}
	if cc.Dim != 3 || cc.Count != 2 {
		t.Errorf("Dim = %d, Count = %d, want 3 and 2", cc.Dim, cc.Count)
	}
	want := []float64{1, 2, 5, -3, 0, 9}
	for i, w := range want {
		if cc.Coords[i] != w {
			t.Errorf("Coords[%d] = %g, want %g", i, cc.Coords[i], w)
		}
	}
}

func TestPrepareDelaunayCoords_Mismatch(t *testing.T) {
	_, err := PrepareDelaunayCoords([][]float64{
		{1, 2},
		{1},
	})
	if err == nil {
		t.Fatal("mismatched arity was accepted")
	}
}
