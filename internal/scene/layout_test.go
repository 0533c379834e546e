package scene

import (
	"math"
	"testing"
)

func TestPlaceYieldsDistinctPositions(t *testing.T) {
	layout := DefaultLayout()
	for total := 0; total <= 200; total++ {
		transforms := layout.PlaceAll(total)
		if len(transforms) != total {
			t.Fatalf("total %d: expected %d transforms, got %d", total, total, len(transforms))
		}
		seen := make(map[[3]float64]int, total)
		for i, tr := range transforms {
			key := [3]float64{tr.Position.X, tr.Position.Y, tr.Position.Z}
			if prev, ok := seen[key]; ok {
				t.Fatalf("total %d: indices %d and %d share position %+v", total, prev, i, tr.Position)
			}
			seen[key] = i
		}
	}
}

func TestDefaultLayoutRing(t *testing.T) {
	layout := DefaultLayout()
	if layout.Radius != 3 || layout.Step != 2 {
		t.Fatalf("unexpected default layout %+v", layout)
	}
	tr, err := layout.Place(1, 2)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if math.Abs(tr.Position.X-3*math.Sin(2)) > 1e-12 || math.Abs(tr.Position.Z-3*math.Cos(2)) > 1e-12 {
		t.Fatalf("unexpected position for index 1: %+v", tr.Position)
	}
}

func TestDefaultLayoutKeepsSlotsApart(t *testing.T) {
	const total = 50
	transforms := DefaultLayout().PlaceAll(total)
	// Offsets of 22 steps come closest (44 rad is about 0.018 rad past 7 turns).
	minGap := math.Inf(1)
	for i := 0; i < total; i++ {
		for j := i + 1; j < total; j++ {
			a, b := transforms[i].Position, transforms[j].Position
			if d := math.Hypot(a.X-b.X, a.Z-b.Z); d < minGap {
				minGap = d
			}
		}
	}
	if minGap < 0.04 {
		t.Fatalf("expected slots at least 0.04 apart for %d plants, closest pair is %f", total, minGap)
	}
}

func TestPlaceDependsOnlyOnIndex(t *testing.T) {
	layout := DefaultLayout()
	a, err := layout.Place(3, 5)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	b, err := layout.Place(3, 50)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if a != b {
		t.Fatalf("expected same transform regardless of total, got %+v vs %+v", a, b)
	}
}

func TestPlaceOnCircle(t *testing.T) {
	layout := Layout{Radius: 4, Step: 0.5}
	tr, err := layout.Place(2, 3)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if math.Abs(tr.Position.X-4*math.Sin(1)) > 1e-12 || math.Abs(tr.Position.Z-4*math.Cos(1)) > 1e-12 || tr.Position.Y != 0 {
		t.Fatalf("unexpected position %+v", tr.Position)
	}
	if tr.Rotation.Y != 1 || tr.Rotation.X != 0 || tr.Rotation.Z != 0 {
		t.Fatalf("unexpected rotation %+v", tr.Rotation)
	}
	if r := math.Hypot(tr.Position.X, tr.Position.Z); math.Abs(r-4) > 1e-12 {
		t.Fatalf("expected radius 4, got %f", r)
	}
}

func TestPlaceRejectsOutOfRange(t *testing.T) {
	layout := DefaultLayout()
	if _, err := layout.Place(0, 0); err == nil {
		t.Fatalf("expected error when total is zero")
	}
	if _, err := layout.Place(-1, 3); err == nil {
		t.Fatalf("expected error for negative index")
	}
	if _, err := layout.Place(3, 3); err == nil {
		t.Fatalf("expected error for index == total")
	}
	if got := layout.PlaceAll(0); got != nil {
		t.Fatalf("expected no placements, got %v", got)
	}
}
