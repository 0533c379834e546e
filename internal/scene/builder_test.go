package scene

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

func TestBuildIsDeterministic(t *testing.T) {
	table := variant.DefaultTable()
	for _, key := range table.Keys() {
		p := table.Resolve(key)
		a, err := ProceduralBuilder{}.Build(p)
		if err != nil {
			t.Fatalf("%s: build: %v", key, err)
		}
		b, err := ProceduralBuilder{}.Build(p)
		if err != nil {
			t.Fatalf("%s: build: %v", key, err)
		}
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("%s: structures differ (-first +second):\n%s", key, diff)
		}
	}
}

func TestBuildGeometry(t *testing.T) {
	p := variant.DefaultTable().Resolve(variant.KeyMonstera)
	s, err := ProceduralBuilder{}.Build(p)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := Cylinder{RadiusTop: 0.05, RadiusBottom: 0.05, Height: 1.2, RadialSegments: 6}
	if s.Stem != want {
		t.Fatalf("unexpected stem %+v", s.Stem)
	}
	if len(s.Leaves) != 6 {
		t.Fatalf("expected 6 leaves, got %d", len(s.Leaves))
	}
	for i, leaf := range s.Leaves {
		angle := float64(i) / 6 * 2 * math.Pi
		if math.Abs(leaf.Yaw-angle) > 1e-12 {
			t.Fatalf("leaf %d: yaw %f want %f", i, leaf.Yaw, angle)
		}
		if math.Abs(leaf.Position.X-math.Sin(angle)*0.5) > 1e-12 ||
			math.Abs(leaf.Position.Z-math.Cos(angle)*0.5) > 1e-12 ||
			math.Abs(leaf.Position.Y-0.6) > 1e-12 {
			t.Fatalf("leaf %d: unexpected position %+v", i, leaf.Position)
		}
		if leaf.Size != 0.4 || !leaf.DoubleSided {
			t.Fatalf("leaf %d: expected double-sided 0.4 square, got %+v", i, leaf)
		}
	}
	if s.StemColor != p.StemColor || s.LeafColor != p.LeafColor {
		t.Fatalf("expected colours to carry through")
	}
}

func TestBuildRejectsInvalidParams(t *testing.T) {
	p := variant.DefaultTable().Resolve(variant.DefaultKey)
	p.LeafCount = 0
	if _, err := (ProceduralBuilder{}).Build(p); err == nil {
		t.Fatalf("expected zero leaf count to fail")
	}
}

func TestLeafCornersFormSquare(t *testing.T) {
	leaf := Leaf{Position: V3(0, 1, 0), Yaw: math.Pi / 2, Size: 0.4}
	c := leaf.corners()
	for i := 0; i < 4; i++ {
		side := c[(i+1)%4].Sub(c[i]).Len()
		if math.Abs(side-0.4) > 1e-12 {
			t.Fatalf("side %d: length %f", i, side)
		}
	}
	// A quarter turn puts the square in the YZ plane.
	for i, p := range c {
		if math.Abs(p.X) > 1e-12 {
			t.Fatalf("corner %d: expected x=0, got %+v", i, p)
		}
	}
}
