package gui

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/scene"
)

func TestSelectView(t *testing.T) {
	tests := []struct {
		name     string
		state    catalog.State
		faulted  bool
		records  int
		filtered int
		want     view
	}{
		{name: "first load", state: catalog.StateLoading, want: viewLoading},
		{name: "reload keeps scene", state: catalog.StateLoading, records: 3, filtered: 3, want: viewScene},
		{name: "failed", state: catalog.StateFailed, want: viewFailed},
		{name: "empty dataset", state: catalog.StateEmpty, want: viewEmpty},
		{name: "no matches", state: catalog.StateReady, records: 3, filtered: 0, want: viewNoMatches},
		{name: "ready", state: catalog.StateReady, records: 3, filtered: 2, want: viewScene},
		{name: "fault wins", state: catalog.StateReady, faulted: true, records: 3, filtered: 3, want: viewFault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectView(tt.state, tt.faulted, tt.records, tt.filtered); got != tt.want {
				t.Fatalf("expected view %d, got %d", tt.want, got)
			}
		})
	}
}

func TestEditQuery(t *testing.T) {
	if got := editQuery("fi", []rune("g"), false, maxQueryLen); got != "fig" {
		t.Fatalf("expected fig, got %q", got)
	}
	if got := editQuery("fig", nil, true, maxQueryLen); got != "fi" {
		t.Fatalf("expected fi, got %q", got)
	}
	if got := editQuery("", []rune{'\t', 'é', 'a'}, false, maxQueryLen); got != "a" {
		t.Fatalf("non-printable runes should be dropped, got %q", got)
	}
	if got := editQuery("abc", []rune("def"), false, 4); got != "abcd" {
		t.Fatalf("expected length cap, got %q", got)
	}
	if got := editQuery("", nil, true, maxQueryLen); got != "" {
		t.Fatalf("backspace on empty should stay empty, got %q", got)
	}
}

func TestOrbitAutoRotateStopsOnDrag(t *testing.T) {
	o := newOrbit()
	o.advance(1)
	if math.Abs(o.Yaw-orbitSpin) > 1e-12 {
		t.Fatalf("expected yaw %f after 1s, got %f", orbitSpin, o.Yaw)
	}
	o.drag(10, 0)
	if o.AutoRotate {
		t.Fatalf("dragging should stop auto-rotation")
	}
	yaw := o.Yaw
	o.advance(1)
	if o.Yaw != yaw {
		t.Fatalf("yaw should hold once auto-rotation is off")
	}
	o.drag(0, 1e6)
	if o.Pitch != orbitMaxPitch {
		t.Fatalf("pitch should clamp to %f, got %f", orbitMaxPitch, o.Pitch)
	}
}

func TestOrbitZoomClamps(t *testing.T) {
	o := newOrbit()
	o.zoom(100)
	if o.Distance != orbitMinDistance {
		t.Fatalf("expected min distance, got %f", o.Distance)
	}
	o.zoom(-100)
	if o.Distance != orbitMaxDistance {
		t.Fatalf("expected max distance, got %f", o.Distance)
	}
}

func TestOrbitEyeDistanceAndFacing(t *testing.T) {
	o := newOrbit()
	if d := o.eye().Sub(o.Target).Len(); math.Abs(d-o.Distance) > 1e-9 {
		t.Fatalf("eye should sit %f from the target, got %f", o.Distance, d)
	}
	if !o.inFront(scene.V3(0, 0, 0)) {
		t.Fatalf("origin should be in front of the camera")
	}
	behind := o.eye().Add(o.eye().Sub(o.Target))
	if o.inFront(behind) {
		t.Fatalf("point behind the eye should not be in front")
	}
}

func TestWrapText(t *testing.T) {
	measure := func(s string) int32 { return int32(len(s)) }
	lines := wrapText("tall plant with glossy leaves", 10, measure)
	want := []string{"tall plant", "with", "glossy", "leaves"}
	if len(lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, lines)
		}
	}
	if wrapText("   ", 10, measure) != nil {
		t.Fatalf("blank text should produce no lines")
	}
}

func TestFontSearchPaths(t *testing.T) {
	got := fontSearchPaths("/fonts/Garamond.ttf", "/opt/herbarium")
	want := []string{
		"/fonts/Garamond.ttf",
		filepath.Join("assets", "fonts", "NotoSerif-Regular.ttf"),
		filepath.Join("assets", "fonts", "NotoSans-Regular.ttf"),
		filepath.Join("/opt/herbarium", "assets", "fonts", "NotoSerif-Regular.ttf"),
		filepath.Join("/opt/herbarium", "assets", "fonts", "NotoSans-Regular.ttf"),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("path %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if got := fontSearchPaths("", ""); len(got) != 2 {
		t.Fatalf("expected only the working directory faces, got %v", got)
	}
}

func TestHerbariumGlyphsCoverBotanicalNames(t *testing.T) {
	glyphs := make(map[rune]bool)
	for _, r := range herbariumGlyphs() {
		glyphs[r] = true
	}
	for _, r := range "Philodendron × 'Birkin' Crème Brûlée" {
		if !glyphs[r] {
			t.Fatalf("missing glyph %q", r)
		}
	}
	if glyphs['\x7f'] || glyphs['\u0085'] {
		t.Fatalf("control characters should not be rasterised")
	}
}
