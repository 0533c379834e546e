package scene

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/logging"
	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

func tourRecords() []catalog.PlantRecord {
	return []catalog.PlantRecord{
		{ID: "monstera", Name: "Swiss Cheese Monstera", ScientificName: "Monstera deliciosa"},
		{ID: "fiddle-leaf", Name: "Fiddle Leaf Fig", ScientificName: "Ficus lyrata"},
		{ID: "Snake Plant", Name: "Snake Plant", ScientificName: "Sansevieria"},
		{ID: "pothos", Name: "Golden Pothos", ScientificName: "Epipremnum aureum"},
	}
}

func newTestComposer(opts Options) *Composer {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return NewComposer(opts)
}

func TestComposerOneInstancePerMatchingRecord(t *testing.T) {
	c := newTestComposer(Options{})
	c.SetRecords(tourRecords())
	if got := len(c.Instances()); got != 4 {
		t.Fatalf("expected 4 instances, got %d", got)
	}

	c.SetQuery("PLANT")
	insts := c.Instances()
	if len(insts) != 1 || insts[0].Record.ID != "Snake Plant" {
		t.Fatalf("expected only the snake plant, got %+v", insts)
	}
	if insts[0].Index != 0 || insts[0].Slot != 0 {
		t.Fatalf("expected the survivor to take index 0, got index=%d slot=%d", insts[0].Index, insts[0].Slot)
	}

	c.SetQuery("")
	if got := len(c.Instances()); got != 4 {
		t.Fatalf("expected all instances back, got %d", got)
	}
}

func TestComposerSingleSnakePlant(t *testing.T) {
	c := newTestComposer(Options{})
	c.SetRecords([]catalog.PlantRecord{{ID: "Snake Plant", Name: "Snake Plant", ScientificName: "Sansevieria", Characteristics: []string{}}})

	insts := c.Instances()
	if len(insts) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(insts))
	}
	if insts[0].VariantKey != "snake-plant" || insts[0].Params.LeafCount != 8 || len(insts[0].Structure.Leaves) != 8 {
		t.Fatalf("expected snake-plant variant with 8 leaves, got %s %+v", insts[0].VariantKey, insts[0].Params)
	}

	c.SetQuery("aloe")
	if got := len(c.Instances()); got != 0 {
		t.Fatalf("expected no instances for aloe, got %d", got)
	}
	frame, err := c.Frame()
	if err != nil {
		t.Fatalf("empty view should still compose: %v", err)
	}
	if len(frame.Instances) != 0 {
		t.Fatalf("expected empty frame, got %d instances", len(frame.Instances))
	}
}

func TestComposerIsolatesBuildFaults(t *testing.T) {
	fiddle := variant.DefaultTable().Resolve(variant.KeyFiddleLeaf)
	failing := BuilderFunc(func(p variant.Params) (Structure, error) {
		if p == fiddle {
			return Structure{}, errors.New("leaf generator exploded")
		}
		return ProceduralBuilder{}.Build(p)
	})

	healthy := newTestComposer(Options{})
	healthy.SetRecords(tourRecords())
	faulty := newTestComposer(Options{Builder: failing})
	faulty.SetRecords(tourRecords())

	want := healthy.Instances()
	got := faulty.Instances()
	if len(got) != len(want)-1 {
		t.Fatalf("expected %d instances, got %d", len(want)-1, len(got))
	}

	byID := make(map[string]Instance, len(want))
	for _, inst := range want {
		byID[inst.Record.ID] = inst
	}
	for _, inst := range got {
		if inst.Record.ID == "fiddle-leaf" {
			t.Fatalf("faulted instance should be absent")
		}
		ref := byID[inst.Record.ID]
		if inst.Base != ref.Base {
			t.Fatalf("%s: transform changed: %+v vs %+v", inst.Record.ID, inst.Base, ref.Base)
		}
		if diff := cmp.Diff(ref.Structure, inst.Structure); diff != "" {
			t.Fatalf("%s: geometry changed:\n%s", inst.Record.ID, diff)
		}
	}
}

func TestComposerIsolatesPanics(t *testing.T) {
	panicky := BuilderFunc(func(p variant.Params) (Structure, error) {
		if p.LeafCount == 8 {
			panic("nil mesh")
		}
		return ProceduralBuilder{}.Build(p)
	})
	c := newTestComposer(Options{Builder: panicky})
	c.SetRecords(tourRecords())
	if got := len(c.Instances()); got != 3 {
		t.Fatalf("expected 3 instances, got %d", got)
	}
	if _, err := c.Frame(); err != nil {
		t.Fatalf("per-instance panic must not escalate: %v", err)
	}
}

type failingPlacer struct{ bad int }

func (f failingPlacer) Place(index, total int) (Transform, error) {
	if index == f.bad {
		return Transform{}, errors.New("no slot")
	}
	return DefaultLayout().Place(index, total)
}

func TestComposerIsolatesPlaceFaults(t *testing.T) {
	c := newTestComposer(Options{Layout: failingPlacer{bad: 0}})
	c.SetRecords(tourRecords())
	insts := c.Instances()
	if len(insts) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(insts))
	}
	for i, inst := range insts {
		if inst.Index != i+1 || inst.Slot != i {
			t.Fatalf("expected index %d slot %d, got %d/%d", i+1, i, inst.Index, inst.Slot)
		}
	}
	if len(c.Filtered()) != 4 {
		t.Fatalf("filtered view should still list the faulted record")
	}
}

func TestComposerFrameAppliesSway(t *testing.T) {
	c := newTestComposer(Options{Animator: NewAnimator(0.5)})
	c.SetRecords(tourRecords()[:1])

	frame, err := c.Frame()
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if frame.Tick != 1 || len(frame.Instances) != 1 {
		t.Fatalf("unexpected frame %+v", frame)
	}
	ri := frame.Instances[0]
	sway := SwayAt(0.5)
	base := c.Instances()[0].Base
	if ri.Transform.Rotation.Y != base.Rotation.Y+sway.Yaw || ri.Transform.Rotation.X != base.Rotation.X+sway.Pitch {
		t.Fatalf("expected sway on top of base rotation, got %+v", ri.Transform.Rotation)
	}
	if ri.Transform.Position != base.Position {
		t.Fatalf("sway must not move the plant")
	}
	if ri.Label.Text != "Swiss Cheese Monstera" || ri.Label.Anchor.Y <= ri.Stem.Top.Y {
		t.Fatalf("expected label above the stem, got %+v", ri.Label)
	}
	if len(ri.Leaves) != 6 {
		t.Fatalf("expected 6 leaf quads, got %d", len(ri.Leaves))
	}
}

func TestComposerFilterChangeResetsAnimation(t *testing.T) {
	anim := NewAnimator(0.1)
	c := newTestComposer(Options{Animator: anim})
	c.SetRecords(tourRecords())
	for i := 0; i < 5; i++ {
		if _, err := c.Frame(); err != nil {
			t.Fatalf("frame: %v", err)
		}
	}
	c.SetQuery("fig")
	if anim.Len() != 1 {
		t.Fatalf("expected one live slot, got %d", anim.Len())
	}
	if st, _ := anim.State(0); st.T != 0 {
		t.Fatalf("expected fresh animation state, got %f", st.T)
	}

	// Queries that keep the same matches keep the existing state.
	if _, err := c.Frame(); err != nil {
		t.Fatalf("frame: %v", err)
	}
	c.SetQuery("FIG")
	c.SetQuery("fi")
	if st, _ := anim.State(0); st.T == 0 {
		t.Fatalf("query producing the same view should not rebuild")
	}
}

func TestComposerContextLostEscalates(t *testing.T) {
	c := newTestComposer(Options{})
	c.SetRecords(tourRecords())
	c.MarkContextLost(nil)
	_, err := c.Frame()
	var fault *CatastrophicRenderFault
	if !errors.As(err, &fault) || !errors.Is(err, ErrContextLost) {
		t.Fatalf("expected catastrophic fault wrapping ErrContextLost, got %v", err)
	}
}

func TestComposerSelectEmitsRecord(t *testing.T) {
	var got []catalog.PlantRecord
	c := newTestComposer(Options{OnSelect: func(r catalog.PlantRecord) { got = append(got, r) }})
	c.SetRecords(tourRecords())

	if !c.Select(2) {
		t.Fatalf("expected select to succeed")
	}
	if c.Select(9) {
		t.Fatalf("expected out of range select to fail")
	}
	if len(got) != 1 || got[0].ID != "Snake Plant" {
		t.Fatalf("unexpected selection events %+v", got)
	}
}

func TestComposerPickNearest(t *testing.T) {
	c := newTestComposer(Options{})
	c.SetRecords(tourRecords())
	target := c.Instances()[1]
	pos := target.Base.Position

	// A ray from outside the circle aimed at the plant's mid height.
	origin := V3(pos.X*3, 0.5, pos.Z*3)
	ray := Ray{Origin: origin, Direction: V3(pos.X, 0.5, pos.Z).Sub(origin)}
	idx, ok := c.Pick(ray)
	if !ok || idx != 1 {
		t.Fatalf("expected to pick instance 1, got %d %v", idx, ok)
	}

	if _, ok := c.Pick(Ray{Origin: V3(0, 50, 0), Direction: V3(0, 1, 0)}); ok {
		t.Fatalf("ray pointing at the sky should miss")
	}
}

func TestComposerSuggestionsWhenEmpty(t *testing.T) {
	c := newTestComposer(Options{})
	c.SetRecords(tourRecords())
	if got := c.Suggestions(3); got != nil {
		t.Fatalf("no suggestions expected while plants are visible, got %v", got)
	}
	c.SetQuery("poths")
	if got := c.Suggestions(3); len(got) == 0 || got[0] != "Golden Pothos" {
		t.Fatalf("expected pothos suggestion, got %v", got)
	}
}
