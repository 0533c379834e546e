package scene

import (
	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

const labelLift = 0.3

// StemSegment is a stem in world space.
type StemSegment struct {
	Base     Vec3          `json:"base"`
	Top      Vec3          `json:"top"`
	Radius   float64       `json:"radius"`
	Segments int           `json:"segments"`
	Color    variant.Color `json:"color"`
}

// LeafQuad is a leaf square in world space, corners in winding order.
type LeafQuad struct {
	Corners     [4]Vec3       `json:"corners"`
	Color       variant.Color `json:"color"`
	DoubleSided bool          `json:"double_sided"`
}

type Label struct {
	Text   string `json:"text"`
	Anchor Vec3   `json:"anchor"`
}

// RenderedInstance is one instance of a frame with sway applied.
type RenderedInstance struct {
	Index      int                 `json:"index"`
	Record     catalog.PlantRecord `json:"record"`
	VariantKey string              `json:"variant"`
	Transform  Transform           `json:"transform"`
	Stem       StemSegment         `json:"stem"`
	Leaves     []LeafQuad          `json:"leaves"`
	Label      Label               `json:"label"`
	Bounds     Box                 `json:"bounds"`
}

// Frame is everything needed to draw one tick of the tour.
type Frame struct {
	Tick      uint64             `json:"tick"`
	Query     string             `json:"query"`
	Instances []RenderedInstance `json:"instances"`
}

func renderInstance(inst Instance, sway Sway) RenderedInstance {
	tr := inst.Base
	tr.Rotation.X += sway.Pitch
	tr.Rotation.Y += sway.Yaw

	s := inst.Structure
	stem := StemSegment{
		Base:     tr.Apply(V3(0, 0, 0)),
		Top:      tr.Apply(V3(0, s.Stem.Height, 0)),
		Radius:   s.Stem.RadiusBottom,
		Segments: s.Stem.RadialSegments,
		Color:    s.StemColor,
	}
	leaves := make([]LeafQuad, 0, len(s.Leaves))
	for _, leaf := range s.Leaves {
		local := leaf.corners()
		var world [4]Vec3
		for i, p := range local {
			world[i] = tr.Apply(p)
		}
		leaves = append(leaves, LeafQuad{Corners: world, Color: s.LeafColor, DoubleSided: leaf.DoubleSided})
	}
	return RenderedInstance{
		Index:      inst.Index,
		Record:     inst.Record,
		VariantKey: inst.VariantKey,
		Transform:  tr,
		Stem:       stem,
		Leaves:     leaves,
		Label: Label{
			Text:   inst.Record.Name,
			Anchor: tr.Apply(V3(0, s.Stem.Height+labelLift, 0)),
		},
		Bounds: inst.Bounds,
	}
}

// localBounds covers the stem and every leaf corner, in world space at the
// base transform, padded to absorb sway.
func localBounds(base Transform, s Structure) Box {
	points := []Vec3{
		base.Apply(V3(-s.Stem.RadiusBottom, 0, -s.Stem.RadiusBottom)),
		base.Apply(V3(s.Stem.RadiusTop, s.Stem.Height, s.Stem.RadiusTop)),
	}
	for _, leaf := range s.Leaves {
		for _, p := range leaf.corners() {
			points = append(points, base.Apply(p))
		}
	}
	return boxAround(points...).pad(0.05)
}
