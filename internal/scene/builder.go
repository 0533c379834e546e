package scene

import (
	"fmt"
	"math"

	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

const (
	stemRadius   = 0.05
	stemSegments = 6
)

// Cylinder is the stem primitive.
type Cylinder struct {
	RadiusTop      float64 `json:"radius_top"`
	RadiusBottom   float64 `json:"radius_bottom"`
	Height         float64 `json:"height"`
	RadialSegments int     `json:"radial_segments"`
}

// Leaf is a flat square of side Size at Position, turned by Yaw about the
// vertical axis.
type Leaf struct {
	Position    Vec3    `json:"position"`
	Yaw         float64 `json:"yaw"`
	Size        float64 `json:"size"`
	DoubleSided bool    `json:"double_sided"`
}

// Structure is the renderable shape of one plant in its local frame. The
// stem stands on the origin and rises along +Y.
type Structure struct {
	Stem      Cylinder      `json:"stem"`
	Leaves    []Leaf        `json:"leaves"`
	StemColor variant.Color `json:"stem_color"`
	LeafColor variant.Color `json:"leaf_color"`
}

// Builder synthesises a Structure from variant parameters.
type Builder interface {
	Build(p variant.Params) (Structure, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(p variant.Params) (Structure, error)

func (f BuilderFunc) Build(p variant.Params) (Structure, error) {
	return f(p)
}

// ProceduralBuilder is the default Builder: one stem plus LeafCount leaves
// spread evenly around it at mid height. It is a pure function of the
// parameters.
type ProceduralBuilder struct{}

func (ProceduralBuilder) Build(p variant.Params) (Structure, error) {
	if err := p.Validate(); err != nil {
		return Structure{}, fmt.Errorf("build plant: %w", err)
	}
	leaves := make([]Leaf, 0, p.LeafCount)
	for i := 0; i < p.LeafCount; i++ {
		angle := float64(i) / float64(p.LeafCount) * 2 * math.Pi
		s, c := math.Sincos(angle)
		leaves = append(leaves, Leaf{
			Position:    V3(s*p.Spread, p.Height*0.5, c*p.Spread),
			Yaw:         angle,
			Size:        p.LeafSize,
			DoubleSided: true,
		})
	}
	return Structure{
		Stem: Cylinder{
			RadiusTop:      stemRadius,
			RadiusBottom:   stemRadius,
			Height:         p.Height,
			RadialSegments: stemSegments,
		},
		Leaves:    leaves,
		StemColor: p.StemColor,
		LeafColor: p.LeafColor,
	}, nil
}

// corners returns the leaf's square in the plant's local frame. The square
// lies in the leaf's XY plane before the yaw is applied.
func (l Leaf) corners() [4]Vec3 {
	h := l.Size / 2
	local := [4]Vec3{V3(-h, -h, 0), V3(h, -h, 0), V3(h, h, 0), V3(-h, h, 0)}
	var out [4]Vec3
	for i, p := range local {
		out[i] = rotateY(p, l.Yaw).Add(l.Position)
	}
	return out
}
