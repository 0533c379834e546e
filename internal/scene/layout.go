package scene

import (
	"fmt"
	"math"
)

// Default ring: 3 units out, 2 rad between consecutive indices. 2k is never
// a multiple of 2π, so no two indices share a slot.
const (
	DefaultRadius    = 3.0
	DefaultAngleStep = 2.0
)

// Placer computes the placement of the instance at index.
type Placer interface {
	Place(index, total int) (Transform, error)
}

// Layout places instances on a circle of Radius around the origin. The
// angle of an instance depends only on its index, never on total, so
// siblings do not move when the filtered set grows or shrinks.
type Layout struct {
	Radius float64
	Step   float64
}

func DefaultLayout() Layout {
	return Layout{Radius: DefaultRadius, Step: DefaultAngleStep}
}

func (l Layout) Place(index, total int) (Transform, error) {
	if index < 0 || index >= total {
		return Transform{}, fmt.Errorf("index %d out of range for %d instances", index, total)
	}
	theta := float64(index) * l.Step
	s, c := math.Sincos(theta)
	return Transform{
		Position: V3(l.Radius*s, 0, l.Radius*c),
		Rotation: V3(0, theta, 0),
	}, nil
}

// PlaceAll returns one transform per index in 0..total-1.
func (l Layout) PlaceAll(total int) []Transform {
	if total <= 0 {
		return nil
	}
	out := make([]Transform, 0, total)
	for i := 0; i < total; i++ {
		t, _ := l.Place(i, total)
		out = append(out, t)
	}
	return out
}
