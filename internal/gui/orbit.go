package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/virtual-herbarium/internal/scene"
	"github.com/appengine-ltd/virtual-herbarium/internal/variant"
)

const (
	orbitSpin        = 0.15 // radians per second
	orbitMinDistance = 4.5
	orbitMaxDistance = 18
	orbitMinPitch    = 0.08
	orbitMaxPitch    = 1.25
	dragSensitivity  = 0.005
)

// orbit is the tour camera: it circles the plants, auto-rotating until the
// user turns it off.
type orbit struct {
	Yaw        float64
	Pitch      float64
	Distance   float64
	Target     scene.Vec3
	AutoRotate bool
}

func newOrbit() orbit {
	return orbit{Pitch: 0.38, Distance: 9.5, Target: scene.V3(0, 0.6, 0), AutoRotate: true}
}

func (o *orbit) advance(dt float64) {
	if o.AutoRotate {
		o.Yaw = math.Mod(o.Yaw+orbitSpin*dt, 2*math.Pi)
	}
}

// drag turns the camera by a mouse delta in pixels and stops auto-rotation.
func (o *orbit) drag(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	o.AutoRotate = false
	o.Yaw = math.Mod(o.Yaw-dx*dragSensitivity, 2*math.Pi)
	o.Pitch = clampFloat(o.Pitch+dy*dragSensitivity, orbitMinPitch, orbitMaxPitch)
}

func (o *orbit) zoom(wheel float64) {
	o.Distance = clampFloat(o.Distance-wheel*0.6, orbitMinDistance, orbitMaxDistance)
}

func (o orbit) eye() scene.Vec3 {
	horiz := math.Cos(o.Pitch) * o.Distance
	return o.Target.Add(scene.V3(math.Sin(o.Yaw)*horiz, math.Sin(o.Pitch)*o.Distance, math.Cos(o.Yaw)*horiz))
}

func (o orbit) camera() rl.Camera3D {
	return rl.Camera3D{
		Position:   toRL(o.eye()),
		Target:     toRL(o.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// inFront reports whether p is on the visible side of the camera.
func (o orbit) inFront(p scene.Vec3) bool {
	eye := o.eye()
	return p.Sub(eye).Dot(o.Target.Sub(eye)) > 0
}

func toRL(v scene.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func fromRL(v rl.Vector3) scene.Vec3 {
	return scene.V3(float64(v.X), float64(v.Y), float64(v.Z))
}

func toRLColor(c variant.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
