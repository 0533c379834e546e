package scene

import "math"

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{X: v.Y*o.Z - v.Z*o.Y, Y: v.Z*o.X - v.X*o.Z, Z: v.X*o.Y - v.Y*o.X}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length, or v itself when it is zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// rotateX and rotateY follow the right-handed convention used by the orbit
// camera: positive angles turn +Z towards +X about Y, and +Y towards +Z
// about X.
func rotateX(v Vec3, a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{X: v.X, Y: v.Y*c - v.Z*s, Z: v.Y*s + v.Z*c}
}

func rotateY(v Vec3, a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{X: v.X*c + v.Z*s, Y: v.Y, Z: -v.X*s + v.Z*c}
}

func rotateZ(v Vec3, a float64) Vec3 {
	s, c := math.Sincos(a)
	return Vec3{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
}

// Transform is a position plus XYZ Euler rotation in radians.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
}

// Apply maps a local point to world space: rotate Z, then Y, then X, then
// translate.
func (t Transform) Apply(local Vec3) Vec3 {
	v := rotateZ(local, t.Rotation.Z)
	v = rotateY(v, t.Rotation.Y)
	v = rotateX(v, t.Rotation.X)
	return v.Add(t.Position)
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

func boxAround(points ...Vec3) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = b.extend(p)
	}
	return b
}

func (b Box) extend(p Vec3) Box {
	b.Min = Vec3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
	b.Max = Vec3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	return b
}

func (b Box) pad(d float64) Box {
	return Box{Min: b.Min.Sub(V3(d, d, d)), Max: b.Max.Add(V3(d, d, d))}
}

// Ray is a half-line used for pointer picking.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// Intersect returns the distance along r to b, using the slab method.
func (r Ray) Intersect(b Box) (float64, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	if tMax < 0 {
		return 0, false
	}
	if tMin < 0 {
		return 0, true
	}
	return tMin, true
}
