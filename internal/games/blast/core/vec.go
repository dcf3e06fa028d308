package core

import (
	"fmt"
	"math"
)

// Vec3 is a point or direction in board world space.
type Vec3 struct {
	X, Y, Z float64
}

// V is a convenience constructor for Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) LengthSq() float64 { return v.Dot(v) }

// DistanceSq returns the squared distance between two points.
func (v Vec3) DistanceSq(o Vec3) float64 {
	return v.Sub(o).LengthSq()
}

// MoveTowards moves v toward target by at most maxDelta and never overshoots.
func (v Vec3) MoveTowards(target Vec3, maxDelta float64) Vec3 {
	d := target.Sub(v)
	distSq := d.LengthSq()
	if distSq == 0 || (maxDelta >= 0 && distSq <= maxDelta*maxDelta) {
		return target
	}
	dist := math.Sqrt(distSq)
	return v.Add(d.Scale(maxDelta / dist))
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f,%.3f,%.3f)", v.X, v.Y, v.Z)
}

// Ray is a half-line used to pick a cell from a pointer position.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// IntersectPlane returns the point where the ray crosses the plane through
// point with the given normal. ok is false when the ray is parallel to the
// plane or the plane lies behind the origin.
func (r Ray) IntersectPlane(point, normal Vec3) (Vec3, bool) {
	denom := r.Dir.Dot(normal)
	if math.Abs(denom) < 1e-9 {
		return Vec3{}, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return Vec3{}, false
	}
	return r.Origin.Add(r.Dir.Scale(t)), true
}
