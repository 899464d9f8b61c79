// Package astro provides the vector math, transforms and camera geometry
// used to place and view bodies in the orrery.
package astro

import (
	"math"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Vec3 represents a 3D vector in scene units.
// Y is up; the orbital plane is XZ.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// DistTo returns the distance between two points.
func (v Vec3) DistTo(u Vec3) float64 {
	return v.Sub(u).Norm()
}

// Lerp moves v toward u by fraction t (0 = v, 1 = u).
func (v Vec3) Lerp(u Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (u.X-v.X)*t,
		Y: v.Y + (u.Y-v.Y)*t,
		Z: v.Z + (u.Z-v.Z)*t,
	}
}

// ApproxEqual reports whether every component differs by at most tol.
func (v Vec3) ApproxEqual(u Vec3, tol float64) bool {
	return math.Abs(v.X-u.X) <= tol &&
		math.Abs(v.Y-u.Y) <= tol &&
		math.Abs(v.Z-u.Z) <= tol
}

// WrapAngle normalizes an angle to [0, 2π).
func WrapAngle(rad float64) float64 {
	a := math.Mod(rad, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// AngleDiff returns the signed shortest difference a - b in (-π, π].
func AngleDiff(a, b float64) float64 {
	d := WrapAngle(a - b)
	if d > math.Pi {
		d -= TwoPi
	}
	return d
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
