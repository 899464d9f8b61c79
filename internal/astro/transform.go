package astro

import "math"

// Mat3 is a row-major 3x3 matrix.
type Mat3 [3][3]float64

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// RotationY returns a right-handed rotation about +Y.
// A positive angle turns +X toward -Z, matching the usual
// three-dimensional viewer convention.
func RotationY(rad float64) Mat3 {
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat3{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}
}

// RotationX returns a right-handed rotation about +X.
func RotationX(rad float64) Mat3 {
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat3{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}
}

// Mul returns m × n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return r
}

// Transpose returns mᵀ, the inverse of a pure rotation.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Apply returns m × v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Affine is a linear map followed by a translation.
type Affine struct {
	M Mat3
	T Vec3
}

// IdentityAffine returns the transform that leaves points unchanged.
func IdentityAffine() Affine {
	return Affine{M: Identity3()}
}

// LocalTransform builds translate ∘ rotateY ∘ rotateX ∘ scale.
func LocalTransform(pos Vec3, rotY, tiltX, scale float64) Affine {
	m := RotationY(rotY).Mul(RotationX(tiltX))
	if scale != 1 {
		for i := range m {
			for j := range m[i] {
				m[i][j] *= scale
			}
		}
	}
	return Affine{M: m, T: pos}
}

// Then returns the transform that applies child first, then a.
// For a scene graph this is parentWorld.Then(childLocal).
func (a Affine) Then(child Affine) Affine {
	return Affine{
		M: a.M.Mul(child.M),
		T: a.M.Apply(child.T).Add(a.T),
	}
}

// Apply transforms a point.
func (a Affine) Apply(p Vec3) Vec3 {
	return a.M.Apply(p).Add(a.T)
}

// Origin returns where the local origin lands.
func (a Affine) Origin() Vec3 {
	return a.T
}
