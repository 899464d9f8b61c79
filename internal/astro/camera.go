package astro

import "math"

// Camera is a perspective camera looking from Position toward Target.
// Width and Height are the viewport in surface cells; Aspect is the
// projection aspect derived from them. SetViewport keeps the two in step.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FovYDeg float64
	Near    float64
	Far     float64

	Aspect float64
	Width  int
	Height int

	// MaxDistance bounds Dolly. Zero means unbounded.
	MaxDistance float64
}

// NewCamera creates a camera with a 60° vertical field of view.
func NewCamera(pos, target Vec3) Camera {
	return Camera{
		Position: pos,
		Target:   target,
		Up:       Vec3{Y: 1},
		FovYDeg:  60,
		Near:     0.1,
		Far:      20000,
		Aspect:   1,
	}
}

// SetViewport updates the viewport size and the projection aspect together.
// cellAspect is the height/width ratio of one surface cell (≈2 for terminals,
// 1 for square pixels).
func (c *Camera) SetViewport(width, height int, cellAspect float64) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if cellAspect <= 0 {
		cellAspect = 1
	}
	c.Width = width
	c.Height = height
	c.Aspect = float64(width) / (float64(height) * cellAspect)
}

// Basis returns the forward, right and up unit vectors of the view.
// When the view direction is parallel to Up, -Z is used as the up hint so a
// straight-down camera still has a well defined orientation.
func (c Camera) Basis() (forward, right, up Vec3) {
	forward = c.Target.Sub(c.Position).Normalized()
	if forward == (Vec3{}) {
		forward = Vec3{Z: -1}
	}
	hint := c.Up
	if hint == (Vec3{}) {
		hint = Vec3{Y: 1}
	}
	right = forward.Cross(hint)
	if right.Norm() < 1e-9 {
		right = forward.Cross(Vec3{Z: -1})
	}
	right = right.Normalized()
	up = right.Cross(forward)
	return forward, right, up
}

func (c Camera) tanHalfFov() float64 {
	return math.Tan(degToRad(c.FovYDeg) / 2)
}

// Frame is a camera's view basis, computed once for projecting many points.
type Frame struct {
	Camera             Camera
	Forward, Right, Up Vec3
	// TanHalfFov is tan(FovY/2).
	TanHalfFov float64
}

// Frame captures the current view basis.
func (c Camera) Frame() Frame {
	f, r, u := c.Basis()
	return Frame{Camera: c, Forward: f, Right: r, Up: u, TanHalfFov: c.tanHalfFov()}
}

// Project maps a world point to NDC. depth is the distance along the view
// direction; ok is false for points behind the near plane or past Far.
func (f Frame) Project(p Vec3) (ndcX, ndcY, depth float64, ok bool) {
	c := f.Camera
	d := p.Sub(c.Position)
	depth = d.Dot(f.Forward)
	if depth <= c.Near || (c.Far > 0 && depth > c.Far) {
		return 0, 0, depth, false
	}
	ndcX = d.Dot(f.Right) / (depth * f.TanHalfFov * c.Aspect)
	ndcY = d.Dot(f.Up) / (depth * f.TanHalfFov)
	return ndcX, ndcY, depth, true
}

// RayFromNDC returns the ray through normalized device coordinates
// (x right, y up, both in [-1, 1]).
func (c Camera) RayFromNDC(x, y float64) Ray {
	f := c.Frame()
	dir := f.Forward.
		Add(f.Right.Scale(x * f.TanHalfFov * c.Aspect)).
		Add(f.Up.Scale(y * f.TanHalfFov))
	return Ray{Origin: c.Position, Dir: dir.Normalized()}
}

// Project is Frame().Project(p) for a single point.
func (c Camera) Project(p Vec3) (ndcX, ndcY, depth float64, ok bool) {
	return c.Frame().Project(p)
}

// Orbit rotates the camera around its target by azimuth and elevation
// deltas in radians. Elevation is clamped short of the poles.
func (c *Camera) Orbit(dAz, dEl float64) {
	offset := c.Position.Sub(c.Target)
	r := offset.Norm()
	if r == 0 {
		return
	}
	az := math.Atan2(offset.X, offset.Z)
	el := math.Asin(clamp(offset.Y/r, -1, 1))

	az += dAz
	el = clamp(el+dEl, -math.Pi/2+0.01, math.Pi/2-0.01)

	c.Position = c.Target.Add(Vec3{
		X: r * math.Cos(el) * math.Sin(az),
		Y: r * math.Sin(el),
		Z: r * math.Cos(el) * math.Cos(az),
	})
}

// Dolly scales the camera distance to its target, clamped to
// [Near*10, MaxDistance].
func (c *Camera) Dolly(factor float64) {
	if factor <= 0 {
		return
	}
	offset := c.Position.Sub(c.Target)
	r := offset.Norm()
	if r == 0 {
		return
	}
	nr := r * factor
	if minR := c.Near * 10; nr < minR {
		nr = minR
	}
	if c.MaxDistance > 0 && nr > c.MaxDistance {
		nr = c.MaxDistance
	}
	c.Position = c.Target.Add(offset.Scale(nr / r))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
