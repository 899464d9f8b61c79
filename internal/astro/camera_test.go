package astro

import (
	"math"
	"testing"
)

func TestRayIntersectSphere(t *testing.T) {
	r := Ray{Origin: Vec3{Z: 10}, Dir: Vec3{Z: -1}}

	tests := []struct {
		name   string
		center Vec3
		radius float64
		wantT  float64
		wantOK bool
	}{
		{"hit front", Vec3{}, 2, 8, true},
		{"miss", Vec3{X: 5}, 2, 0, false},
		{"behind", Vec3{Z: 20}, 2, 0, false},
		{"inside", Vec3{Z: 10}, 3, 3, true},
		{"zero radius", Vec3{}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotT, ok := r.IntersectSphere(tt.center, tt.radius)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(gotT-tt.wantT) > 1e-9 {
				t.Errorf("t = %v, want %v", gotT, tt.wantT)
			}
		})
	}
}

func TestCameraProjectCenter(t *testing.T) {
	c := NewCamera(Vec3{Z: 100}, Vec3{})
	c.SetViewport(80, 40, 1)

	x, y, depth, ok := c.Project(Vec3{})
	if !ok {
		t.Fatal("target should be visible")
	}
	if math.Abs(x) > 1e-12 || math.Abs(y) > 1e-12 {
		t.Errorf("target projects to (%v, %v), want (0, 0)", x, y)
	}
	if math.Abs(depth-100) > 1e-9 {
		t.Errorf("depth = %v, want 100", depth)
	}

	if _, _, _, ok := c.Project(Vec3{Z: 200}); ok {
		t.Error("point behind camera should not be visible")
	}
}

func TestCameraRayRoundTrip(t *testing.T) {
	c := NewCamera(Vec3{0, 400, 600}, Vec3{})
	c.SetViewport(120, 40, 2)

	points := []Vec3{
		{70, 0, 0},
		{-140, 3, 20},
		{0, 0, -300},
	}

	for _, p := range points {
		x, y, depth, ok := c.Project(p)
		if !ok {
			t.Fatalf("%v not visible", p)
		}
		ray := c.RayFromNDC(x, y)
		dist := p.DistTo(c.Position)
		hit := ray.At(dist)
		if !hit.ApproxEqual(p, 1e-6*dist) {
			t.Errorf("ray through projection of %v reaches %v (depth %v)", p, hit, depth)
		}
	}
}

func TestCameraStraightDownHasBasis(t *testing.T) {
	c := NewCamera(Vec3{Y: 500}, Vec3{})
	c.SetViewport(80, 24, 2)

	f, r, u := c.Basis()
	if !f.ApproxEqual(Vec3{Y: -1}, 1e-12) {
		t.Errorf("forward = %v", f)
	}
	if r.Norm() < 0.99 || u.Norm() < 0.99 {
		t.Errorf("degenerate basis right=%v up=%v", r, u)
	}
	if _, _, _, ok := c.Project(Vec3{X: 10}); !ok {
		t.Error("point below straight-down camera should be visible")
	}
}

func TestCameraSetViewport(t *testing.T) {
	c := NewCamera(Vec3{Z: 10}, Vec3{})
	c.SetViewport(100, 50, 2)

	if c.Width != 100 || c.Height != 50 {
		t.Errorf("viewport = %dx%d, want 100x50", c.Width, c.Height)
	}
	if math.Abs(c.Aspect-1) > 1e-12 {
		t.Errorf("Aspect = %v, want 1", c.Aspect)
	}

	c.SetViewport(0, 0, 0)
	if c.Width != 1 || c.Height != 1 || c.Aspect != 1 {
		t.Errorf("degenerate viewport not clamped: %dx%d aspect %v", c.Width, c.Height, c.Aspect)
	}
}

func TestCameraDollyClamps(t *testing.T) {
	c := NewCamera(Vec3{Z: 1000}, Vec3{})
	c.MaxDistance = 5000

	c.Dolly(10)
	if d := c.Position.DistTo(c.Target); math.Abs(d-5000) > 1e-9 {
		t.Errorf("distance = %v, want 5000", d)
	}

	c.Dolly(0.5)
	if d := c.Position.DistTo(c.Target); math.Abs(d-2500) > 1e-9 {
		t.Errorf("distance = %v, want 2500", d)
	}
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	c := NewCamera(Vec3{0, 400, 600}, Vec3{})
	before := c.Position.DistTo(c.Target)

	c.Orbit(0.5, -0.2)
	after := c.Position.DistTo(c.Target)
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("distance changed from %v to %v", before, after)
	}
}

func TestFrameReusedAfterCameraMoves(t *testing.T) {
	c := NewCamera(Vec3{X: 50, Y: 120, Z: 300}, Vec3{})
	c.SetViewport(120, 40, 2)
	f := c.Frame()

	p := Vec3{X: -40, Y: 5, Z: 60}
	wx, wy, wd, wok := c.Project(p)

	// The frame is a snapshot; later camera moves do not affect it.
	c.Orbit(0.5, 0.1)
	x, y, d, ok := f.Project(p)
	if ok != wok || math.Abs(x-wx) > 1e-12 || math.Abs(y-wy) > 1e-12 || math.Abs(d-wd) > 1e-12 {
		t.Errorf("frame projection (%v, %v, %v, %v) != camera (%v, %v, %v, %v)", x, y, d, ok, wx, wy, wd, wok)
	}
	if math.Abs(f.TanHalfFov-math.Tan(math.Pi/6)) > 1e-12 {
		t.Errorf("TanHalfFov = %v", f.TanHalfFov)
	}
}
