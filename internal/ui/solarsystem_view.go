package ui

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/graph"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/texture"
)

// Shading ramp from dim to lit.
var shadeRamp = []rune{'░', '▒', '▓', '█'}

// Renderer draws a scene through its camera onto a character canvas.
type Renderer struct {
	// FogDensity is the exponential-squared fog coefficient.
	FogDensity float64
	// Ambient is the light every surface receives regardless of the sun.
	Ambient    float64
	ShowStars  bool
	ShowTracks bool

	glow texture.Map
}

// NewRenderer returns a renderer with the stock fog and lighting.
func NewRenderer() Renderer {
	return Renderer{
		FogDensity: 0.00015,
		Ambient:    float64(0x40) / 255 * 0.6,
		ShowStars:  true,
		ShowTracks: true,
		glow:       texture.NewMap(texture.Glow(128), 32, 32),
	}
}

// view maps the camera frame onto the canvas.
type view struct {
	astro.Frame
	w, h float64
}

func newView(cam astro.Camera) view {
	return view{Frame: cam.Frame(), w: float64(cam.Width), h: float64(cam.Height)}
}

// project maps a world point to fractional canvas coordinates.
func (v view) project(p astro.Vec3) (sx, sy, depth float64, ok bool) {
	nx, ny, depth, ok := v.Project(p)
	if !ok {
		return 0, 0, depth, false
	}
	return (nx + 1) / 2 * v.w, (1 - ny) / 2 * v.h, depth, true
}

// radii returns the on-canvas half extents of a sphere at depth.
func (v view) radii(radius, depth float64) (rx, ry float64) {
	ry = radius / (depth * v.TanHalfFov) * v.h / 2
	rx = radius / (depth * v.TanHalfFov * v.Camera.Aspect) * v.w / 2
	return rx, ry
}

// Render draws ctx as seen by its camera.
func (r Renderer) Render(ctx *scene.Context) *canvas {
	cam := ctx.View()
	cv := newCanvas(cam.Width, cam.Height)
	if cam.Width < 1 || cam.Height < 1 {
		return cv
	}
	v := newView(cam)

	sun := astro.Vec3{}
	if ctx.Sun != anim.NoNode {
		if p, err := ctx.WorldPosition(ctx.Sun); err == nil {
			sun = p
		}
	}

	if r.ShowStars {
		for _, s := range ctx.Stars.Stars {
			sx, sy, depth, ok := v.project(s.Pos)
			if !ok {
				continue
			}
			cv.plot(int(sx), int(sy), '·', r.fog(scaleColor(s.Color, 0.7), depth), depth)
		}
	}

	ctx.Graph.Walk(func(id graph.NodeID, n graph.Node, world astro.Affine) bool {
		look, _ := ctx.Appearance(id)
		switch n.Kind {
		case graph.KindTrack:
			if r.ShowTracks {
				r.annulus(cv, v, n, world, look, '·', 1)
			}
		case graph.KindRing:
			r.annulus(cv, v, n, world, look, '░', 4)
		case graph.KindSun:
			r.glowSprite(cv, v, world.Origin(), look.Glow, n.Radius)
			r.sphere(cv, v, n, world, look, sun, true)
		case graph.KindBody, graph.KindSatellite, graph.KindAsteroid:
			r.sphere(cv, v, n, world, look, sun, false)
		case graph.KindComet:
			r.trail(cv, v, n, look)
			r.sphere(cv, v, n, world, look, sun, true)
		}
		return true
	})
	return cv
}

// fog darkens c toward black with FogExp2 falloff.
func (r Renderer) fog(c colorful.Color, depth float64) colorful.Color {
	d := r.FogDensity * depth
	return scaleColor(c, math.Exp(-d*d))
}

// sphere shades a ball of the node's radius, or a single glyph when it is
// smaller than a cell. Emissive spheres ignore lighting.
func (r Renderer) sphere(cv *canvas, v view, n graph.Node, world astro.Affine, look scene.Appearance, sun astro.Vec3, emissive bool) {
	center := world.Origin()
	scale := n.Scale
	if scale == 0 {
		scale = 1
	}
	radius := n.Radius * scale
	sx, sy, depth, ok := v.project(center)
	if !ok || radius <= 0 {
		return
	}
	rx, ry := v.radii(radius, depth)

	if rx < 0.6 && ry < 0.6 {
		shade := 1.0
		if !emissive {
			toSun := sun.Sub(center).Normalized()
			shade = math.Max(0.5, r.Ambient+(1-r.Ambient)*math.Max(0, v.Forward.Scale(-1).Dot(toSun)))
		}
		cv.plot(int(sx), int(sy), dotGlyph(n.Kind), r.fog(scaleColor(look.Tint, shade), depth), depth)
		return
	}

	inv := world.M.Transpose()
	x0, x1 := int(math.Floor(sx-rx)), int(math.Ceil(sx+rx))
	y0, y1 := int(math.Floor(sy-ry)), int(math.Ceil(sy+ry))
	for y := max(y0, 0); y <= min(y1, cv.h-1); y++ {
		dy := (float64(y) + 0.5 - sy) / ry
		for x := max(x0, 0); x <= min(x1, cv.w-1); x++ {
			dx := (float64(x) + 0.5 - sx) / rx
			rr := dx*dx + dy*dy
			if rr > 1 {
				continue
			}
			dz := math.Sqrt(1 - rr)
			normal := v.Right.Scale(dx).Add(v.Up.Scale(-dy)).Add(v.Forward.Scale(-dz))

			base := look.Tint
			if look.Textured {
				u, t := sphereUV(inv.Apply(normal).Normalized())
				base = look.Surface.At(u, t)
			}
			shade := 1.0
			if !emissive {
				toSun := sun.Sub(center.Add(normal.Scale(radius))).Normalized()
				shade = r.Ambient + (1-r.Ambient)*math.Max(0, normal.Dot(toSun))
			}
			d := depth - dz*radius
			cv.plot(x, y, rampGlyph(shade), r.fog(scaleColor(base, shade), d), d)
		}
	}
}

// sphereUV maps a local unit normal to equirectangular texture coordinates
// with v = 0 at the north pole.
func sphereUV(n astro.Vec3) (u, v float64) {
	theta := math.Acos(math.Max(-1, math.Min(1, n.Y)))
	phi := math.Atan2(n.Z, -n.X)
	if phi < 0 {
		phi += astro.TwoPi
	}
	return phi / astro.TwoPi, theta / math.Pi
}

// annulus traces a flat ring lying in the node's local XY plane over
// `bands` radii between InnerRadius and Radius.
func (r Renderer) annulus(cv *canvas, v view, n graph.Node, world astro.Affine, look scene.Appearance, ch rune, bands int) {
	_, _, depth, ok := v.project(world.Origin())
	if !ok {
		depth = n.Radius
	}
	rx, ry := v.radii(n.Radius, math.Max(depth, v.Camera.Near))
	steps := int(math.Max(rx, ry) * 2 * math.Pi * 1.5)
	steps = max(24, min(steps, 1440))

	col := scaleColor(look.Tint, 0.2+0.8*look.Opacity)
	for b := 0; b < bands; b++ {
		rad := n.Radius
		if bands > 1 {
			rad = n.InnerRadius + (n.Radius-n.InnerRadius)*float64(b)/float64(bands-1)
		} else if n.InnerRadius > 0 {
			rad = (n.InnerRadius + n.Radius) / 2
		}
		for i := 0; i < steps; i++ {
			a := float64(i) / float64(steps) * astro.TwoPi
			p := world.Apply(astro.Vec3{X: rad * math.Cos(a), Y: rad * math.Sin(a)})
			sx, sy, d, ok := v.project(p)
			if !ok {
				continue
			}
			cv.plot(int(sx), int(sy), ch, r.fog(col, d), d)
		}
	}
}

// glowSprite draws the sun's halo behind it, sampled from the glow texture.
func (r Renderer) glowSprite(cv *canvas, v view, center astro.Vec3, size, radius float64) {
	if size <= 0 {
		return
	}
	sx, sy, depth, ok := v.project(center)
	if !ok {
		return
	}
	rx, ry := v.radii(size/2, depth)
	d := depth + radius
	for y := max(int(sy-ry), 0); y <= min(int(sy+ry), cv.h-1); y++ {
		ny := (float64(y) + 0.5 - sy) / ry
		for x := max(int(sx-rx), 0); x <= min(int(sx+rx), cv.w-1); x++ {
			nx := (float64(x) + 0.5 - sx) / rx
			if nx*nx+ny*ny >= 1 {
				continue
			}
			c := r.glow.At((nx+1)/2, (ny+1)/2)
			l := math.Max(c.R, math.Max(c.G, c.B))
			if l < 0.08 {
				continue
			}
			cv.plot(x, y, rampGlyph(l*0.7), r.fog(c, d), d)
		}
	}
}

// trail draws the comet's recent positions, fading with age.
func (r Renderer) trail(cv *canvas, v view, n graph.Node, look scene.Appearance) {
	for i, p := range n.Trail {
		sx, sy, d, ok := v.project(p)
		if !ok {
			continue
		}
		fade := 1 - float64(i)/float64(len(n.Trail))
		cv.plot(int(sx), int(sy), '·', r.fog(scaleColor(look.Tint, 0.2+0.6*fade), d), d+0.01)
	}
}

func rampGlyph(shade float64) rune {
	i := int(shade * float64(len(shadeRamp)))
	return shadeRamp[max(0, min(i, len(shadeRamp)-1))]
}

func dotGlyph(k graph.Kind) rune {
	switch k {
	case graph.KindSun:
		return '☉'
	case graph.KindBody:
		return '●'
	case graph.KindSatellite:
		return '•'
	case graph.KindComet:
		return '✦'
	default:
		return '·'
	}
}

func scaleColor(c colorful.Color, f float64) colorful.Color {
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}
}
