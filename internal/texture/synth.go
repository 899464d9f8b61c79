// Package texture synthesizes procedural surface images for bodies.
package texture

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/litescript/ls-orrery/internal/body"
)

// Size is the edge length of every surface texture.
const Size = 512

// Recipe constants.
const (
	sunFlares     = 100
	sunFlareMaxR  = 50
	landMasses    = 80
	landMinR      = 20
	landSpanR     = 60
	clouds        = 100
	cloudMaxR     = 30
	gasBands      = 20
	gasBandMaxH   = 20
	speckles      = 5000
	speckleSize   = 2
	speckleAlpha  = 0.1
	flareAlpha    = 0.2
	cloudAlpha    = 0.3
	gasBandsAlpha = 0.1
)

var (
	sunBase   = colorful.Color{R: 1, G: 0.8, B: 0}         // #ffcc00
	sunFlare  = colorful.Color{R: 1, G: 100.0 / 255, B: 0} // rgba(255,100,0,.2)
	oceanBase = colorful.Color{R: 0, G: 68.0 / 255, B: 1}  // #0044ff
	landColor = colorful.Color{R: 0, G: 170.0 / 255, B: 51.0 / 255}
	white     = colorful.Color{R: 1, G: 1, B: 1}
	black     = colorful.Color{}
)

// Synthesize draws a Size×Size texture for class from two base colors.
// Unknown classes use the rocky recipe. All randomness comes from rng.
func Synthesize(class body.SurfaceClass, colorA, colorB colorful.Color, rng *rand.Rand) *image.RGBA {
	s := newSurface(Size, Size)
	s.fill(colorA)

	switch class {
	case body.SunSurface:
		s.fill(sunBase)
		for i := 0; i < sunFlares; i++ {
			x, y := s.randPoint(rng)
			s.disk(x, y, rng.Float64()*sunFlareMaxR, withAlpha(sunFlare, flareAlpha))
		}

	case body.WaterWorld:
		s.fill(oceanBase)
		for i := 0; i < landMasses; i++ {
			x, y := s.randPoint(rng)
			s.disk(x, y, rng.Float64()*landSpanR+landMinR, withAlpha(landColor, 1))
		}
		for i := 0; i < clouds; i++ {
			x, y := s.randPoint(rng)
			s.disk(x, y, rng.Float64()*cloudMaxR, withAlpha(white, cloudAlpha))
		}

	case body.Gas:
		s.verticalGradient(colorA, colorB)
		band := withAlpha(black, gasBandsAlpha)
		for i := 0; i < gasBands; i++ {
			y := rng.Float64() * float64(s.h)
			h := rng.Float64() * gasBandMaxH
			s.rect(0, y, float64(s.w), h, band)
		}

	default:
		a, b := withAlpha(colorB, speckleAlpha), withAlpha(black, speckleAlpha)
		for i := 0; i < speckles; i++ {
			c := b
			if rng.Float64() > 0.5 {
				c = a
			}
			x, y := s.randPoint(rng)
			s.rect(x, y, speckleSize, speckleSize, c)
		}
	}
	return s.img
}

// Glow draws the radial sun-glow sprite: warm white at the centre fading
// through translucent orange to transparent at the edge.
func Glow(size int) *image.RGBA {
	if size < 1 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	stops := []struct {
		at float64
		c  colorful.Color
		a  float64
	}{
		{0, colorful.Color{R: 1, G: 220.0 / 255, B: 100.0 / 255}, 1},
		{0.3, colorful.Color{R: 1, G: 150.0 / 255, B: 0}, 0.4},
		{1, black, 0},
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) / c
			if t >= 1 {
				continue
			}
			i := 0
			for i < len(stops)-2 && t > stops[i+1].at {
				i++
			}
			lo, hi := stops[i], stops[i+1]
			f := (t - lo.at) / (hi.at - lo.at)
			img.Set(x, y, withAlpha(lo.c.BlendRgb(hi.c, f), lo.a+(hi.a-lo.a)*f))
		}
	}
	return img
}

// surface wraps the target image and a reusable rasterizer.
type surface struct {
	img  *image.RGBA
	w, h int
	ras  vector.Rasterizer
}

func newSurface(w, h int) *surface {
	return &surface{img: image.NewRGBA(image.Rect(0, 0, w, h)), w: w, h: h}
}

func (s *surface) randPoint(rng *rand.Rand) (float64, float64) {
	x := rng.Float64() * float64(s.w)
	y := rng.Float64() * float64(s.h)
	return x, y
}

func (s *surface) fill(c colorful.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(withAlpha(c, 1)), image.Point{}, draw.Src)
}

// rect composites an axis-aligned rectangle; fractional edges are rounded.
func (s *surface) rect(x, y, w, h float64, c color.Color) {
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// disk composites an anti-aliased filled circle.
func (s *surface) disk(cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r)), int(math.Ceil(cy+r)),
	).Intersect(s.img.Bounds())
	if box.Empty() {
		return
	}

	s.ras.Reset(box.Dx(), box.Dy())
	s.ras.DrawOp = draw.Over

	x, y := float32(cx-float64(box.Min.X)), float32(cy-float64(box.Min.Y))
	rr := float32(r)
	k := float32(kappa) * rr
	s.ras.MoveTo(x+rr, y)
	s.ras.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
	s.ras.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
	s.ras.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
	s.ras.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
	s.ras.ClosePath()
	s.ras.Draw(s.img, box, image.NewUniform(c), image.Point{})
}

// verticalGradient fills top to bottom with a→b→a.
func (s *surface) verticalGradient(a, b colorful.Color) {
	for y := 0; y < s.h; y++ {
		t := (float64(y) + 0.5) / float64(s.h)
		var c colorful.Color
		if t < 0.5 {
			c = a.BlendRgb(b, t*2)
		} else {
			c = b.BlendRgb(a, (t-0.5)*2)
		}
		row := image.Rect(0, y, s.w, y+1)
		draw.Draw(s.img, row, image.NewUniform(withAlpha(c, 1)), image.Point{}, draw.Src)
	}
}

func withAlpha(c colorful.Color, a float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(a) * 255))}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
