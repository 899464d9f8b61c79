package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Average returns the mean color of img, weighted by alpha.
func Average(img image.Image) colorful.Color {
	b := img.Bounds()
	var r, g, bl, wsum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			a := float64(c.A) / 255
			r += float64(c.R) / 255 * a
			g += float64(c.G) / 255 * a
			bl += float64(c.B) / 255 * a
			wsum += a
		}
	}
	if wsum == 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: r / wsum, G: g / wsum, B: bl / wsum}
}

// Thumbnail downsamples img to w×h with bilinear filtering.
func Thumbnail(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Map samples a texture wrapped around a sphere.
type Map struct {
	img  *image.RGBA
	w, h int
}

// NewMap prepares img for sampling at roughly w×h resolution.
func NewMap(img image.Image, w, h int) Map {
	t := Thumbnail(img, w, h)
	return Map{img: t, w: t.Bounds().Dx(), h: t.Bounds().Dy()}
}

// At returns the texel at longitude u and latitude v, both in [0, 1).
// u wraps; v is clamped.
func (m Map) At(u, v float64) colorful.Color {
	if m.img == nil {
		return colorful.Color{}
	}
	u -= math.Floor(u)
	x := int(u * float64(m.w))
	y := int(math.Max(0, math.Min(0.999999, v)) * float64(m.h))
	c := m.img.RGBAAt(min(x, m.w-1), y)
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
