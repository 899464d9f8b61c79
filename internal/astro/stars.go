package astro

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Star is one background point of the starfield.
type Star struct {
	Pos   Vec3
	Color colorful.Color
}

// StarCatalog holds the generated starfield.
type StarCatalog struct {
	Stars []Star
}

// Starfield defaults.
const (
	DefaultStarCount  = 10000
	DefaultStarSpread = 10000.0
)

// GenerateStarfield scatters count stars uniformly in a cube of edge spread
// centred on the origin. Each star gets a random hue at saturation 0.8 and
// lightness 0.8.
func GenerateStarfield(rng *rand.Rand, count int, spread float64) StarCatalog {
	if count < 0 {
		count = 0
	}
	stars := make([]Star, count)
	for i := range stars {
		stars[i] = Star{
			Pos: Vec3{
				X: (rng.Float64() - 0.5) * spread,
				Y: (rng.Float64() - 0.5) * spread,
				Z: (rng.Float64() - 0.5) * spread,
			},
			Color: colorful.Hsl(rng.Float64()*360, 0.8, 0.8),
		}
	}
	return StarCatalog{Stars: stars}
}
