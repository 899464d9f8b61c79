package scene

import "github.com/litescript/ls-orrery/internal/astro"

// Options holds every tunable used while building a scene.
type Options struct {
	// SpinRate is each body's own-axis rotation per tick.
	SpinRate float64
	// A satellite's pivot turns SatelliteRate / distance × SatelliteFactor
	// per tick.
	SatelliteRate   float64
	SatelliteFactor float64

	// MapWidth and MapHeight size the downsampled texture used when
	// shading body surfaces.
	MapWidth  int
	MapHeight int

	// GlowSize is the diameter of the sun's glow sprite in scene units.
	GlowSize float64

	Belt   BeltOptions
	Comet  CometOptions
	Stars  StarOptions
	Camera CameraOptions
}

// BeltOptions shape the asteroid belt.
type BeltOptions struct {
	Count     int
	Inner     float64
	Width     float64
	Height    float64
	MinScale  float64
	ScaleSpan float64
	Rate      float64
}

// CometOptions shape the comet's path and trail.
type CometOptions struct {
	SemiX   float64
	SemiZ   float64
	OffsetX float64
	Lift    float64
	Rate    float64
	Radius  float64
	Trail   int
}

// StarOptions shape the background starfield.
type StarOptions struct {
	Count  int
	Spread float64
}

// CameraOptions set the initial camera.
type CameraOptions struct {
	Position    astro.Vec3
	FovYDeg     float64
	Far         float64
	MaxDistance float64
}

// DefaultOptions returns the stock scene.
func DefaultOptions() Options {
	return Options{
		SpinRate:        0.02,
		SatelliteRate:   0.05,
		SatelliteFactor: 10,
		MapWidth:        64,
		MapHeight:       32,
		GlowSize:        220,
		Belt: BeltOptions{
			Count:     5000,
			Inner:     220,
			Width:     60,
			Height:    20,
			MinScale:  0.5,
			ScaleSpan: 2,
			Rate:      0.0005,
		},
		Comet: CometOptions{
			SemiX:   150,
			SemiZ:   400,
			OffsetX: 50,
			Lift:    0.1,
			Rate:    0.008,
			Radius:  1,
			Trail:   50,
		},
		Stars: StarOptions{
			Count:  astro.DefaultStarCount,
			Spread: astro.DefaultStarSpread,
		},
		Camera: CameraOptions{
			Position:    astro.Vec3{Y: 400, Z: 600},
			FovYDeg:     60,
			Far:         20000,
			MaxDistance: 5000,
		},
	}
}
