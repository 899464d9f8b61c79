// Package body holds the declarative catalogue of celestial bodies shown in
// the orrery: the built-in registry, validation, TOML catalogue files and the
// formatting used by the detail panel.
package body

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidDescriptor is wrapped by every validation failure.
var ErrInvalidDescriptor = errors.New("invalid body descriptor")

// SurfaceClass names the procedural texture recipe for a body.
type SurfaceClass string

const (
	Rocky      SurfaceClass = "rocky"
	Gas        SurfaceClass = "gas"
	SunSurface SurfaceClass = "sun"
	WaterWorld SurfaceClass = "water-world"
)

// ParseSurfaceClass normalizes a catalogue class name. "earth" is accepted
// as an alias for water-world. ok is false for unknown names.
func ParseSurfaceClass(s string) (SurfaceClass, bool) {
	c := SurfaceClass(strings.ToLower(strings.TrimSpace(s)))
	if c == "earth" {
		c = WaterWorld
	}
	return c, c.Valid()
}

// Valid reports whether c is one of the known classes.
func (c SurfaceClass) Valid() bool {
	switch c {
	case Rocky, Gas, SunSurface, WaterWorld:
		return true
	}
	return false
}

// Label is the upper-case class word shown in the detail panel.
func (c SurfaceClass) Label() string {
	if c == WaterWorld {
		return "EARTH"
	}
	return strings.ToUpper(string(c))
}

// UnmarshalText accepts any name, applying the alias. Membership is checked
// by Validate so that every problem in a catalogue is reported at once.
func (c *SurfaceClass) UnmarshalText(text []byte) error {
	parsed, _ := ParseSurfaceClass(string(text))
	*c = parsed
	return nil
}

// Satellite is a moon orbiting a primary body.
type Satellite struct {
	Name     string  `toml:"name" json:"name"`
	Radius   float64 `toml:"radius" json:"radius"`
	Distance float64 `toml:"distance" json:"distance"`
}

// Descriptor describes one orbiting primary body. Values are in scene units;
// Speed is radians per tick at time scale 1.
type Descriptor struct {
	Name        string       `toml:"name" json:"name"`
	Radius      float64      `toml:"radius" json:"radius"`
	Distance    float64      `toml:"distance" json:"distance"`
	Speed       float64      `toml:"speed" json:"speed"`
	Class       SurfaceClass `toml:"class" json:"class"`
	ColorA      string       `toml:"color_a" json:"color_a"`
	ColorB      string       `toml:"color_b" json:"color_b"`
	Description string       `toml:"description" json:"description"`
	Ring        bool         `toml:"ring,omitempty" json:"ring,omitempty"`
	Satellites  []Satellite  `toml:"satellites,omitempty" json:"satellites,omitempty"`
}

// Star describes the central star. It has no orbit and is not pickable.
type Star struct {
	Name   string  `toml:"name" json:"name"`
	Radius float64 `toml:"radius" json:"radius"`
	ColorA string  `toml:"color_a" json:"color_a"`
	ColorB string  `toml:"color_b" json:"color_b"`
}

// Registry is the full catalogue: one star and its orbiting bodies in
// display order.
type Registry struct {
	Sun    Star         `toml:"sun" json:"sun"`
	Bodies []Descriptor `toml:"bodies" json:"bodies"`
}

// ParseColor parses "#rgb" or "#rrggbb".
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// Validate checks a single descriptor and reports every problem found.
func (d Descriptor) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalidDescriptor, d.label(), fmt.Sprintf(format, args...)))
	}

	if strings.TrimSpace(d.Name) == "" {
		bad("name is empty")
	}
	if !(d.Radius > 0) {
		bad("radius must be > 0, got %v", d.Radius)
	}
	if !(d.Distance > 0) || math.IsInf(d.Distance, 0) {
		bad("distance must be > 0, got %v", d.Distance)
	}
	if math.IsNaN(d.Speed) || math.IsInf(d.Speed, 0) {
		bad("speed must be finite, got %v", d.Speed)
	}
	if !d.Class.Valid() {
		bad("unknown surface class %q", d.Class)
	}
	if _, err := ParseColor(d.ColorA); err != nil {
		bad("color_a: %v", err)
	}
	if _, err := ParseColor(d.ColorB); err != nil {
		bad("color_b: %v", err)
	}
	for i, s := range d.Satellites {
		if strings.TrimSpace(s.Name) == "" {
			bad("satellite %d: name is empty", i)
		}
		if !(s.Radius > 0) {
			bad("satellite %q: radius must be > 0, got %v", s.Name, s.Radius)
		}
		if !(s.Distance > 0) || math.IsInf(s.Distance, 0) {
			bad("satellite %q: distance must be > 0, got %v", s.Name, s.Distance)
		}
	}
	return errors.Join(errs...)
}

func (d Descriptor) label() string {
	if d.Name == "" {
		return "<unnamed>"
	}
	return d.Name
}

// Validate checks the star and every body, including name uniqueness.
func (r Registry) Validate() error {
	var errs []error
	if !(r.Sun.Radius > 0) {
		errs = append(errs, fmt.Errorf("%w: sun: radius must be > 0, got %v", ErrInvalidDescriptor, r.Sun.Radius))
	}
	for _, c := range []string{r.Sun.ColorA, r.Sun.ColorB} {
		if _, err := ParseColor(c); err != nil {
			errs = append(errs, fmt.Errorf("%w: sun: %v", ErrInvalidDescriptor, err))
		}
	}

	seen := make(map[string]bool, len(r.Bodies))
	for _, d := range r.Bodies {
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
		}
		key := strings.ToUpper(d.Name)
		if d.Name != "" && seen[key] {
			errs = append(errs, fmt.Errorf("%w: duplicate body name %q", ErrInvalidDescriptor, d.Name))
		}
		seen[key] = true
	}
	return errors.Join(errs...)
}

// Find returns the body with the given name, ignoring case.
func (r Registry) Find(name string) (Descriptor, bool) {
	for _, d := range r.Bodies {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// SatelliteCount returns the number of satellites across all bodies.
func (r Registry) SatelliteCount() int {
	n := 0
	for _, d := range r.Bodies {
		n += len(d.Satellites)
	}
	return n
}
