package body

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// NoMoons is shown when a body has no satellites.
const NoMoons = "No Moons Detected"

// Details is the formatted content of the detail panel.
type Details struct {
	Name        string
	Type        string
	Temperature string
	Diameter    string
	Distance    string
	Speed       string
	Description string
	Satellites  []string
}

// Describe formats a descriptor for display.
func Describe(d Descriptor) Details {
	moons := make([]string, 0, len(d.Satellites))
	for _, s := range d.Satellites {
		moons = append(moons, s.Name)
	}
	return Details{
		Name:        d.Name,
		Type:        d.Class.Label() + " PLANET",
		Temperature: "CALCULATING...",
		Diameter:    humanize.Comma(int64(math.Round(d.Radius*2*1000))) + " km",
		Distance:    strconv.FormatFloat(d.Distance, 'f', -1, 64) + " Million Km",
		Speed:       fmt.Sprintf("%.1f km/s", d.Speed*1000),
		Description: d.Description,
		Satellites:  moons,
	}
}

// SatelliteLine joins the satellite names, or returns NoMoons.
func (d Details) SatelliteLine() string {
	if len(d.Satellites) == 0 {
		return NoMoons
	}
	return strings.Join(d.Satellites, ", ")
}
