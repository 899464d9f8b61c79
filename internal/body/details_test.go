package body

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	reg := Default()

	tests := []struct {
		name     string
		wantType string
		wantDiam string
		wantDist string
		wantSpd  string
		wantSats string
	}{
		{"MERCURY", "ROCKY PLANET", "6,000 km", "70 Million Km", "40.0 km/s", NoMoons},
		{"VENUS", "ROCKY PLANET", "11,000 km", "100 Million Km", "15.0 km/s", NoMoons},
		{"EARTH", "EARTH PLANET", "12,000 km", "140 Million Km", "10.0 km/s", "Moon"},
		{"MARS", "ROCKY PLANET", "9,000 km", "180 Million Km", "8.0 km/s", "Phobos, Deimos"},
		{"JUPITER", "GAS PLANET", "36,000 km", "300 Million Km", "4.0 km/s", "Io, Europa, Ganymede, Callisto"},
		{"NEPTUNE", "GAS PLANET", "19,000 km", "600 Million Km", "1.8 km/s", "Triton"},
		{"CERES", "ROCKY PLANET", "3,000 km", "240 Million Km", "7.0 km/s", NoMoons},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := reg.Find(tt.name)
			require.True(t, ok, "%s not in default registry", tt.name)

			got := Describe(d)
			assert.Equal(t, tt.name, got.Name)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, "CALCULATING...", got.Temperature)
			assert.Equal(t, tt.wantDiam, got.Diameter)
			assert.Equal(t, tt.wantDist, got.Distance)
			assert.Equal(t, tt.wantSpd, got.Speed)
			assert.Equal(t, tt.wantSats, got.SatelliteLine())
			assert.Equal(t, d.Description, got.Description)
		})
	}
}
