package body

import (
	"fmt"
	"io"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Load reads and validates a TOML catalogue file.
//
//	[sun]
//	radius = 35
//
//	[[bodies]]
//	name = "EARTH"
//	class = "earth"
//	...
//	[[bodies.satellites]]
//	name = "Moon"
//
// A file without a [sun] table uses DefaultSun.
func Load(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Registry{}, fmt.Errorf("reading catalogue: %w", err)
	}
	reg, err := Parse(data)
	if err != nil {
		return Registry{}, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes and validates catalogue TOML.
func Parse(data []byte) (Registry, error) {
	var reg Registry
	if err := toml.Unmarshal(data, &reg); err != nil {
		return Registry{}, fmt.Errorf("parsing catalogue: %w", err)
	}
	if reg.Sun == (Star{}) {
		reg.Sun = DefaultSun
	}
	if err := reg.Validate(); err != nil {
		return Registry{}, err
	}
	return reg, nil
}

// WriteTOML encodes a registry in the catalogue file format.
func WriteTOML(w io.Writer, reg Registry) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(reg); err != nil {
		return fmt.Errorf("encoding catalogue: %w", err)
	}
	return nil
}
