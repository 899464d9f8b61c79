// Package config loads runtime settings through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/tour"
)

// EnvPrefix is prepended to every environment override, e.g.
// ORRERY_BELT_COUNT.
const EnvPrefix = "ORRERY"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// AnimationConfig holds per-tick animation rates.
type AnimationConfig struct {
	SpinRate        float64 `mapstructure:"spin_rate"`
	SatelliteRate   float64 `mapstructure:"satellite_rate"`
	SatelliteFactor float64 `mapstructure:"satellite_factor"`
}

// BeltConfig shapes the asteroid belt.
type BeltConfig struct {
	Count  int     `mapstructure:"count"`
	Inner  float64 `mapstructure:"inner"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	Rate   float64 `mapstructure:"rate"`
}

// CometConfig shapes the comet.
type CometConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	SemiX   float64 `mapstructure:"semi_x"`
	SemiZ   float64 `mapstructure:"semi_z"`
	OffsetX float64 `mapstructure:"offset_x"`
	Rate    float64 `mapstructure:"rate"`
	Trail   int     `mapstructure:"trail"`
}

// StarsConfig shapes the background starfield.
type StarsConfig struct {
	Count  int     `mapstructure:"count"`
	Spread float64 `mapstructure:"spread"`
}

// TourConfig paces the cinematic tour.
type TourConfig struct {
	Rate  float64 `mapstructure:"rate"`
	Dwell float64 `mapstructure:"dwell"`
	Lerp  float64 `mapstructure:"lerp"`
}

// CameraConfig sets the initial camera.
type CameraConfig struct {
	X           float64 `mapstructure:"x"`
	Y           float64 `mapstructure:"y"`
	Z           float64 `mapstructure:"z"`
	FOV         float64 `mapstructure:"fov"`
	MaxDistance float64 `mapstructure:"max_distance"`
}

// AudioConfig controls the soundtrack.
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Track   string  `mapstructure:"track"`
	Volume  float64 `mapstructure:"volume"`
}

// Config holds all runtime configuration for an orrery session.
// Values are populated from .ls-orrery.{yaml,toml}, ORRERY_* env vars and
// CLI flags.
type Config struct {
	LogLevel      string  `mapstructure:"log_level"`
	LogFile       string  `mapstructure:"log_file"`
	FPS           int     `mapstructure:"fps"`
	Seed          uint64  `mapstructure:"seed"`
	BodiesFile    string  `mapstructure:"bodies_file"`
	Watch         bool    `mapstructure:"watch"`
	TimeScale     float64 `mapstructure:"time_scale"`
	MaxTimeScale  float64 `mapstructure:"max_time_scale"`
	TimeScaleStep float64 `mapstructure:"time_scale_step"`

	Animation AnimationConfig `mapstructure:"animation"`
	Belt      BeltConfig      `mapstructure:"belt"`
	Comet     CometConfig     `mapstructure:"comet"`
	Stars     StarsConfig     `mapstructure:"stars"`
	Tour      TourConfig      `mapstructure:"tour"`
	Camera    CameraConfig    `mapstructure:"camera"`
	Audio     AudioConfig     `mapstructure:"audio"`
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	so := scene.DefaultOptions()
	to := tour.DefaultOptions()
	sc := state.DefaultConfig()
	ac := audio.DefaultConfig()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("fps", 30)
	v.SetDefault("seed", 0)
	v.SetDefault("bodies_file", "")
	v.SetDefault("watch", false)
	v.SetDefault("time_scale", sc.TimeScale)
	v.SetDefault("max_time_scale", sc.MaxTimeScale)
	v.SetDefault("time_scale_step", sc.Step)

	v.SetDefault("animation.spin_rate", so.SpinRate)
	v.SetDefault("animation.satellite_rate", so.SatelliteRate)
	v.SetDefault("animation.satellite_factor", so.SatelliteFactor)

	v.SetDefault("belt.count", so.Belt.Count)
	v.SetDefault("belt.inner", so.Belt.Inner)
	v.SetDefault("belt.width", so.Belt.Width)
	v.SetDefault("belt.height", so.Belt.Height)
	v.SetDefault("belt.rate", so.Belt.Rate)

	v.SetDefault("comet.enabled", true)
	v.SetDefault("comet.semi_x", so.Comet.SemiX)
	v.SetDefault("comet.semi_z", so.Comet.SemiZ)
	v.SetDefault("comet.offset_x", so.Comet.OffsetX)
	v.SetDefault("comet.rate", so.Comet.Rate)
	v.SetDefault("comet.trail", so.Comet.Trail)

	v.SetDefault("stars.count", so.Stars.Count)
	v.SetDefault("stars.spread", so.Stars.Spread)

	v.SetDefault("tour.rate", to.Rate)
	v.SetDefault("tour.dwell", to.Dwell)
	v.SetDefault("tour.lerp", to.Lerp)

	v.SetDefault("camera.x", so.Camera.Position.X)
	v.SetDefault("camera.y", so.Camera.Position.Y)
	v.SetDefault("camera.z", so.Camera.Position.Z)
	v.SetDefault("camera.fov", so.Camera.FovYDeg)
	v.SetDefault("camera.max_distance", so.Camera.MaxDistance)

	v.SetDefault("audio.enabled", ac.Enabled)
	v.SetDefault("audio.track", ac.Track)
	v.SetDefault("audio.volume", ac.Volume)
}

// BindEnv makes ORRERY_* variables override keys, with dots in nested keys
// spelled as underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load against a specific viper instance.
func LoadFrom(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	if c.FPS < 1 || c.FPS > 120 {
		bad("fps %d outside 1..120", c.FPS)
	}
	if c.MaxTimeScale <= 0 {
		bad("max_time_scale must be positive")
	}
	if c.TimeScale < 0 || c.TimeScale > c.MaxTimeScale {
		bad("time_scale %g outside 0..%g", c.TimeScale, c.MaxTimeScale)
	}
	if c.TimeScaleStep <= 0 {
		bad("time_scale_step must be positive")
	}
	if c.Belt.Count < 0 {
		bad("belt.count must not be negative")
	}
	if c.Comet.Trail < 0 {
		bad("comet.trail must not be negative")
	}
	if c.Stars.Count < 0 {
		bad("stars.count must not be negative")
	}
	if c.Tour.Dwell <= 0 {
		bad("tour.dwell must be positive")
	}
	if c.Tour.Lerp <= 0 || c.Tour.Lerp > 1 {
		bad("tour.lerp %g outside (0, 1]", c.Tour.Lerp)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		bad("camera.fov %g outside (0, 180)", c.Camera.FOV)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		bad("audio.volume %g outside 0..1", c.Audio.Volume)
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// SceneOptions maps the config onto scene build options.
func (c Config) SceneOptions() scene.Options {
	o := scene.DefaultOptions()
	o.SpinRate = c.Animation.SpinRate
	o.SatelliteRate = c.Animation.SatelliteRate
	o.SatelliteFactor = c.Animation.SatelliteFactor

	o.Belt.Count = c.Belt.Count
	o.Belt.Inner = c.Belt.Inner
	o.Belt.Width = c.Belt.Width
	o.Belt.Height = c.Belt.Height
	o.Belt.Rate = c.Belt.Rate

	if c.Comet.Enabled {
		o.Comet.SemiX = c.Comet.SemiX
		o.Comet.SemiZ = c.Comet.SemiZ
		o.Comet.OffsetX = c.Comet.OffsetX
		o.Comet.Rate = c.Comet.Rate
		o.Comet.Trail = c.Comet.Trail
	} else {
		o.Comet = scene.CometOptions{}
	}

	o.Stars.Count = c.Stars.Count
	o.Stars.Spread = c.Stars.Spread

	o.Camera.Position = astro.Vec3{X: c.Camera.X, Y: c.Camera.Y, Z: c.Camera.Z}
	o.Camera.FovYDeg = c.Camera.FOV
	o.Camera.MaxDistance = c.Camera.MaxDistance
	return o
}

// TourOptions maps the config onto tour pacing.
func (c Config) TourOptions() tour.Options {
	o := tour.DefaultOptions()
	o.Rate = c.Tour.Rate
	o.Dwell = c.Tour.Dwell
	o.Lerp = c.Tour.Lerp
	return o
}

// StateConfig maps the config onto the session state manager.
func (c Config) StateConfig() state.Config {
	sc := state.DefaultConfig()
	sc.TimeScale = c.TimeScale
	sc.MaxTimeScale = c.MaxTimeScale
	sc.Step = c.TimeScaleStep
	return sc
}

// AudioConfig maps the config onto the soundtrack player.
func (c Config) AudioConfig() audio.Config {
	return audio.Config{
		Enabled: c.Audio.Enabled,
		Track:   c.Audio.Track,
		Volume:  c.Audio.Volume,
	}
}
