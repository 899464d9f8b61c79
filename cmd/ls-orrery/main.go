// Command ls-orrery is an animated solar-system orrery for the terminal.
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "ls-orrery",
	Short:         "Animated solar-system orrery for the terminal",
	Long:          "ls-orrery draws the sun, its planets, moons, an asteroid belt and a comet in a full-screen terminal view you can orbit, inspect and tour.",
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .ls-orrery.yaml or .ls-orrery.toml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "write logs to this file (TUI logs are discarded otherwise)")
	pf.String("bodies", "", "TOML body catalogue (default built-in)")
	pf.Uint64("seed", 0, "random seed for textures, belt and stars (0 picks one)")

	_ = viper.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log_file", pf.Lookup("log-file"))
	_ = viper.BindPFlag("bodies_file", pf.Lookup("bodies"))
	_ = viper.BindPFlag("seed", pf.Lookup("seed"))

	f := rootCmd.Flags()
	f.Int("fps", 30, "frames per second")
	f.Bool("watch", false, "reload the body catalogue when it changes")
	f.Bool("no-audio", false, "disable the soundtrack")
	f.String("track", "", "MP3 soundtrack (default a synthesized drone)")
	_ = viper.BindPFlag("fps", f.Lookup("fps"))
	_ = viper.BindPFlag("watch", f.Lookup("watch"))
	_ = viper.BindPFlag("audio.track", f.Lookup("track"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".ls-orrery")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv(viper.GetViper())

	// A missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

// loadConfig reads the merged configuration.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// newLogger returns a logger at the configured level writing to w.
func newLogger(cfg config.Config, w io.Writer) *logging.Logger {
	log := logging.New(cfg.Level())
	log.SetOutput(w)
	return log
}

// loadRegistry returns the catalogue at path, or the built-in one.
func loadRegistry(path string) (body.Registry, error) {
	if path == "" {
		return body.Default(), nil
	}
	reg, err := body.Load(path)
	if err != nil {
		return body.Registry{}, fmt.Errorf("load catalogue: %w", err)
	}
	return reg, nil
}

// newRNG seeds the scene generator. Zero picks a seed from the clock.
func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// buildScene builds the scene for reg with the configured options.
func buildScene(cfg config.Config, reg body.Registry, log *logging.Logger) (*scene.Context, error) {
	ctx, err := scene.Build(reg, cfg.SceneOptions(), newRNG(cfg.Seed), log.With("scene"))
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	return ctx, nil
}
