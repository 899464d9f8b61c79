package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/texture"
)

var texturesCmd = &cobra.Command{
	Use:   "textures",
	Short: "Write every body's procedural surface texture as PNG",
	Long: `Synthesizes the surface texture of the sun and each catalogue body with the
configured seed and writes them to --out, one <name>.png per body, plus
glow.png for the sun's halo.`,
	RunE: runTextures,
}

func init() {
	texturesCmd.Flags().String("out", "textures", "output directory")
	rootCmd.AddCommand(texturesCmd)
}

func runTextures(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("out")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg.BodiesFile)
	if err != nil {
		return err
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("catalogue: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("textures: %w", err)
	}

	rng := newRNG(cfg.Seed)
	type job struct {
		name   string
		class  body.SurfaceClass
		colorA string
		colorB string
	}
	jobs := []job{{reg.Sun.Name, body.SunSurface, reg.Sun.ColorA, reg.Sun.ColorB}}
	for _, d := range reg.Bodies {
		jobs = append(jobs, job{d.Name, d.Class, d.ColorA, d.ColorB})
	}

	for _, j := range jobs {
		a, err := body.ParseColor(j.colorA)
		if err != nil {
			return fmt.Errorf("textures: %s: %w", j.name, err)
		}
		b, err := body.ParseColor(j.colorB)
		if err != nil {
			return fmt.Errorf("textures: %s: %w", j.name, err)
		}
		path := filepath.Join(dir, strings.ToLower(j.name)+".png")
		if err := writePNG(path, texture.Synthesize(j.class, a, b, rng)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	glow := filepath.Join(dir, "glow.png")
	if err := writePNG(glow, texture.Glow(128)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), glow)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("textures: create %s: %w", path, err)
	}
	if err := texture.WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("textures: encode %s: %w", path, err)
	}
	return f.Close()
}
