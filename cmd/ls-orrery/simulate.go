package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Advance the orrery without a terminal UI and print the result",
	Long: `Builds the scene, runs the animation for --ticks frames at --time-scale
and prints every body's pose as a table, or as JSON with --json.

With --every N a table (or JSON document) is printed every N ticks.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Int("ticks", 300, "frames to simulate")
	simulateCmd.Flags().Float64("time-scale", -1, "time scale (default from config)")
	simulateCmd.Flags().Bool("json", false, "print JSON instead of a table")
	simulateCmd.Flags().Int("every", 0, "also print every N ticks")
	simulateCmd.Flags().String("out", "-", "output file (- for stdout)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ticks, _ := cmd.Flags().GetInt("ticks")
	ts, _ := cmd.Flags().GetFloat64("time-scale")
	asJSON, _ := cmd.Flags().GetBool("json")
	every, _ := cmd.Flags().GetInt("every")
	outPath, _ := cmd.Flags().GetString("out")

	if ticks < 0 {
		return fmt.Errorf("simulate: --ticks must not be negative")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, cmd.ErrOrStderr())

	reg, err := loadRegistry(cfg.BodiesFile)
	if err != nil {
		return err
	}
	ctx, err := buildScene(cfg, reg, log)
	if err != nil {
		return err
	}

	st := state.NewManager(cfg.StateConfig())
	if ts >= 0 {
		st.SetTimeScale(ts)
	}

	w := cmd.OutOrStdout()
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("simulate: create %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}

	write := func() error {
		e := scene.Export{
			TimeScale: st.TimeScale(),
			Days:      st.Days(),
			Date:      st.DateLabel(),
			Scene:     ctx.Snapshot(),
		}
		if asJSON {
			if err := e.WriteJSON(w); err != nil {
				return fmt.Errorf("simulate: write JSON: %w", err)
			}
			return nil
		}
		e.WriteSummaryTable(w)
		return nil
	}

	for i := 1; i <= ticks; i++ {
		ctx.Tick(st.TimeScale())
		st.Advance()
		if every > 0 && i%every == 0 && i != ticks {
			if err := write(); err != nil {
				return err
			}
			if !asJSON {
				fmt.Fprintln(w)
			}
		}
	}
	log.Debug("simulated %d ticks at %.2fx", ticks, st.TimeScale())
	return write()
}
