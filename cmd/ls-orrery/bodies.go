package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/body"
)

var bodiesCmd = &cobra.Command{
	Use:   "bodies",
	Short: "List the body catalogue",
	Long: `Prints the catalogue in use: the built-in one, or --bodies when given.

With --toml the catalogue is written in the file format --bodies reads, which
is a convenient starting point for a custom catalogue.`,
	RunE: runBodies,
}

func init() {
	bodiesCmd.Flags().Bool("toml", false, "write the catalogue as TOML")
	rootCmd.AddCommand(bodiesCmd)
}

func runBodies(cmd *cobra.Command, _ []string) error {
	asTOML, _ := cmd.Flags().GetBool("toml")

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

	if asTOML {
		if err := body.WriteTOML(cmd.OutOrStdout(), reg); err != nil {
			return fmt.Errorf("bodies: write TOML: %w", err)
		}
		return nil
	}
	writeBodiesTable(cmd.OutOrStdout(), reg)
	return nil
}

func writeBodiesTable(w io.Writer, reg body.Registry) {
	fmt.Fprintf(w, "%s (%s), radius %g\n", reg.Sun.Name, body.SunSurface.Label(), reg.Sun.Radius)
	fmt.Fprintln(w, strings.Repeat("─", 96))
	fmt.Fprintf(w, "%-10s %-14s %-10s %-18s %-11s %s\n",
		"Name", "Type", "Diameter", "Distance", "Speed", "Satellites")
	fmt.Fprintln(w, strings.Repeat("─", 96))
	for _, d := range reg.Bodies {
		det := body.Describe(d)
		ring := ""
		if d.Ring {
			ring = " (ringed)"
		}
		fmt.Fprintf(w, "%-10s %-14s %-10s %-18s %-11s %s%s\n",
			det.Name, det.Type, det.Diameter, det.Distance, det.Speed, det.SatelliteLine(), ring)
	}
	fmt.Fprintf(w, "\nTotal: %d bodies, %d satellites\n", len(reg.Bodies), reg.SatelliteCount())
}
