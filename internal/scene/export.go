package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// Export is the JSON-serializable result of a headless run.
type Export struct {
	TimeScale float64  `json:"time_scale"`
	Days      float64  `json:"days"`
	Date      string   `json:"date"`
	Scene     Snapshot `json:"scene"`
}

// WriteJSON writes the export as indented JSON.
func (e Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// SummaryRow is one row of the pose table.
type SummaryRow struct {
	Name   string
	Orbit  float64
	Spin   float64
	X, Z   float64
	Radius float64
	Moons  int
}

// GenerateSummaryRows flattens a snapshot into table rows. Angles are in
// degrees and Radius is the distance from the scene origin.
func GenerateSummaryRows(snap Snapshot) []SummaryRow {
	rows := make([]SummaryRow, 0, len(snap.Bodies))
	for _, b := range snap.Bodies {
		rows = append(rows, SummaryRow{
			Name:   b.Name,
			Orbit:  b.Orbit * 180 / math.Pi,
			Spin:   b.Spin * 180 / math.Pi,
			X:      b.Position.X,
			Z:      b.Position.Z,
			Radius: b.Position.Norm(),
			Moons:  len(b.Satellites),
		})
	}
	return rows
}

// WriteSummaryTable writes a text table of every body's pose.
func (e Export) WriteSummaryTable(w io.Writer) {
	rows := GenerateSummaryRows(e.Scene)

	fmt.Fprintf(w, "Orrery @ %s  (%s ticks at %.2fx)\n", e.Date, humanize.Comma(int64(e.Scene.Ticks)), e.TimeScale)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-12s %9s %9s %10s %10s %10s %5s\n",
		"Body", "Orbit°", "Spin°", "X", "Z", "From sun", "Moons")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, r := range rows {
		fmt.Fprintf(w, "%s %9.2f %9.2f %10.2f %10.2f %10.2f %5d\n",
			padCells(truncateStr(r.Name, 12), 12), r.Orbit, r.Spin, r.X, r.Z, r.Radius, r.Moons)
	}

	if e.Scene.Comet != nil {
		c := *e.Scene.Comet
		fmt.Fprintf(w, "\nComet at (%.2f, %.2f, %.2f)\n", c.X, c.Y, c.Z)
	}
	if e.Scene.Faults > 0 {
		fmt.Fprintf(w, "Animation faults: %s\n", humanize.Comma(int64(e.Scene.Faults)))
	}
	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(rows))
}

// truncateStr shortens s to maxLen terminal cells without splitting runes.
func truncateStr(s string, maxLen int) string {
	if ansi.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}
	return ansi.Truncate(s, maxLen, "..")
}

// padCells right-pads s with spaces to width cells.
func padCells(s string, width int) string {
	if n := width - ansi.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
