package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/version"
)

// Layout rows outside the canvas.
const (
	headerRows = 1
	hudRows    = 2
)

// Time-scale slider geometry on the HUD row.
const (
	sliderPrefix = "  Time "
	sliderCells  = 20
)

var (
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	sliderOn     = lipgloss.NewStyle().Foreground(lipgloss.Color("#D946EF"))
	sliderOff    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	tourStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	tooltipColor = colorful.Color{R: 0.9, G: 0.9, B: 1}

	footerKey  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF")).Bold(true)
	footerDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	footerSep  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Title gradient: blue -> purple -> magenta -> pink.
var titleStops = []colorful.Color{
	{R: 59.0 / 255, G: 130.0 / 255, B: 246.0 / 255},
	{R: 139.0 / 255, G: 92.0 / 255, B: 246.0 / 255},
	{R: 217.0 / 255, G: 70.0 / 255, B: 239.0 / 255},
	{R: 236.0 / 255, G: 72.0 / 255, B: 153.0 / 255},
}

// gradientColor returns a hex color at position col of width along the
// title gradient.
func gradientColor(col, width int) string {
	if width < 2 {
		return titleStops[0].Hex()
	}
	t := float64(col) / float64(width-1) * float64(len(titleStops)-1)
	i := min(int(t), len(titleStops)-2)
	return titleStops[i].BlendRgb(titleStops[i+1], t-float64(i)).Clamped().Hex()
}

func renderTitle(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(i, len(runes)))).Bold(true).Render(string(r)))
	}
	return b.String()
}

// renderHeader shows the title on the left and the simulated date on the
// right.
func renderHeader(width int, date string) string {
	left := "  " + renderTitle("LS-ORRERY") + dimStyle.Render(" v"+version.Version)
	right := valueStyle.Render(date) + "  "
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderSlider draws the time-scale bar for ts in [0, maxTS].
func renderSlider(ts, maxTS float64) string {
	thumb := 0
	if maxTS > 0 {
		thumb = int(math.Round(ts / maxTS * float64(sliderCells-1)))
	}
	thumb = max(0, min(thumb, sliderCells-1))
	var b strings.Builder
	b.WriteString(dimStyle.Render("["))
	b.WriteString(sliderOn.Render(strings.Repeat("━", thumb)))
	b.WriteString(accentStyle.Render("●"))
	b.WriteString(sliderOff.Render(strings.Repeat("─", sliderCells-1-thumb)))
	b.WriteString(dimStyle.Render("]"))
	return b.String()
}

// sliderValue maps a click at column x on the HUD row to a time scale.
func sliderValue(x int, maxTS float64) (float64, bool) {
	start := len(sliderPrefix) + 1
	if x < start || x >= start+sliderCells {
		return 0, false
	}
	return float64(x-start) / float64(sliderCells-1) * maxTS, true
}

// renderHUD shows the slider, tour status and the hovered body.
func renderHUD(width int, ts, maxTS float64, tour, hovered string) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(sliderPrefix))
	b.WriteString(renderSlider(ts, maxTS))
	b.WriteString(valueStyle.Render(fmt.Sprintf(" %.2fx", ts)))
	b.WriteString(dimStyle.Render("   Tour: "))
	if tour != "" {
		b.WriteString(tourStyle.Render("▶ " + tour))
	} else {
		b.WriteString(dimStyle.Render("off"))
	}
	if hovered != "" {
		b.WriteString(dimStyle.Render("   ◆ "))
		b.WriteString(valueStyle.Render(hovered))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

// renderFooter renders keybinding hints on one line.
func renderFooter(width int, bindings []key.Binding) string {
	var parts []string
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		h := kb.Help()
		parts = append(parts, footerKey.Render(h.Key)+footerSep.Render(":")+footerDesc.Render(h.Desc))
	}
	line := "  " + strings.Join(parts, footerSep.Render("  "))
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
