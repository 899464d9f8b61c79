package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/body"
)

// Panel widths in cells.
const (
	panelWidth    = 40
	panelMinWidth = 24
)

var (
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7B2CBF")).
			Padding(0, 1)
	panelTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	panelType  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD"))
	panelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(13)
	panelValue = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	panelBody  = lipgloss.NewStyle().Foreground(lipgloss.Color("249"))
	panelHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
)

// DetailPanel shows one body's details in a scrollable box.
type DetailPanel struct {
	viewport viewport.Model
	details  body.Details
	open     bool
	width    int
	height   int
}

// NewDetailPanel creates a closed panel.
func NewDetailPanel() DetailPanel {
	return DetailPanel{viewport: viewport.New(panelWidth-4, 10)}
}

// Open fills the panel with d and shows it.
func (p *DetailPanel) Open(d body.Details) {
	p.details = d
	p.open = true
	p.viewport.SetContent(renderDetails(d, p.viewport.Width))
	p.viewport.GotoTop()
}

// Close hides the panel.
func (p *DetailPanel) Close() { p.open = false }

// IsOpen reports whether the panel is showing.
func (p DetailPanel) IsOpen() bool { return p.open }

// Details returns what the panel is showing.
func (p DetailPanel) Details() body.Details { return p.details }

// SetSize fits the panel to a screen of the given size.
func (p *DetailPanel) SetSize(screenW, screenH int) {
	w := min(panelWidth, max(screenW/2, panelMinWidth))
	p.width = w
	p.height = max(screenH, 5)
	p.viewport.Width = w - 4
	p.viewport.Height = p.height - 2
	if p.open {
		p.viewport.SetContent(renderDetails(p.details, p.viewport.Width))
	}
}

// Width returns the outer width of the panel, zero when closed.
func (p DetailPanel) Width() int {
	if !p.open {
		return 0
	}
	return p.width
}

// Update scrolls the panel.
func (p *DetailPanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the panel, or nothing when closed.
func (p DetailPanel) View() string {
	if !p.open {
		return ""
	}
	return panelBorder.Width(p.width - 2).Height(p.height - 2).Render(p.viewport.View())
}

func renderDetails(d body.Details, width int) string {
	var b strings.Builder
	b.WriteString(panelTitle.Render(d.Name))
	b.WriteString("\n")
	b.WriteString(panelType.Render(d.Type))
	b.WriteString("\n\n")

	rows := []struct{ label, value string }{
		{"Temperature", d.Temperature},
		{"Diameter", d.Diameter},
		{"Distance", d.Distance},
		{"Orbit speed", d.Speed},
		{"Satellites", d.SatelliteLine()},
	}
	for _, r := range rows {
		b.WriteString(panelLabel.Render(r.label))
		b.WriteString(panelValue.Width(max(width-13, 8)).Render(r.value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(panelBody.Width(max(width, 8)).Render(d.Description))
	b.WriteString("\n\n")
	b.WriteString(panelHint.Render("esc to close"))
	return b.String()
}
