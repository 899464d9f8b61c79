package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Tour    key.Binding
	Reset   key.Binding
	Slower  key.Binding
	Faster  key.Binding
	Preset  key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Close   key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tour: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tour"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset view"),
		),
		Slower: key.NewBinding(
			key.WithKeys("[", "-"),
			key.WithHelp("[", "slower"),
		),
		Faster: key.NewBinding(
			key.WithKeys("]", "+", "="),
			key.WithHelp("]", "faster"),
		),
		Preset: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5"),
			key.WithHelp("0-5", "speed"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "orbit"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "orbit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "tilt"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "tilt"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "zoom out"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FooterBindings returns the hints shown in the footer.
func FooterBindings(km KeyMap, panelOpen bool) []key.Binding {
	if panelOpen {
		return []key.Binding{km.Close, km.Tour, km.Reset, km.Slower, km.Faster, km.Quit}
	}
	return []key.Binding{km.Tour, km.Reset, km.Slower, km.Faster, km.Preset, km.Left, km.ZoomIn, km.ZoomOut, km.Quit}
}
