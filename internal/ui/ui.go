// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/inspect"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/tour"
)

// cellAspect is the height/width ratio of a terminal cell.
const cellAspect = 2.0

// Camera steps per key press.
const (
	orbitStep = 0.05
	dollyStep = 1.1
)

// Msg types for Bubble Tea
type (
	// FrameMsg advances the simulation by one frame.
	FrameMsg time.Time

	// splashDoneMsg hides the loading splash.
	splashDoneMsg struct{}

	// ReloadMsg carries a scene rebuilt from a changed catalogue.
	ReloadMsg struct {
		Path    string
		Context *scene.Context
		Err     error
	}
)

// Starter is something started on the first pointer press, such as the
// soundtrack.
type Starter interface {
	Start()
}

// Options configure the model.
type Options struct {
	FPS    int
	Tour   tour.Options
	Splash time.Duration
	Audio  Starter
	Log    *logging.Logger
}

// DefaultOptions returns 30 fps with a 1.5 s splash.
func DefaultOptions() Options {
	return Options{FPS: 30, Tour: tour.DefaultOptions(), Splash: 1500 * time.Millisecond}
}

// tooltip is the hovered body label in canvas coordinates.
type tooltip struct {
	x, y    int
	name    string
	visible bool
}

// chrome receives inspector output. It is shared by every copy of Model.
type chrome struct {
	tip    tooltip
	opened *body.Details
}

func (c *chrome) ShowTooltip(x, y int, name string) {
	c.tip = tooltip{x: x, y: y, name: name, visible: true}
}

func (c *chrome) HideTooltip() { c.tip = tooltip{} }

func (c *chrome) OpenPanel(d body.Details) { c.opened = &d }

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	ctx       *scene.Context
	state     *state.Manager
	tour      *tour.Controller
	inspector *inspect.Inspector
	audio     Starter
	log       *logging.Logger

	// UI state
	chrome       *chrome
	renderer     Renderer
	keys         KeyMap
	panel        DetailPanel
	spinner      spinner.Model
	fps          int
	splash       time.Duration
	loading      bool
	audioStarted bool
	width        int
	height       int
	ready        bool
	statusMsg    string
}

// New creates the root model around a built scene.
func New(ctx *scene.Context, st *state.Manager, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	ch := &chrome{}
	m := Model{
		ctx:       ctx,
		state:     st,
		tour:      tour.New(opts.Tour),
		inspector: inspect.New(ctx, ch),
		audio:     opts.Audio,
		log:       opts.Log,
		chrome:    ch,
		renderer:  NewRenderer(),
		keys:      DefaultKeyMap(),
		panel:     NewDetailPanel(),
		spinner:   sp,
		fps:       opts.FPS,
		splash:    opts.Splash,
		loading:   opts.Splash > 0,
	}
	m.watchFaults()
	return m
}

// watchFaults records animation faults of the current scene in the session
// log.
func (m Model) watchFaults() {
	st := m.state
	m.ctx.Scheduler.OnFault(func(f anim.Fault) {
		st.Record(state.Event{Type: state.EventAnimationFault, Detail: f.Error()})
	})
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameCmd(m.fps)}
	if m.loading {
		cmds = append(cmds, m.spinner.Tick, tea.Tick(m.splash, func(time.Time) tea.Msg {
			return splashDoneMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()

	case FrameMsg:
		cmds = append(cmds, frameCmd(m.fps))
		m.frame()

	case splashDoneMsg:
		m.loading = false

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case ReloadMsg:
		m.reload(msg)
	}

	return m, tea.Batch(cmds...)
}

// frame runs one simulation step: animation, calendar, then the tour.
func (m *Model) frame() {
	m.ctx.Tick(m.state.TimeScale())
	m.state.Advance()
	ev := m.tour.Step(&m.ctx.Camera, m.ctx, m.ctx.TourTargets())
	m.recordTour(ev)
}

func (m *Model) recordTour(ev tour.Event) {
	var name string
	if t, ok := m.tour.Current(m.ctx.TourTargets()); ok {
		name = t.Name
	}
	switch ev {
	case tour.Started:
		m.state.Record(state.Event{Type: state.EventTourStarted, Body: name})
	case tour.Stopped:
		m.state.Record(state.Event{Type: state.EventTourStopped})
	case tour.Advanced:
		m.state.Record(state.Event{Type: state.EventTourAdvanced, Body: name})
		m.log.Debug("tour advanced to %s", name)
	case tour.Reset:
		m.state.Record(state.Event{Type: state.EventCameraReset})
	}
}

func (m *Model) canvasHeight() int {
	return max(m.height-headerRows-hudRows, 1)
}

func (m *Model) resize() {
	h := m.canvasHeight()
	m.ctx.Resize(max(m.width, 1), h, cellAspect)
	m.panel.SetSize(m.width, h)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	cam := &m.ctx.Camera
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Close):
		m.panel.Close()
	case key.Matches(msg, m.keys.Tour):
		ev := m.tour.Toggle()
		if ev == tour.Started {
			m.panel.Close()
		}
		m.recordTour(ev)
	case key.Matches(msg, m.keys.Reset):
		m.recordTour(m.tour.Reset(cam))
	case key.Matches(msg, m.keys.Slower):
		m.state.Step(-1)
	case key.Matches(msg, m.keys.Faster):
		m.state.Step(1)
	case key.Matches(msg, m.keys.Preset):
		m.state.SetTimeScale(float64(msg.Runes[0] - '0'))
	case key.Matches(msg, m.keys.Left):
		cam.Orbit(-orbitStep, 0)
	case key.Matches(msg, m.keys.Right):
		cam.Orbit(orbitStep, 0)
	case key.Matches(msg, m.keys.Up):
		cam.Orbit(0, orbitStep)
	case key.Matches(msg, m.keys.Down):
		cam.Orbit(0, -orbitStep)
	case key.Matches(msg, m.keys.ZoomIn):
		cam.Dolly(1 / dollyStep)
	case key.Matches(msg, m.keys.ZoomOut):
		cam.Dolly(dollyStep)
	default:
		if m.panel.IsOpen() {
			return m.panel.Update(msg)
		}
	}
	return nil
}

// pointer converts a screen position to a canvas pointer.
func (m *Model) pointer(x, y int) inspect.Pointer {
	cy := y - headerRows
	over := cy < 0 || cy >= m.canvasHeight()
	if w := m.panel.Width(); w > 0 && x >= m.width-w {
		over = true
	}
	return inspect.Pointer{X: x, Y: cy, OverChrome: over}
}

func (m *Model) hudRow() int { return headerRows + m.canvasHeight() }

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := m.pointer(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if p.OverChrome {
			m.inspector.Leave()
			return
		}
		m.inspector.Move(p)

	case tea.MouseActionPress:
		m.startAudio()
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ctx.Camera.Dolly(1 / dollyStep)
		case tea.MouseButtonWheelDown:
			m.ctx.Camera.Dolly(dollyStep)
		case tea.MouseButtonLeft:
			if msg.Y == m.hudRow() {
				if ts, ok := sliderValue(msg.X, m.state.MaxTimeScale()); ok {
					m.state.SetTimeScale(ts)
				}
				return
			}
			m.click(p)
		}
	}
}

func (m *Model) click(p inspect.Pointer) {
	m.chrome.opened = nil
	d, ok := m.inspector.Click(p)
	if !ok || m.chrome.opened == nil {
		return
	}
	m.panel.Open(*m.chrome.opened)
	m.chrome.opened = nil
	m.state.Record(state.Event{Type: state.EventBodySelected, Body: d.Name})
}

// startAudio kicks off the soundtrack on the first press without blocking
// the frame loop.
func (m *Model) startAudio() {
	if m.audioStarted || m.audio == nil {
		return
	}
	m.audioStarted = true
	go m.audio.Start()
}

// reload swaps in a rebuilt scene, keeping the camera pose.
func (m *Model) reload(msg ReloadMsg) {
	if msg.Err != nil {
		m.statusMsg = fmt.Sprintf("reload failed: %v", msg.Err)
		m.log.Warn("catalogue reload %s: %v", msg.Path, msg.Err)
		return
	}
	old := m.ctx.Camera
	m.ctx = msg.Context
	m.ctx.Camera.Position, m.ctx.Camera.Target = old.Position, old.Target
	m.inspector.SetScene(m.ctx)
	m.chrome.HideTooltip()
	m.watchFaults()
	if m.ready {
		m.resize()
	}
	if m.panel.IsOpen() {
		if _, ok := m.ctx.Registry.Find(m.panel.Details().Name); !ok {
			m.panel.Close()
		}
	}
	m.statusMsg = fmt.Sprintf("catalogue reloaded: %d bodies", len(m.ctx.Bodies))
	m.state.Record(state.Event{Type: state.EventCatalogueReload, Detail: msg.Path})
	m.log.Info("catalogue reloaded from %s", msg.Path)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+dimStyle.Render("Loading solar system..."))
	}

	cv := m.renderer.Render(m.ctx)
	if t := m.chrome.tip; t.visible {
		cv.text(t.x+2, t.y, t.name, tooltipColor)
	}
	content := m.overlayPanel(cv.String())

	var tourName string
	if t, ok := m.tour.Current(m.ctx.TourTargets()); ok {
		tourName = t.Name
	}
	hud := renderHUD(m.width, m.state.TimeScale(), m.state.MaxTimeScale(), tourName, m.inspector.Hovered())
	if m.statusMsg != "" {
		hud += dimStyle.Render("   " + m.statusMsg)
	}
	footer := renderFooter(m.width, FooterBindings(m.keys, m.panel.IsOpen()))

	return renderHeader(m.width, m.state.DateLabel()) + "\n" + content + "\n" + hud + "\n" + footer
}

// overlayPanel draws the open detail panel over the right edge of the
// canvas.
func (m Model) overlayPanel(canvas string) string {
	if !m.panel.IsOpen() {
		return canvas
	}
	lines := strings.Split(canvas, "\n")
	pl := strings.Split(m.panel.View(), "\n")
	left := max(m.width-m.panel.Width(), 0)
	for i := range lines {
		if i >= len(pl) {
			break
		}
		lines[i] = ansi.Truncate(lines[i], left, "") + pl[i]
	}
	return strings.Join(lines, "\n")
}

// Context returns the scene currently shown.
func (m Model) Context() *scene.Context { return m.ctx }

// Panel returns the detail panel.
func (m Model) Panel() DetailPanel { return m.panel }

// Tour returns the tour controller.
func (m Model) Tour() *tour.Controller { return m.tour }
