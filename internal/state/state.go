// Package state provides thread-safe session state: the time scale, the
// simulated calendar and a log of notable session events.
package state

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// EventType represents the type of session event.
type EventType string

const (
	EventTourStarted     EventType = "TOUR_STARTED"
	EventTourStopped     EventType = "TOUR_STOPPED"
	EventTourAdvanced    EventType = "TOUR_ADVANCED"
	EventBodySelected    EventType = "BODY_SELECTED"
	EventCameraReset     EventType = "CAMERA_RESET"
	EventTimeScale       EventType = "TIME_SCALE"
	EventCatalogueReload EventType = "CATALOGUE_RELOAD"
	EventAnimationFault  EventType = "ANIMATION_FAULT"
)

// Event is one entry in the session log.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Manager handles shared session state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	timeScale    float64
	maxTimeScale float64
	step         float64
	days         float64
	dayRate      float64
	frames       uint64

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	TimeScale    float64
	MaxTimeScale float64
	Step         float64
	// DayRate is simulated days per frame at time scale 1.
	DayRate   float64
	MaxEvents int
}

// DefaultConfig returns the stock session settings.
func DefaultConfig() Config {
	return Config{
		TimeScale:    1,
		MaxTimeScale: 5,
		Step:         0.1,
		DayRate:      0.5,
		MaxEvents:    50,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	m := &Manager{
		maxTimeScale: cfg.MaxTimeScale,
		step:         cfg.Step,
		dayRate:      cfg.DayRate,
		maxEvents:    maxEvents,
		events:       make([]Event, 0, maxEvents),
		now:          time.Now,
	}
	if m.maxTimeScale <= 0 {
		m.maxTimeScale = 5
	}
	m.timeScale = m.clamp(cfg.TimeScale)
	return m
}

func (m *Manager) clamp(ts float64) float64 {
	if math.IsNaN(ts) || ts < 0 {
		return 0
	}
	return math.Min(ts, m.maxTimeScale)
}

// TimeScale returns the current time scale.
func (m *Manager) TimeScale() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.timeScale
}

// MaxTimeScale returns the upper end of the slider.
func (m *Manager) MaxTimeScale() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxTimeScale
}

// SetTimeScale sets the time scale, clamped to [0, MaxTimeScale], and
// returns the value applied.
func (m *Manager) SetTimeScale(ts float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setLocked(ts)
}

func (m *Manager) setLocked(ts float64) float64 {
	v := m.clamp(ts)
	// Keep slider steps from drifting off a clean decimal.
	v = math.Round(v*1000) / 1000
	if v != m.timeScale {
		m.timeScale = v
		m.addEvent(Event{Type: EventTimeScale, Timestamp: m.now(), Detail: fmt.Sprintf("%.2fx", v)})
	}
	return v
}

// Step moves the time scale by n slider steps.
func (m *Manager) Step(n int) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setLocked(m.timeScale + float64(n)*m.step)
}

// Advance records one rendered frame. The calendar only moves forward while
// the time scale is positive.
func (m *Manager) Advance() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames++
	if m.timeScale > 0 {
		m.days += m.timeScale * m.dayRate
	}
}

// Days returns the simulated days elapsed.
func (m *Manager) Days() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.days
}

// DateLabel formats the calendar as "Year N | Day M".
func (m *Manager) DateLabel() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return FormatDate(m.days)
}

// FormatDate renders simulated days as "Year N | Day M".
func FormatDate(days float64) string {
	year := int(math.Floor(days/365)) + 1
	day := int(math.Floor(math.Mod(days, 365)))
	return fmt.Sprintf("Year %d | Day %d", year, day)
}

// Record appends an event to the session log, stamping it if needed.
func (m *Manager) Record(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.Timestamp.IsZero() {
		e.Timestamp = m.now()
	}
	m.addEvent(e)
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	TimeScale float64
	Days      float64
	Date      string
	Frames    uint64
	Events    []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		TimeScale: m.timeScale,
		Days:      m.days,
		Date:      FormatDate(m.days),
		Frames:    m.frames,
		Events:    m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
