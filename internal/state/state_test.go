package state

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func fixedClock(m *Manager) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	m.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(cfg)

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.TimeScale() != cfg.TimeScale {
		t.Errorf("TimeScale = %v, want %v", m.TimeScale(), cfg.TimeScale)
	}
	if m.Days() != 0 {
		t.Errorf("Days = %v, want 0", m.Days())
	}
	if got := m.DateLabel(); got != "Year 1 | Day 0" {
		t.Errorf("DateLabel = %q", got)
	}
	if len(m.RecentEvents(10)) != 0 {
		t.Error("expected no events initially")
	}
}

func TestNewManager_ClampsInitialScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeScale = 12
	m := NewManager(cfg)
	if m.TimeScale() != cfg.MaxTimeScale {
		t.Errorf("TimeScale = %v, want %v", m.TimeScale(), cfg.MaxTimeScale)
	}
}

func TestManager_SetTimeScale(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2.5, 2.5},
		{0, 0},
		{-1, 0},
		{5, 5},
		{9, 5},
		{0.1 + 0.2, 0.3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			m := NewManager(DefaultConfig())
			if got := m.SetTimeScale(tt.in); got != tt.want {
				t.Errorf("SetTimeScale(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if m.TimeScale() != tt.want {
				t.Errorf("TimeScale = %v, want %v", m.TimeScale(), tt.want)
			}
		})
	}
}

func TestManager_SetTimeScale_RecordsChangesOnly(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetTimeScale(1) // unchanged
	m.SetTimeScale(2)
	m.SetTimeScale(2)

	events := m.RecentEvents(10)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventTimeScale {
		t.Errorf("Type = %v, want %v", events[0].Type, EventTimeScale)
	}
	if events[0].Detail != "2.00x" {
		t.Errorf("Detail = %q", events[0].Detail)
	}
}

func TestManager_Step(t *testing.T) {
	m := NewManager(DefaultConfig())

	if got := m.Step(3); got != 1.3 {
		t.Errorf("Step(3) = %v, want 1.3", got)
	}
	if got := m.Step(-2); got != 1.1 {
		t.Errorf("Step(-2) = %v, want 1.1", got)
	}
	if got := m.Step(-100); got != 0 {
		t.Errorf("Step(-100) = %v, want 0", got)
	}
	if got := m.Step(100); got != 5 {
		t.Errorf("Step(100) = %v, want 5", got)
	}
}

func TestManager_Advance(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetTimeScale(2)
	for i := 0; i < 10; i++ {
		m.Advance()
	}
	if m.Days() != 10 {
		t.Errorf("Days = %v, want 10", m.Days())
	}

	m.SetTimeScale(0)
	for i := 0; i < 10; i++ {
		m.Advance()
	}
	if m.Days() != 10 {
		t.Errorf("Days = %v after paused frames, want 10", m.Days())
	}
	if snap := m.Snapshot(); snap.Frames != 20 {
		t.Errorf("Frames = %d, want 20", snap.Frames)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		days float64
		want string
	}{
		{0, "Year 1 | Day 0"},
		{0.5, "Year 1 | Day 0"},
		{364.9, "Year 1 | Day 364"},
		{365, "Year 2 | Day 0"},
		{800.5, "Year 3 | Day 70"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.days); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestManager_Record(t *testing.T) {
	m := NewManager(DefaultConfig())
	fixedClock(m)

	m.Record(Event{Type: EventBodySelected, Body: "EARTH"})
	stamp := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	m.Record(Event{Type: EventCameraReset, Timestamp: stamp})

	events := m.RecentEvents(10)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Body != "EARTH" || events[0].Timestamp.IsZero() {
		t.Errorf("first event = %+v", events[0])
	}
	if !events[1].Timestamp.Equal(stamp) {
		t.Errorf("explicit timestamp overwritten: %v", events[1].Timestamp)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 5
	m := NewManager(cfg)
	fixedClock(m)

	for i := 0; i < 8; i++ {
		m.Record(Event{Type: EventTourAdvanced, Detail: fmt.Sprint(i)})
	}

	events := m.Snapshot().Events
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}
	for i, e := range events {
		if want := fmt.Sprint(i + 3); e.Detail != want {
			t.Errorf("events[%d].Detail = %q, want %q", i, e.Detail, want)
		}
		if i > 0 && !e.Timestamp.After(events[i-1].Timestamp) {
			t.Errorf("events out of order at %d", i)
		}
	}

	recent := m.RecentEvents(2)
	if len(recent) != 2 || recent[1].Detail != "7" {
		t.Errorf("RecentEvents(2) = %+v", recent)
	}
}

func TestManager_Snapshot_IsCopy(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.Record(Event{Type: EventTourStarted})

	snap := m.Snapshot()
	snap.Events[0].Type = EventTourStopped

	if m.Snapshot().Events[0].Type != EventTourStarted {
		t.Error("modifying snapshot events affected the manager")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Advance()
				m.Step(n%3 - 1)
				_ = m.Snapshot()
				_ = m.DateLabel()
			}
		}(i)
	}
	wg.Wait()

	if snap := m.Snapshot(); snap.Frames != 1000 {
		t.Errorf("Frames = %d, want 1000", snap.Frames)
	}
}
