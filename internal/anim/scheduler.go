// Package anim drives per-frame motion. Tasks are plain tagged values held in
// an arena; the scheduler dispatches each one by kind against the scene graph
// once per tick with a single time scale.
package anim

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/litescript/ls-orrery/internal/graph"
	"github.com/litescript/ls-orrery/internal/logging"
)

// ErrFrozen is returned by Register once the scheduler has been frozen.
var ErrFrozen = errors.New("scheduler is frozen")

// Kind selects how a task moves its target.
type Kind int

const (
	// Orbit rotates Target by Rate and Aux (the body mesh) by AuxRate.
	Orbit Kind = iota
	// Spin rotates Target by Rate.
	Spin
	// SatelliteOrbit rotates a satellite's pivot by Rate.
	SatelliteOrbit
	// CometDrift advances Target along its path by Rate.
	CometDrift
)

func (k Kind) String() string {
	switch k {
	case Orbit:
		return "orbit"
	case Spin:
		return "spin"
	case SatelliteOrbit:
		return "satellite-orbit"
	case CometDrift:
		return "comet-drift"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NoNode marks an unused Aux slot.
const NoNode graph.NodeID = -1

// Task is one registered motion. Rates are per tick at time scale 1.
type Task struct {
	Kind    Kind
	Target  graph.NodeID
	Rate    float64
	Aux     graph.NodeID
	AuxRate float64
}

// Target is the node state a task may change.
type Target interface {
	Rotate(id graph.NodeID, delta float64) error
	Drift(id graph.NodeID, delta float64) error
}

// Fault describes one task failure during a tick.
type Fault struct {
	Tick  uint64
	Index int
	Task  Task
	Err   error
}

func (f Fault) Error() string {
	return fmt.Sprintf("tick %d: task %d (%s on node %d): %v", f.Tick, f.Index, f.Task.Kind, f.Task.Target, f.Err)
}

func (f Fault) Unwrap() error { return f.Err }

// Scheduler owns the task arena.
type Scheduler struct {
	target  Target
	tasks   []Task
	frozen  bool
	ticks   uint64
	faults  uint64
	onFault func(Fault)
	logger  *logging.Logger
}

// NewScheduler creates an empty scheduler acting on target.
func NewScheduler(target Target, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scheduler{target: target, logger: logger}
}

// OnFault installs a hook called for every task failure.
func (s *Scheduler) OnFault(fn func(Fault)) {
	s.onFault = fn
}

// Register appends a task and returns its index.
func (s *Scheduler) Register(t Task) (int, error) {
	if s.frozen {
		return -1, fmt.Errorf("register %s: %w", t.Kind, ErrFrozen)
	}
	if t.Kind != Orbit {
		t.Aux = NoNode
	}
	s.tasks = append(s.tasks, t)
	return len(s.tasks) - 1, nil
}

// Freeze closes registration. Tick freezes implicitly.
func (s *Scheduler) Freeze() { s.frozen = true }

// Frozen reports whether registration is closed.
func (s *Scheduler) Frozen() bool { return s.frozen }

// Len returns the number of registered tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

// Tasks returns a copy of the arena in registration order.
func (s *Scheduler) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

// Ticks returns the number of completed ticks.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Faults returns the number of task failures so far.
func (s *Scheduler) Faults() uint64 { return s.faults }

// Tick runs every task once, in registration order, scaled by timeScale.
// A failing task is reported and skipped; the rest still run. It returns the
// number of failures in this tick.
func (s *Scheduler) Tick(timeScale float64) int {
	s.frozen = true
	s.ticks++

	failed := 0
	for i, t := range s.tasks {
		if err := s.run(t, timeScale); err != nil {
			failed++
			s.report(Fault{Tick: s.ticks, Index: i, Task: t, Err: err})
		}
	}
	return failed
}

func (s *Scheduler) run(t Task, ts float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			s.logger.Debug("task panic stack:\n%s", debug.Stack())
		}
	}()

	switch t.Kind {
	case Orbit:
		if err := s.target.Rotate(t.Target, t.Rate*ts); err != nil {
			return err
		}
		if t.Aux != NoNode {
			return s.target.Rotate(t.Aux, t.AuxRate*ts)
		}
		return nil
	case Spin, SatelliteOrbit:
		return s.target.Rotate(t.Target, t.Rate*ts)
	case CometDrift:
		return s.target.Drift(t.Target, t.Rate*ts)
	default:
		return fmt.Errorf("unknown task kind %s", t.Kind)
	}
}

func (s *Scheduler) report(f Fault) {
	s.faults++
	s.logger.Warn("%v", f)
	if s.onFault != nil {
		s.onFault(f)
	}
}
