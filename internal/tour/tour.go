// Package tour drives the camera through the bodies one after another.
package tour

import (
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/graph"
)

// Target is a body the tour can visit.
type Target struct {
	Node   graph.NodeID
	Name   string
	Radius float64
}

// Locator reports the live world position of a node.
type Locator interface {
	WorldPosition(id graph.NodeID) (astro.Vec3, error)
}

// State is the observable tour state.
type State struct {
	Active  bool
	Index   int
	Elapsed float64
}

// Options tune pacing and framing.
type Options struct {
	// Rate is added to Elapsed every step, regardless of time scale.
	Rate float64
	// Dwell is how long Elapsed must exceed before moving on.
	Dwell float64
	// Lerp is the per-step interpolation factor toward the goal.
	Lerp float64
	// Offset is the camera offset from the body in body radii.
	Offset astro.Vec3
	// ResetPosition and ResetTarget are where Reset puts the camera.
	ResetPosition astro.Vec3
	ResetTarget   astro.Vec3
}

// DefaultOptions returns the stock pacing: five units per body at 0.01 a
// frame, easing 5% per frame to a point (4r, 2r, 4r) from the body.
func DefaultOptions() Options {
	return Options{
		Rate:          0.01,
		Dwell:         5,
		Lerp:          0.05,
		Offset:        astro.Vec3{X: 4, Y: 2, Z: 4},
		ResetPosition: astro.Vec3{Y: 500},
	}
}

// Event reports what a step or toggle did.
type Event int

const (
	None Event = iota
	Started
	Stopped
	Advanced
	Reset
)

// Controller is the tour state machine.
type Controller struct {
	opts  Options
	state State
}

// New creates an inactive controller.
func New(opts Options) *Controller {
	return &Controller{opts: opts}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Active reports whether the tour is running.
func (c *Controller) Active() bool { return c.state.Active }

// Toggle starts or stops the tour. Index and Elapsed carry over.
func (c *Controller) Toggle() Event {
	c.state.Active = !c.state.Active
	if c.state.Active {
		return Started
	}
	return Stopped
}

// Reset stops the tour and snaps the camera to its default view.
func (c *Controller) Reset(cam *astro.Camera) Event {
	c.state.Active = false
	cam.Position = c.opts.ResetPosition
	cam.Target = c.opts.ResetTarget
	return Reset
}

// Step advances the tour by one frame and eases cam toward the current
// target. It does nothing while inactive or with no targets. A target whose
// node cannot be located leaves the camera where it is.
func (c *Controller) Step(cam *astro.Camera, loc Locator, targets []Target) Event {
	if !c.state.Active || len(targets) == 0 {
		return None
	}

	ev := None
	if c.state.Index >= len(targets) || c.state.Index < 0 {
		c.state.Index = 0
	}
	c.state.Elapsed += c.opts.Rate
	if c.state.Elapsed > c.opts.Dwell {
		c.state.Index = (c.state.Index + 1) % len(targets)
		c.state.Elapsed = 0
		ev = Advanced
	}

	tgt := targets[c.state.Index]
	pos, err := loc.WorldPosition(tgt.Node)
	if err != nil {
		return ev
	}
	goal := pos.Add(astro.Vec3{
		X: c.opts.Offset.X * tgt.Radius,
		Y: c.opts.Offset.Y * tgt.Radius,
		Z: c.opts.Offset.Z * tgt.Radius,
	})
	cam.Position = cam.Position.Lerp(goal, c.opts.Lerp)
	cam.Target = cam.Target.Lerp(pos, c.opts.Lerp)
	return ev
}

// Current returns the target being visited, if any.
func (c *Controller) Current(targets []Target) (Target, bool) {
	if !c.state.Active || len(targets) == 0 {
		return Target{}, false
	}
	return targets[c.state.Index%len(targets)], true
}
