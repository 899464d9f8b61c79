package scene

import (
	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/graph"
	"github.com/litescript/ls-orrery/internal/pick"
	"github.com/litescript/ls-orrery/internal/tour"
)

// Context owns one built scene. All mutation goes through Tick, the tour
// controller's Step on Camera, and Resize, from a single goroutine.
type Context struct {
	Graph     *graph.Graph
	Scheduler *anim.Scheduler
	Camera    astro.Camera
	Registry  body.Registry
	Stars     astro.StarCatalog
	Bodies    []Built

	// Sun, Belt and Comet are anim.NoNode when not built.
	Sun, Belt, Comet graph.NodeID

	looks   map[graph.NodeID]Appearance
	records []pick.Record
	targets []tour.Target
}

// Tick advances every animation task once.
func (c *Context) Tick(timeScale float64) int {
	return c.Scheduler.Tick(timeScale)
}

// Resize updates the viewport size and projection aspect together.
func (c *Context) Resize(width, height int, cellAspect float64) {
	c.Camera.SetViewport(width, height, cellAspect)
}

// WorldPosition reports where a node currently is.
func (c *Context) WorldPosition(id graph.NodeID) (astro.Vec3, error) {
	return c.Graph.WorldPosition(id)
}

// View returns the current camera.
func (c *Context) View() astro.Camera { return c.Camera }

// Interactables returns the pickable body meshes in registry order.
func (c *Context) Interactables() []pick.Record { return c.records }

// TourTargets returns the bodies the tour visits in registry order.
func (c *Context) TourTargets() []tour.Target { return c.targets }

// Appearance returns how a node is drawn.
func (c *Context) Appearance(id graph.NodeID) (Appearance, bool) {
	a, ok := c.looks[id]
	return a, ok
}

// BodyState is a body's pose at a moment.
type BodyState struct {
	Name       string           `json:"name"`
	Orbit      float64          `json:"orbit_rad"`
	Spin       float64          `json:"spin_rad"`
	Position   astro.Vec3       `json:"position"`
	Satellites []SatelliteState `json:"satellites,omitempty"`
}

// SatelliteState is a satellite's pose at a moment.
type SatelliteState struct {
	Name     string     `json:"name"`
	Orbit    float64    `json:"orbit_rad"`
	Position astro.Vec3 `json:"position"`
}

// Snapshot is the pose of the whole scene.
type Snapshot struct {
	Ticks  uint64      `json:"ticks"`
	Faults uint64      `json:"faults"`
	Bodies []BodyState `json:"bodies"`
	Comet  *astro.Vec3 `json:"comet,omitempty"`
}

// Snapshot captures every body's pose. Angles are wrapped to [0, 2π).
func (c *Context) Snapshot() Snapshot {
	out := Snapshot{
		Ticks:  c.Scheduler.Ticks(),
		Faults: c.Scheduler.Faults(),
		Bodies: make([]BodyState, 0, len(c.Bodies)),
	}
	for _, b := range c.Bodies {
		orbit, _ := c.Graph.Rotation(b.Pivot)
		spin, _ := c.Graph.Rotation(b.Mesh)
		pos, _ := c.Graph.WorldPosition(b.Mesh)
		bs := BodyState{
			Name:     b.Descriptor.Name,
			Orbit:    astro.WrapAngle(orbit),
			Spin:     astro.WrapAngle(spin),
			Position: pos,
		}
		for _, s := range b.Satellites {
			rot, _ := c.Graph.Rotation(s.Pivot)
			sp, _ := c.Graph.WorldPosition(s.Mesh)
			bs.Satellites = append(bs.Satellites, SatelliteState{Name: s.Name, Orbit: astro.WrapAngle(rot), Position: sp})
		}
		out.Bodies = append(out.Bodies, bs)
	}
	if c.Comet != anim.NoNode {
		if p, err := c.Graph.WorldPosition(c.Comet); err == nil {
			out.Comet = &p
		}
	}
	return out
}
