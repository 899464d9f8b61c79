// Package scene builds the orrery from a body registry and owns the result:
// graph, scheduler, camera, interactables and tour targets.
package scene

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/graph"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/pick"
	"github.com/litescript/ls-orrery/internal/texture"
	"github.com/litescript/ls-orrery/internal/tour"
)

// Fixed tints for untextured nodes.
var (
	satelliteTint = colorful.Color{R: 0xdd / 255.0, G: 0xdd / 255.0, B: 0xdd / 255.0}
	ringTint      = colorful.Color{R: 0xcc / 255.0, G: 0xbb / 255.0, B: 0xaa / 255.0}
	asteroidTint  = colorful.Color{R: 0x77 / 255.0, G: 0x77 / 255.0, B: 0x77 / 255.0}
	cometTint     = colorful.Color{G: 1, B: 1}
	trackTint     = colorful.Color{R: 1, G: 1, B: 1}
)

// Appearance is how a node is drawn.
type Appearance struct {
	Tint     colorful.Color
	Surface  texture.Map
	Textured bool
	// Opacity below 1 marks translucent geometry such as tracks and rings.
	Opacity float64
	// Glow is the sun-glow sprite diameter; zero for everything else.
	Glow float64
}

// SatelliteNodes are the nodes made for one satellite.
type SatelliteNodes struct {
	Name  string
	Pivot graph.NodeID
	Mesh  graph.NodeID
}

// Built is everything made for one primary body.
type Built struct {
	Descriptor body.Descriptor
	Pivot      graph.NodeID
	Offset     graph.NodeID
	Mesh       graph.NodeID
	// Ring is anim.NoNode when the body has none.
	Ring       graph.NodeID
	Satellites []SatelliteNodes
	// Tasks are scheduler indices: the orbit first, then one per satellite.
	Tasks  []int
	Record pick.Record
}

// Builder assembles a scene step by step.
type Builder struct {
	opts    Options
	rng     *rand.Rand
	log     *logging.Logger
	graph   *graph.Graph
	sched   *anim.Scheduler
	looks   map[graph.NodeID]Appearance
	bodies  []Built
	records []pick.Record
	targets []tour.Target

	sun, belt, comet graph.NodeID
}

// NewBuilder creates a builder with an empty graph and scheduler.
func NewBuilder(opts Options, rng *rand.Rand, log *logging.Logger) *Builder {
	if log == nil {
		log = logging.Discard()
	}
	g := graph.New()
	return &Builder{
		opts:  opts,
		rng:   rng,
		log:   log,
		graph: g,
		sched: anim.NewScheduler(g, log.With("anim")),
		looks: make(map[graph.NodeID]Appearance),
		sun:   anim.NoNode,
		belt:  anim.NoNode,
		comet: anim.NoNode,
	}
}

// Graph exposes the graph under construction.
func (b *Builder) Graph() *graph.Graph { return b.graph }

// Scheduler exposes the scheduler under construction.
func (b *Builder) Scheduler() *anim.Scheduler { return b.sched }

// Records returns the interactables made so far.
func (b *Builder) Records() []pick.Record {
	return append([]pick.Record(nil), b.records...)
}

// open fails once the scheduler is frozen, before any node is added.
func (b *Builder) open(what string) error {
	if b.sched.Frozen() {
		return fmt.Errorf("%s: %w", what, anim.ErrFrozen)
	}
	return nil
}

// BuildBody validates d and builds its hierarchy:
//
//	root → pivot (random Y rotation) → offset (+X by Distance) → mesh
//	                                                          ├─ ring
//	                                                          └─ satellite pivot → satellite
//
// It registers one Orbit task for the pivot and mesh spin and one
// SatelliteOrbit task per satellite, and records the mesh as pickable.
func (b *Builder) BuildBody(d body.Descriptor) (Built, error) {
	if err := d.Validate(); err != nil {
		return Built{}, err
	}
	if err := b.open("build " + d.Name); err != nil {
		return Built{}, err
	}
	ca, _ := body.ParseColor(d.ColorA)
	cb, _ := body.ParseColor(d.ColorB)

	out := Built{Descriptor: d, Ring: anim.NoNode}
	var err error

	out.Pivot, err = b.graph.Add(graph.Root, graph.Node{
		Kind:     graph.KindPivot,
		Label:    d.Name + " orbit",
		Rotation: b.rng.Float64() * astro.TwoPi,
	})
	if err != nil {
		return Built{}, err
	}
	out.Offset, err = b.graph.Add(out.Pivot, graph.Node{
		Kind:     graph.KindOffset,
		Label:    d.Name + " group",
		Position: astro.Vec3{X: d.Distance},
	})
	if err != nil {
		return Built{}, err
	}
	out.Mesh, err = b.graph.Add(out.Offset, graph.Node{
		Kind:   graph.KindBody,
		Label:  d.Name,
		Radius: d.Radius,
	})
	if err != nil {
		return Built{}, err
	}
	img := texture.Synthesize(d.Class, ca, cb, b.rng)
	b.looks[out.Mesh] = Appearance{
		Tint:     texture.Average(img),
		Surface:  texture.NewMap(img, b.opts.MapWidth, b.opts.MapHeight),
		Textured: true,
		Opacity:  1,
	}

	if d.Ring {
		out.Ring, err = b.graph.Add(out.Mesh, graph.Node{
			Kind:        graph.KindRing,
			Label:       d.Name + " ring",
			InnerRadius: d.Radius * 1.4,
			Radius:      d.Radius * 2.5,
			Tilt:        math.Pi / 2,
		})
		if err != nil {
			return Built{}, err
		}
		b.looks[out.Ring] = Appearance{Tint: ringTint, Opacity: 0.7}
	}

	idx, err := b.sched.Register(anim.Task{
		Kind:    anim.Orbit,
		Target:  out.Pivot,
		Rate:    d.Speed,
		Aux:     out.Mesh,
		AuxRate: b.opts.SpinRate,
	})
	if err != nil {
		return Built{}, fmt.Errorf("build %s: %w", d.Name, err)
	}
	out.Tasks = append(out.Tasks, idx)

	for _, s := range d.Satellites {
		sp, err := b.graph.Add(out.Mesh, graph.Node{Kind: graph.KindPivot, Label: s.Name + " orbit"})
		if err != nil {
			return Built{}, err
		}
		sm, err := b.graph.Add(sp, graph.Node{
			Kind:     graph.KindSatellite,
			Label:    s.Name,
			Position: astro.Vec3{X: s.Distance},
			Radius:   s.Radius,
		})
		if err != nil {
			return Built{}, err
		}
		b.looks[sm] = Appearance{Tint: satelliteTint, Opacity: 1}

		idx, err := b.sched.Register(anim.Task{
			Kind:   anim.SatelliteOrbit,
			Target: sp,
			Rate:   b.opts.SatelliteRate / s.Distance * b.opts.SatelliteFactor,
		})
		if err != nil {
			return Built{}, fmt.Errorf("build %s/%s: %w", d.Name, s.Name, err)
		}
		out.Satellites = append(out.Satellites, SatelliteNodes{Name: s.Name, Pivot: sp, Mesh: sm})
		out.Tasks = append(out.Tasks, idx)
	}

	out.Record = pick.Record{Node: out.Mesh, Body: d}
	b.records = append(b.records, out.Record)
	b.targets = append(b.targets, tour.Target{Node: out.Mesh, Name: d.Name, Radius: d.Radius})
	b.bodies = append(b.bodies, out)
	b.log.Debug("built %s: %d nodes, %d tasks", d.Name, 3+len(d.Satellites)*2, len(out.Tasks))
	return out, nil
}

// BuildSun adds the central star with its glow. It is never pickable.
func (b *Builder) BuildSun(s body.Star) (graph.NodeID, error) {
	ca, err := body.ParseColor(s.ColorA)
	if err != nil {
		return anim.NoNode, fmt.Errorf("%w: sun: %v", body.ErrInvalidDescriptor, err)
	}
	cb, err := body.ParseColor(s.ColorB)
	if err != nil {
		return anim.NoNode, fmt.Errorf("%w: sun: %v", body.ErrInvalidDescriptor, err)
	}
	id, err := b.graph.Add(graph.Root, graph.Node{Kind: graph.KindSun, Label: s.Name, Radius: s.Radius})
	if err != nil {
		return anim.NoNode, err
	}
	img := texture.Synthesize(body.SunSurface, ca, cb, b.rng)
	b.looks[id] = Appearance{
		Tint:     texture.Average(img),
		Surface:  texture.NewMap(img, b.opts.MapWidth, b.opts.MapHeight),
		Textured: true,
		Opacity:  1,
		Glow:     b.opts.GlowSize,
	}
	b.sun = id
	return id, nil
}

// BuildTrack adds a flat orbit guide of the given radius.
func (b *Builder) BuildTrack(name string, radius float64) (graph.NodeID, error) {
	id, err := b.graph.Add(graph.Root, graph.Node{
		Kind:        graph.KindTrack,
		Label:       name + " track",
		InnerRadius: radius - 0.5,
		Radius:      radius + 0.5,
		Tilt:        math.Pi / 2,
	})
	if err != nil {
		return anim.NoNode, err
	}
	b.looks[id] = Appearance{Tint: trackTint, Opacity: 0.1}
	return id, nil
}

// BuildBelt scatters the asteroid belt and registers its slow spin.
func (b *Builder) BuildBelt() (graph.NodeID, error) {
	if err := b.open("build belt"); err != nil {
		return anim.NoNode, err
	}
	o := b.opts.Belt
	belt, err := b.graph.Add(graph.Root, graph.Node{Kind: graph.KindBelt, Label: "asteroid belt"})
	if err != nil {
		return anim.NoNode, err
	}
	look := Appearance{Tint: asteroidTint, Opacity: 1}
	for i := 0; i < o.Count; i++ {
		dist := o.Inner + b.rng.Float64()*o.Width
		angle := b.rng.Float64() * astro.TwoPi
		h := (b.rng.Float64() - 0.5) * o.Height
		id, err := b.graph.Add(belt, graph.Node{
			Kind:     graph.KindAsteroid,
			Position: astro.Vec3{X: math.Cos(angle) * dist, Y: h, Z: math.Sin(angle) * dist},
			Tilt:     b.rng.Float64() * 3,
			Rotation: b.rng.Float64() * 3,
			Scale:    b.rng.Float64()*o.ScaleSpan + o.MinScale,
			Radius:   0.8,
		})
		if err != nil {
			return anim.NoNode, err
		}
		b.looks[id] = look
	}
	if _, err := b.sched.Register(anim.Task{Kind: anim.Spin, Target: belt, Rate: o.Rate}); err != nil {
		return anim.NoNode, fmt.Errorf("build belt: %w", err)
	}
	b.belt = belt
	return belt, nil
}

// BuildComet adds the comet on its tilted ellipse and registers its drift.
func (b *Builder) BuildComet() (graph.NodeID, error) {
	if err := b.open("build comet"); err != nil {
		return anim.NoNode, err
	}
	o := b.opts.Comet
	id, err := b.graph.Add(graph.Root, graph.Node{
		Kind:     graph.KindComet,
		Label:    "comet",
		Radius:   o.Radius,
		Path:     &graph.Ellipse{SemiX: o.SemiX, SemiZ: o.SemiZ, OffsetX: o.OffsetX, Lift: o.Lift},
		TrailLen: o.Trail,
	})
	if err != nil {
		return anim.NoNode, err
	}
	b.looks[id] = Appearance{Tint: cometTint, Opacity: 1}
	if _, err := b.sched.Register(anim.Task{Kind: anim.CometDrift, Target: id, Rate: o.Rate}); err != nil {
		return anim.NoNode, fmt.Errorf("build comet: %w", err)
	}
	b.comet = id
	return id, nil
}

// Finish freezes the scheduler, scatters the starfield, places the camera
// and hands everything to a Context. The builder must not be reused.
func (b *Builder) Finish(reg body.Registry) *Context {
	b.sched.Freeze()

	cam := astro.NewCamera(b.opts.Camera.Position, astro.Vec3{})
	if b.opts.Camera.FovYDeg > 0 {
		cam.FovYDeg = b.opts.Camera.FovYDeg
	}
	if b.opts.Camera.Far > 0 {
		cam.Far = b.opts.Camera.Far
	}
	cam.MaxDistance = b.opts.Camera.MaxDistance

	ctx := &Context{
		Graph:     b.graph,
		Scheduler: b.sched,
		Camera:    cam,
		Registry:  reg,
		Stars:     astro.GenerateStarfield(b.rng, b.opts.Stars.Count, b.opts.Stars.Spread),
		Bodies:    b.bodies,
		Sun:       b.sun,
		Belt:      b.belt,
		Comet:     b.comet,
		looks:     b.looks,
		records:   b.records,
		targets:   b.targets,
	}
	b.log.Info("scene ready: %d bodies, %d nodes, %d tasks, %d stars",
		len(b.bodies), b.graph.Len(), b.sched.Len(), len(ctx.Stars.Stars))
	return ctx
}

// Build validates reg and constructs the full scene: sun, one track and
// hierarchy per body, asteroid belt, comet and starfield.
func Build(reg body.Registry, opts Options, rng *rand.Rand, log *logging.Logger) (*Context, error) {
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("catalogue: %w", err)
	}
	b := NewBuilder(opts, rng, log)
	if _, err := b.BuildSun(reg.Sun); err != nil {
		return nil, err
	}
	for _, d := range reg.Bodies {
		if _, err := b.BuildTrack(d.Name, d.Distance); err != nil {
			return nil, err
		}
		if _, err := b.BuildBody(d); err != nil {
			return nil, err
		}
	}
	if opts.Belt.Count > 0 {
		if _, err := b.BuildBelt(); err != nil {
			return nil, err
		}
	}
	if opts.Comet.SemiX != 0 || opts.Comet.SemiZ != 0 {
		if _, err := b.BuildComet(); err != nil {
			return nil, err
		}
	}
	return b.Finish(reg), nil
}
