package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/graph"
)

func testOptions() Options {
	o := DefaultOptions()
	o.Belt.Count = 20
	o.Stars.Count = 30
	o.MapWidth, o.MapHeight = 8, 4
	return o
}

func testRNG() *rand.Rand { return rand.New(rand.NewPCG(3, 4)) }

func threeBodies() body.Registry {
	return body.Registry{
		Sun: body.DefaultSun,
		Bodies: []body.Descriptor{
			{Name: "ONE", Radius: 3, Distance: 70, Speed: 0.04, Class: body.Rocky, ColorA: "#aaa", ColorB: "#555"},
			{
				Name: "TWO", Radius: 6, Distance: 140, Speed: 0.01, Class: body.WaterWorld,
				ColorA: "#00f", ColorB: "#0f0",
				Satellites: []body.Satellite{{Name: "Moon", Radius: 1.5, Distance: 12}},
			},
			{Name: "THREE", Radius: 15, Distance: 420, Speed: 0.003, Class: body.Gas, ColorA: "#f4d03f", ColorB: "#c9a128", Ring: true},
		},
	}
}

func TestBuildBodyTaskAndRecordCounts(t *testing.T) {
	for _, d := range body.Default().Bodies {
		t.Run(d.Name, func(t *testing.T) {
			b := NewBuilder(testOptions(), testRNG(), nil)
			built, err := b.BuildBody(d)
			require.NoError(t, err)

			assert.Equal(t, 1+len(d.Satellites), b.Scheduler().Len())
			assert.Len(t, built.Tasks, 1+len(d.Satellites))
			assert.Len(t, b.Records(), 1)
			assert.Equal(t, built.Mesh, b.Records()[0].Node)
			assert.Len(t, built.Satellites, len(d.Satellites))
		})
	}
}

func TestBuildBodyHierarchy(t *testing.T) {
	b := NewBuilder(testOptions(), testRNG(), nil)
	d := threeBodies().Bodies[1]
	built, err := b.BuildBody(d)
	require.NoError(t, err)
	g := b.Graph()

	pivot, _ := g.Node(built.Pivot)
	assert.Equal(t, graph.Root, pivot.Parent())
	assert.GreaterOrEqual(t, pivot.Rotation, 0.0)
	assert.Less(t, pivot.Rotation, astro.TwoPi)

	offset, _ := g.Node(built.Offset)
	assert.Equal(t, built.Pivot, offset.Parent())
	assert.Equal(t, astro.Vec3{X: 140}, offset.Position)

	mesh, _ := g.Node(built.Mesh)
	assert.Equal(t, built.Offset, mesh.Parent())
	assert.Equal(t, 6.0, mesh.Radius)

	// Satellite pivots hang off the mesh itself.
	require.Len(t, built.Satellites, 1)
	sp, _ := g.Node(built.Satellites[0].Pivot)
	assert.Equal(t, built.Mesh, sp.Parent())
	sm, _ := g.Node(built.Satellites[0].Mesh)
	assert.Equal(t, astro.Vec3{X: 12}, sm.Position)

	// Body sits at Distance from the origin, moon at 12 from the body.
	bp, _ := g.WorldPosition(built.Mesh)
	mp, _ := g.WorldPosition(built.Satellites[0].Mesh)
	assert.InDelta(t, 140, bp.Norm(), 1e-9)
	assert.InDelta(t, 12, mp.DistTo(bp), 1e-9)

	assert.Equal(t, anim.NoNode, built.Ring)
	look, ok := b.looks[built.Mesh]
	require.True(t, ok)
	assert.True(t, look.Textured)
}

func TestBuildBodyRing(t *testing.T) {
	b := NewBuilder(testOptions(), testRNG(), nil)
	built, err := b.BuildBody(threeBodies().Bodies[2])
	require.NoError(t, err)
	require.NotEqual(t, anim.NoNode, built.Ring)

	ring, _ := b.Graph().Node(built.Ring)
	assert.Equal(t, built.Mesh, ring.Parent())
	assert.InDelta(t, 21, ring.InnerRadius, 1e-9)
	assert.InDelta(t, 37.5, ring.Radius, 1e-9)
	assert.InDelta(t, math.Pi/2, ring.Tilt, 1e-12)

	// Rings are not animated.
	for _, task := range b.Scheduler().Tasks() {
		assert.NotEqual(t, built.Ring, task.Target)
	}
}

func TestBuildBodyRejectsInvalid(t *testing.T) {
	b := NewBuilder(testOptions(), testRNG(), nil)
	d := threeBodies().Bodies[0]
	d.Distance = 0
	_, err := b.BuildBody(d)
	assert.ErrorIs(t, err, body.ErrInvalidDescriptor)
	assert.Equal(t, 0, b.Scheduler().Len())
	assert.Equal(t, 1, b.Graph().Len())
}

func TestBuildAfterFreezeAddsNothing(t *testing.T) {
	b := NewBuilder(testOptions(), testRNG(), nil)
	b.Scheduler().Freeze()

	_, err := b.BuildBody(threeBodies().Bodies[2])
	assert.ErrorIs(t, err, anim.ErrFrozen)
	_, err = b.BuildBelt()
	assert.ErrorIs(t, err, anim.ErrFrozen)
	_, err = b.BuildComet()
	assert.ErrorIs(t, err, anim.ErrFrozen)

	assert.Equal(t, 1, b.Graph().Len())
	assert.Equal(t, 0, b.Scheduler().Len())
	assert.Empty(t, b.Records())
}

func TestBuildFreezesScheduler(t *testing.T) {
	ctx, err := Build(threeBodies(), testOptions(), testRNG(), nil)
	require.NoError(t, err)
	assert.True(t, ctx.Scheduler.Frozen())

	// 3 orbits + 1 satellite + belt spin + comet drift.
	assert.Equal(t, 6, ctx.Scheduler.Len())
	assert.Len(t, ctx.Interactables(), 3)
	assert.Len(t, ctx.TourTargets(), 3)
	assert.Len(t, ctx.Stars.Stars, 30)
	assert.NotEqual(t, anim.NoNode, ctx.Sun)
	assert.NotEqual(t, anim.NoNode, ctx.Belt)
	assert.NotEqual(t, anim.NoNode, ctx.Comet)

	for _, r := range ctx.Interactables() {
		assert.NotEqual(t, ctx.Sun, r.Node, "sun must not be pickable")
	}

	_, err = ctx.Scheduler.Register(anim.Task{Kind: anim.Spin, Target: ctx.Belt})
	assert.ErrorIs(t, err, anim.ErrFrozen)
}

func TestBuildRejectsInvalidRegistry(t *testing.T) {
	reg := threeBodies()
	reg.Bodies[1].Class = "plasma"
	_, err := Build(reg, testOptions(), testRNG(), nil)
	assert.ErrorIs(t, err, body.ErrInvalidDescriptor)
}

func TestEndToEndOrbits(t *testing.T) {
	ctx, err := Build(threeBodies(), testOptions(), testRNG(), nil)
	require.NoError(t, err)

	initial := make([]float64, len(ctx.Bodies))
	for i, b := range ctx.Bodies {
		initial[i], _ = ctx.Graph.Rotation(b.Pivot)
	}
	moonPivot := ctx.Bodies[1].Satellites[0].Pivot
	moonInit, _ := ctx.Graph.Rotation(moonPivot)

	const ticks, ts = 100, 2.0
	for i := 0; i < ticks; i++ {
		require.Equal(t, 0, ctx.Tick(ts))
	}

	want := []float64{8.0, 2.0, 0.6}
	for i, b := range ctx.Bodies {
		got, _ := ctx.Graph.Rotation(b.Pivot)
		assert.InDelta(t, want[i], got-initial[i], 1e-9, "%s orbit", b.Descriptor.Name)
		assert.InDelta(t, astro.WrapAngle(initial[i]+want[i]), astro.WrapAngle(got), 1e-9)

		spin, _ := ctx.Graph.Rotation(b.Mesh)
		assert.InDelta(t, ticks*0.02*ts, spin, 1e-9, "%s spin", b.Descriptor.Name)
	}

	moon, _ := ctx.Graph.Rotation(moonPivot)
	assert.InDelta(t, 100*(0.05/12*10)*2, moon-moonInit, 1e-9)
	assert.InDelta(t, 8.333, moon-moonInit, 0.001)
}

func TestZeroTimeScaleChangesNothing(t *testing.T) {
	ctx, err := Build(threeBodies(), testOptions(), testRNG(), nil)
	require.NoError(t, err)

	type pose struct {
		rot float64
		pos astro.Vec3
	}
	capture := func() []pose {
		var out []pose
		ctx.Graph.Walk(func(id graph.NodeID, n graph.Node, w astro.Affine) bool {
			out = append(out, pose{n.Rotation, w.Origin()})
			return true
		})
		return out
	}

	before := capture()
	for i := 0; i < 25; i++ {
		ctx.Tick(0)
	}
	assert.Equal(t, before, capture())
}

func TestResizeUpdatesViewportAndAspect(t *testing.T) {
	ctx, err := Build(threeBodies(), testOptions(), testRNG(), nil)
	require.NoError(t, err)

	ctx.Resize(120, 30, 2)
	assert.Equal(t, 120, ctx.Camera.Width)
	assert.Equal(t, 30, ctx.Camera.Height)
	assert.InDelta(t, 2.0, ctx.Camera.Aspect, 1e-12)
	assert.Equal(t, ctx.Camera, ctx.View())
}

func TestSnapshot(t *testing.T) {
	ctx, err := Build(threeBodies(), testOptions(), testRNG(), nil)
	require.NoError(t, err)
	ctx.Tick(1)

	snap := ctx.Snapshot()
	assert.Equal(t, uint64(1), snap.Ticks)
	require.Len(t, snap.Bodies, 3)
	assert.Equal(t, "TWO", snap.Bodies[1].Name)
	require.Len(t, snap.Bodies[1].Satellites, 1)
	assert.InDelta(t, 70, snap.Bodies[0].Position.Norm(), 1e-9)
	require.NotNil(t, snap.Comet)

	cam := ctx.Camera
	assert.Equal(t, astro.Vec3{Y: 400, Z: 600}, cam.Position)
	assert.Equal(t, 5000.0, cam.MaxDistance)
}

func TestCometTrailGrows(t *testing.T) {
	ctx, err := Build(threeBodies(), testOptions(), testRNG(), nil)
	require.NoError(t, err)
	for i := 0; i < 80; i++ {
		ctx.Tick(1)
	}
	comet, _ := ctx.Graph.Node(ctx.Comet)
	assert.Len(t, comet.Trail, 50)
	assert.InDelta(t, 80*0.008, comet.Phase, 1e-9)
}
