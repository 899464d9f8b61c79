// Package graph is the scene graph: an arena of transform nodes with strictly
// tree-shaped ownership. A node's world transform is its parent's world
// transform composed with its own local transform.
package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// ErrNoSuchNode is returned for an unknown NodeID.
var ErrNoSuchNode = errors.New("no such scene node")

// NodeID is a handle into the graph arena. The zero value is the root.
type NodeID int

// Root is the scene root. It always exists.
const Root NodeID = 0

// Kind classifies a node for rendering and inspection.
type Kind int

const (
	KindRoot Kind = iota
	KindPivot
	KindOffset
	KindBody
	KindRing
	KindSatellite
	KindSun
	KindBelt
	KindAsteroid
	KindComet
	KindTrack
)

var kindNames = [...]string{
	KindRoot:      "root",
	KindPivot:     "pivot",
	KindOffset:    "offset",
	KindBody:      "body",
	KindRing:      "ring",
	KindSatellite: "satellite",
	KindSun:       "sun",
	KindBelt:      "belt",
	KindAsteroid:  "asteroid",
	KindComet:     "comet",
	KindTrack:     "track",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Ellipse is a closed parametric path in the parent's frame:
// x = cos(t)·SemiX + OffsetX, z = sin(t)·SemiZ, y = z·Lift.
type Ellipse struct {
	SemiX, SemiZ float64
	OffsetX      float64
	Lift         float64
}

// At returns the point at parameter t.
func (e Ellipse) At(t float64) astro.Vec3 {
	z := math.Sin(t) * e.SemiZ
	return astro.Vec3{X: math.Cos(t)*e.SemiX + e.OffsetX, Y: z * e.Lift, Z: z}
}

// Node is one transform in the hierarchy.
//
// Rotation is about +Y, Tilt is a fixed rotation about +X applied before it,
// and Scale is uniform. Radius and InnerRadius are geometry for bodies,
// satellites, rings and tracks. Label names the node for display.
//
// A node with a Path drifts along it: Phase is the path parameter and Trail
// holds the most recent positions, newest first, up to TrailLen.
type Node struct {
	Kind        Kind
	Label       string
	Position    astro.Vec3
	Rotation    float64
	Tilt        float64
	Scale       float64
	Radius      float64
	InnerRadius float64

	Path     *Ellipse
	Phase    float64
	Trail    []astro.Vec3
	TrailLen int

	parent   NodeID
	children []NodeID
}

// Local returns the node's local transform.
func (n *Node) Local() astro.Affine {
	s := n.Scale
	if s == 0 {
		s = 1
	}
	return astro.LocalTransform(n.Position, n.Rotation, n.Tilt, s)
}

// Parent returns the node's parent. The root is its own parent.
func (n *Node) Parent() NodeID { return n.parent }

// Graph owns every node. Nodes are never removed.
type Graph struct {
	nodes []Node
}

// New creates a graph holding only the root.
func New() *Graph {
	return &Graph{nodes: []Node{{Kind: KindRoot, Label: "root", Scale: 1}}}
}

// Len returns the number of nodes including the root.
func (g *Graph) Len() int { return len(g.nodes) }

// Add creates a node owned by parent and returns its handle. The parent is
// fixed for the node's lifetime.
func (g *Graph) Add(parent NodeID, n Node) (NodeID, error) {
	if !g.valid(parent) {
		return 0, fmt.Errorf("add %s: parent %d: %w", n.Kind, parent, ErrNoSuchNode)
	}
	if n.Kind == KindRoot {
		return 0, fmt.Errorf("add: only one root allowed")
	}
	if n.Scale == 0 {
		n.Scale = 1
	}
	n.parent = parent
	n.children = nil
	if n.Path != nil {
		p := *n.Path
		n.Path = &p
		n.Position = p.At(n.Phase)
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.nodes[parent].children = append(g.nodes[parent].children, id)
	return id, nil
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns a copy of the node.
func (g *Graph) Node(id NodeID) (Node, error) {
	if !g.valid(id) {
		return Node{}, fmt.Errorf("node %d: %w", id, ErrNoSuchNode)
	}
	n := g.nodes[id]
	n.children = append([]NodeID(nil), n.children...)
	n.Trail = append([]astro.Vec3(nil), n.Trail...)
	return n, nil
}

// Children returns the direct children of id in creation order.
func (g *Graph) Children(id NodeID) []NodeID {
	if !g.valid(id) {
		return nil
	}
	return append([]NodeID(nil), g.nodes[id].children...)
}

// Rotation returns the Y rotation of id.
func (g *Graph) Rotation(id NodeID) (float64, error) {
	if !g.valid(id) {
		return 0, fmt.Errorf("rotation %d: %w", id, ErrNoSuchNode)
	}
	return g.nodes[id].Rotation, nil
}

// Rotate adds delta radians to the Y rotation of id.
func (g *Graph) Rotate(id NodeID, delta float64) error {
	if !g.valid(id) || id == Root {
		return fmt.Errorf("rotate %d: %w", id, ErrNoSuchNode)
	}
	g.nodes[id].Rotation += delta
	return nil
}

// Drift advances a path-following node by delta along its path, moves it to
// the new point and records the point in its trail.
func (g *Graph) Drift(id NodeID, delta float64) error {
	if !g.valid(id) || id == Root {
		return fmt.Errorf("drift %d: %w", id, ErrNoSuchNode)
	}
	n := &g.nodes[id]
	if n.Path == nil {
		return fmt.Errorf("drift %d: %s node has no path", id, n.Kind)
	}
	if delta == 0 {
		return nil
	}
	n.Phase += delta
	n.Position = n.Path.At(n.Phase)
	if n.TrailLen > 0 {
		if len(n.Trail) < n.TrailLen {
			n.Trail = append(n.Trail, astro.Vec3{})
		}
		copy(n.Trail[1:], n.Trail[:len(n.Trail)-1])
		n.Trail[0] = n.Position
	}
	return nil
}

// World returns the world transform of id.
func (g *Graph) World(id NodeID) (astro.Affine, error) {
	if !g.valid(id) {
		return astro.Affine{}, fmt.Errorf("world %d: %w", id, ErrNoSuchNode)
	}
	var chain []NodeID
	for cur := id; cur != Root; cur = g.nodes[cur].parent {
		chain = append(chain, cur)
	}
	w := astro.IdentityAffine()
	for i := len(chain) - 1; i >= 0; i-- {
		w = w.Then(g.nodes[chain[i]].Local())
	}
	return w, nil
}

// WorldPosition returns where the origin of id lands in world space.
func (g *Graph) WorldPosition(id NodeID) (astro.Vec3, error) {
	w, err := g.World(id)
	if err != nil {
		return astro.Vec3{}, err
	}
	return w.Origin(), nil
}

// Walk visits every node depth-first from the root with its world
// transform. Returning false from fn skips the node's subtree. fn must not
// modify the graph.
func (g *Graph) Walk(fn func(id NodeID, n Node, world astro.Affine) bool) {
	g.walk(Root, astro.IdentityAffine(), fn)
}

func (g *Graph) walk(id NodeID, parent astro.Affine, fn func(NodeID, Node, astro.Affine) bool) {
	n := &g.nodes[id]
	world := parent
	if id != Root {
		world = parent.Then(n.Local())
	}
	if !fn(id, *n, world) {
		return
	}
	for _, c := range n.children {
		g.walk(c, world, fn)
	}
}
