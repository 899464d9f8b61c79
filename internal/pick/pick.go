// Package pick resolves a pointer position to the body under it.
package pick

import (
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/graph"
)

// Record ties a pickable mesh to the body it shows.
type Record struct {
	Node graph.NodeID
	Body body.Descriptor
}

// Locator reports the live world position of a node.
type Locator interface {
	WorldPosition(id graph.NodeID) (astro.Vec3, error)
}

// Hit is a successful pick.
type Hit struct {
	Record
	Index    int
	Distance float64
}

// Pick casts a ray from the camera through ndc and returns the nearest
// interactable it meets. Equal distances resolve to the earlier record.
// Records whose node cannot be located are skipped.
func Pick(ndc [2]float64, cam astro.Camera, loc Locator, interactables []Record) (Hit, bool) {
	if len(interactables) == 0 {
		return Hit{}, false
	}
	ray := cam.RayFromNDC(ndc[0], ndc[1])

	best := Hit{Index: -1}
	for i, rec := range interactables {
		center, err := loc.WorldPosition(rec.Node)
		if err != nil {
			continue
		}
		t, ok := ray.IntersectSphere(center, rec.Body.Radius)
		if !ok {
			continue
		}
		if best.Index < 0 || t < best.Distance {
			best = Hit{Record: rec, Index: i, Distance: t}
		}
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	return best, true
}

// NDC converts a surface cell to normalized device coordinates, sampling
// the cell centre. y grows downward on the surface and upward in NDC.
func NDC(x, y, width, height int) [2]float64 {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return [2]float64{
		(float64(x)+0.5)/float64(width)*2 - 1,
		-(float64(y)+0.5)/float64(height)*2 + 1,
	}
}
