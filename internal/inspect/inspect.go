// Package inspect turns pointer activity into tooltip and detail-panel
// updates. It reads scene state and never changes it.
package inspect

import (
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/pick"
)

// Presenter is implemented by the shell that shows inspection results.
type Presenter interface {
	ShowTooltip(x, y int, name string)
	HideTooltip()
	OpenPanel(d body.Details)
}

// Scene is what the inspector needs from the scene.
type Scene interface {
	pick.Locator
	View() astro.Camera
	Interactables() []pick.Record
}

// Pointer is a pointer position in surface cells. OverChrome is set when
// the pointer is over UI chrome rather than the scene.
type Pointer struct {
	X, Y       int
	OverChrome bool
}

// Inspector routes pointer events to a Presenter.
type Inspector struct {
	scene     Scene
	presenter Presenter
	hovered   string
}

// New creates an inspector.
func New(scene Scene, presenter Presenter) *Inspector {
	return &Inspector{scene: scene, presenter: presenter}
}

// SetScene swaps the scene, for example after a catalogue reload.
func (in *Inspector) SetScene(s Scene) {
	in.scene = s
	in.hovered = ""
}

// Hovered returns the name under the pointer after the last Move.
func (in *Inspector) Hovered() string { return in.hovered }

// Move updates the tooltip for the body under the pointer. Over chrome it
// behaves like Leave.
func (in *Inspector) Move(p Pointer) {
	if p.OverChrome {
		in.Leave()
		return
	}
	hit, ok := in.pick(p)
	if !ok {
		in.Leave()
		return
	}
	in.hovered = hit.Body.Name
	in.presenter.ShowTooltip(p.X, p.Y, hit.Body.Name)
}

// Leave clears the hover state when the pointer leaves the canvas.
func (in *Inspector) Leave() {
	in.hovered = ""
	in.presenter.HideTooltip()
}

// Click opens the detail panel for the body under the pointer. Clicks on
// chrome are ignored. It reports whether a panel was opened.
func (in *Inspector) Click(p Pointer) (body.Descriptor, bool) {
	if p.OverChrome {
		return body.Descriptor{}, false
	}
	hit, ok := in.pick(p)
	if !ok {
		return body.Descriptor{}, false
	}
	in.presenter.OpenPanel(body.Describe(hit.Body))
	return hit.Body, true
}

func (in *Inspector) pick(p Pointer) (pick.Hit, bool) {
	cam := in.scene.View()
	ndc := pick.NDC(p.X, p.Y, cam.Width, cam.Height)
	return pick.Pick(ndc, cam, in.scene, in.scene.Interactables())
}
