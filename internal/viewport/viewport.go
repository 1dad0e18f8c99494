// Package viewport defines the contract the crosshair core requires
// from its rendering host. The core never draws slices itself; it sees
// each MPR view only through this interface.
package viewport

import (
	"errors"

	"github.com/openmpr/taviplan/pkg/geometry"
)

var (
	// ErrUnavailable means the requested viewport is not registered or
	// not enabled. Operations hitting it are no-ops.
	ErrUnavailable = errors.New("viewport: unavailable")
	// ErrCapability means the host's viewport lacks an optional
	// capability (e.g. window/level) the requested action needs. An
	// integration error, fatal to that action only.
	ErrCapability = errors.New("viewport: adapter capability missing")
)

// Camera mirrors the host camera of one MPR view. The slice plane
// passes through FocalPoint with normal ViewPlaneNormal.
type Camera struct {
	Position        geometry.Vector3
	FocalPoint      geometry.Vector3
	ViewPlaneNormal geometry.Vector3
	ViewUp          geometry.Vector3
	ParallelScale   float64 // World height of half the canvas, mm
}

// Viewport is one rendered MPR view
type Viewport interface {
	ID() string
	Camera() Camera
	SetCamera(Camera)
	// CanvasToWorld maps a canvas pixel position onto the current slice
	// plane in world coordinates.
	CanvasToWorld(x, y float64) geometry.Vector3
	// WorldToCanvas projects a world position to canvas pixels.
	WorldToCanvas(p geometry.Vector3) (x, y float64)
	CanvasSize() (width, height float64)
	Render()
}

// WindowLeveler is the optional display window/level capability
type WindowLeveler interface {
	WindowLevel() (center, width float64)
	SetWindowLevel(center, width float64)
}

// SpacingProvider supplies per-axis slice spacing of the loaded volume
type SpacingProvider interface {
	SliceSpacing() [3]float64
}

// Set is the fixed trio of MPR viewports with one designated short-axis
// view. Lookup failures surface as ErrUnavailable rather than panics so
// the interaction loop can treat them as no-ops.
type Set struct {
	views     map[string]Viewport
	order     []string
	shortAxis string
}

// NewSet builds a viewport set; shortAxisID must name one of the views
func NewSet(shortAxisID string, views ...Viewport) (*Set, error) {
	s := &Set{views: make(map[string]Viewport, len(views))}
	for _, v := range views {
		if v == nil {
			continue
		}
		s.views[v.ID()] = v
		s.order = append(s.order, v.ID())
	}
	if _, ok := s.views[shortAxisID]; !ok {
		return nil, ErrUnavailable
	}
	s.shortAxis = shortAxisID
	return s, nil
}

// Get returns a viewport by id
func (s *Set) Get(id string) (Viewport, error) {
	v, ok := s.views[id]
	if !ok {
		return nil, ErrUnavailable
	}
	return v, nil
}

// ShortAxisID returns the id of the designated short-axis view
func (s *Set) ShortAxisID() string {
	return s.shortAxis
}

// ShortAxis returns the designated short-axis viewport
func (s *Set) ShortAxis() Viewport {
	return s.views[s.shortAxis]
}

// LongAxis returns the viewports other than the short-axis one, in
// registration order.
func (s *Set) LongAxis() []Viewport {
	var out []Viewport
	for _, id := range s.order {
		if id != s.shortAxis {
			out = append(out, s.views[id])
		}
	}
	return out
}

// IDs returns all viewport ids in registration order
func (s *Set) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// All returns all viewports in registration order
func (s *Set) All() []Viewport {
	out := make([]Viewport, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.views[id])
	}
	return out
}

// RenderAll forces one combined render of every view. Dependent camera
// updates go through this so no frame shows a partially-updated pair.
func (s *Set) RenderAll() {
	for _, id := range s.order {
		s.views[id].Render()
	}
}

// WindowLevelOf returns the window/level capability of a viewport, or
// ErrCapability when the adapter does not provide it.
func WindowLevelOf(v Viewport) (WindowLeveler, error) {
	wl, ok := v.(WindowLeveler)
	if !ok {
		return nil, ErrCapability
	}
	return wl, nil
}
