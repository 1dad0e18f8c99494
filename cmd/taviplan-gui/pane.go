package main

import (
	"github.com/openmpr/taviplan/internal/viewport"
	"github.com/openmpr/taviplan/pkg/geometry"
	"github.com/openmpr/taviplan/pkg/viewer"
)

// slicePane adapts a viewer.SliceView to the planner's viewport
// contract.
type slicePane struct {
	view *viewer.SliceView
}

func newSlicePane(view *viewer.SliceView) *slicePane {
	return &slicePane{view: view}
}

func (p *slicePane) ID() string {
	return p.view.ID()
}

func (p *slicePane) Camera() viewport.Camera {
	cam := p.view.Camera()
	return viewport.Camera{
		Position:        cam.Position,
		FocalPoint:      cam.FocalPoint,
		ViewPlaneNormal: cam.ViewPlaneNormal,
		ViewUp:          cam.ViewUp,
		ParallelScale:   cam.ParallelScale,
	}
}

func (p *slicePane) SetCamera(c viewport.Camera) {
	cam := p.view.Camera()
	cam.Position = c.Position
	cam.FocalPoint = c.FocalPoint
	cam.ViewPlaneNormal = c.ViewPlaneNormal
	cam.ViewUp = c.ViewUp
	if c.ParallelScale > 0 {
		cam.ParallelScale = c.ParallelScale
	}
	p.view.SetCamera(cam)
}

func (p *slicePane) CanvasToWorld(x, y float64) geometry.Vector3 {
	wx, wy, wz := p.view.CanvasToWorld(x, y)
	return geometry.Vector3{X: wx, Y: wy, Z: wz}
}

func (p *slicePane) WorldToCanvas(pt geometry.Vector3) (float64, float64) {
	w, h := p.view.CanvasSize()
	return p.view.Camera().WorldToCanvas(pt, w, h)
}

func (p *slicePane) CanvasSize() (width, height float64) {
	return p.view.CanvasSize()
}

func (p *slicePane) Render() {
	p.view.Render()
}

func (p *slicePane) WindowLevel() (center, width float64) {
	return p.view.WindowLevelValues()
}

func (p *slicePane) SetWindowLevel(center, width float64) {
	p.view.SetWindowLevelValues(center, width)
	p.view.Render()
}
