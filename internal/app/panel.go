package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/openmpr/taviplan/internal/landmark"
	"github.com/openmpr/taviplan/internal/measurement"
	"github.com/openmpr/taviplan/internal/viewport"
	"github.com/openmpr/taviplan/internal/volume"
	"github.com/openmpr/taviplan/pkg/geometry"
	"github.com/openmpr/taviplan/pkg/viewer"
)

// landmarkHandle is the retained per-panel draw resource of one
// landmark.
type landmarkHandle struct {
	color rl.Color
}

func newSlicePanel(id string, cam *viewer.SliceCamera, vol *volume.Volume, winCenter, winWidth float64) *slicePanel {
	return &slicePanel{
		id:        id,
		cam:       cam,
		vol:       vol,
		winCenter: winCenter,
		winWidth:  winWidth,
		handles: landmark.NewHandleRegistry(func(lm landmark.Landmark) any {
			return landmarkHandle{color: measurement.ColorFromHex(lm.Color)}
		}, nil),
		dirty: true,
	}
}

// ID implements the planner viewport contract
func (p *slicePanel) ID() string { return p.id }

func (p *slicePanel) Camera() viewport.Camera {
	return viewport.Camera{
		Position:        p.cam.Position,
		FocalPoint:      p.cam.FocalPoint,
		ViewPlaneNormal: p.cam.ViewPlaneNormal,
		ViewUp:          p.cam.ViewUp,
		ParallelScale:   p.cam.ParallelScale,
	}
}

func (p *slicePanel) SetCamera(c viewport.Camera) {
	p.cam.Position = c.Position
	p.cam.FocalPoint = c.FocalPoint
	p.cam.ViewPlaneNormal = c.ViewPlaneNormal
	p.cam.ViewUp = c.ViewUp
	if c.ParallelScale > 0 {
		p.cam.ParallelScale = c.ParallelScale
	}
	p.dirty = true
}

func (p *slicePanel) CanvasToWorld(x, y float64) geometry.Vector3 {
	return p.cam.CanvasToWorld(x, y, float64(p.rect.Width), float64(p.rect.Height))
}

func (p *slicePanel) WorldToCanvas(world geometry.Vector3) (float64, float64) {
	return p.cam.WorldToCanvas(world, float64(p.rect.Width), float64(p.rect.Height))
}

func (p *slicePanel) CanvasSize() (float64, float64) {
	return float64(p.rect.Width), float64(p.rect.Height)
}

// Render marks the slice texture stale; the draw pass rebuilds it
func (p *slicePanel) Render() { p.dirty = true }

// WindowLevel implements the optional window/level capability
func (p *slicePanel) WindowLevel() (center, width float64) {
	return p.winCenter, p.winWidth
}

func (p *slicePanel) SetWindowLevel(center, width float64) {
	p.winCenter, p.winWidth = center, width
	p.dirty = true
}

// contains reports whether a screen position falls inside the panel
func (p *slicePanel) contains(pos rl.Vector2) bool {
	return rl.CheckCollisionPointRec(pos, p.rect)
}

// toLocal converts a screen position to panel-local canvas pixels
func (p *slicePanel) toLocal(pos rl.Vector2) (float64, float64) {
	return float64(pos.X - p.rect.X), float64(pos.Y - p.rect.Y)
}

// setRect repositions the panel after a window resize. A size change
// invalidates the slice texture.
func (p *slicePanel) setRect(rect rl.Rectangle) {
	if rect.Width != p.rect.Width || rect.Height != p.rect.Height {
		p.dirty = true
	}
	p.rect = rect
}

// refreshTexture resamples the slice when stale
func (p *slicePanel) refreshTexture() {
	if !p.dirty || p.rect.Width <= 0 || p.rect.Height <= 0 {
		return
	}
	img := viewer.RenderSlice(p.vol, p.cam, int(p.rect.Width), int(p.rect.Height), p.winCenter, p.winWidth)
	if p.texValid {
		rl.UnloadTexture(p.tex)
	}
	rlImg := rl.NewImageFromImage(img)
	p.tex = rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	p.texValid = true
	p.dirty = false
}

// unload releases the GPU texture
func (p *slicePanel) unload() {
	p.handles.Clear()
	if p.texValid {
		rl.UnloadTexture(p.tex)
		p.texValid = false
	}
}
