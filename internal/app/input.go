package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/openmpr/taviplan/internal/crosshair"
	"github.com/openmpr/taviplan/internal/landmark"
	"github.com/openmpr/taviplan/pkg/geometry"
)

// Scroll step in slices per wheel notch
const scrollSlices = 1.0

func (app *App) handleInput() {
	app.handleKeys()
	app.handleMouse()
}

func (app *App) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		app.selectTool(landmark.GroupCenterline, "centerline tool")
	case rl.IsKeyPressed(rl.KeyTwo):
		app.selectTool(landmark.GroupCusp, "cusp nadir tool")
	case rl.IsKeyPressed(rl.KeyThree):
		app.selectTool(landmark.GroupRoot, "root tool")
	case rl.IsKeyPressed(rl.KeyEscape):
		app.selectTool("", "tool cleared")
	case rl.IsKeyPressed(rl.KeyF):
		on := !app.planner.Engine().ForceAllVisible()
		app.planner.SetForceAllVisible(on)
		if on {
			app.setStatus("all landmarks visible")
		} else {
			app.setStatus("slice culling restored")
		}
	case rl.IsKeyPressed(rl.KeyD):
		disabled := app.planner.Machine().State().CenterDraggingDisabled
		app.planner.EnableCenterDragging(disabled)
	case rl.IsKeyPressed(rl.KeyX):
		app.deleteNearestLandmark()
	case rl.IsKeyPressed(rl.KeyR):
		app.resetOrbitCamera()
	case rl.IsKeyPressed(rl.KeyH):
		app.ui.showHelp = !app.ui.showHelp
	}
}

func (app *App) selectTool(g landmark.Group, status string) {
	app.interaction.placementTool = g
	app.planner.SetPlacementGroup(g)
	app.setStatus(status)
}

func (app *App) handleMouse() {
	pos := rl.GetMousePosition()
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.interaction.mouseDown = true
		app.interaction.lastMousePos = pos

		if rl.CheckCollisionPointRec(pos, app.overviewRect) {
			app.interaction.overviewDrag = true
			return
		}
		if panel := app.panelAt(pos); panel != nil {
			x, y := panel.toLocal(pos)
			app.interaction.gesturePanel = panel.id
			app.planner.HandlePointerDown(crosshair.PointerEvent{
				ViewportID: panel.id, X: x, Y: y, Shift: shift,
			})
		}
		return
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) && app.interaction.mouseDown {
		if app.interaction.overviewDrag {
			delta := rl.Vector2{X: pos.X - app.interaction.lastMousePos.X, Y: pos.Y - app.interaction.lastMousePos.Y}
			app.rotateOrbitCamera(delta)
			app.interaction.lastMousePos = pos
			return
		}
		// Route to the gesture panel even if the pointer left it, so
		// fast drags are not cut short.
		if panel, ok := app.panels[app.interaction.gesturePanel]; ok {
			x, y := panel.toLocal(pos)
			app.planner.HandlePointerMove(crosshair.PointerEvent{
				ViewportID: panel.id, X: x, Y: y, Shift: shift,
			})
		}
		app.interaction.lastMousePos = pos
		return
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && app.interaction.mouseDown {
		app.interaction.mouseDown = false
		app.interaction.overviewDrag = false
		if app.interaction.gesturePanel != "" {
			app.planner.HandlePointerUp(crosshair.PointerEvent{})
			app.interaction.gesturePanel = ""
		}
	}

	app.handleWheel(pos)
}

// handleWheel scrolls the slice under the cursor, or zooms the
// overview.
func (app *App) handleWheel(pos rl.Vector2) {
	wheel := rl.GetMouseWheelMove()
	if wheel == 0 {
		return
	}
	if rl.CheckCollisionPointRec(pos, app.overviewRect) {
		app.zoomOrbitCamera(wheel)
		return
	}
	panel := app.panelAt(pos)
	if panel == nil {
		return
	}

	spacing := app.vol.SliceSpacing()
	axis := dominantAxisOf(panel)
	panel.cam.Scroll(float64(wheel) * scrollSlices * spacing[axis])
	panel.dirty = true
	app.planner.CameraChanged(panel.id)
}

func (app *App) deleteNearestLandmark() {
	pos := rl.GetMousePosition()
	panel := app.panelAt(pos)
	if panel == nil {
		return
	}
	x, y := panel.toLocal(pos)
	world := panel.CanvasToWorld(x, y)

	radius := panel.cam.MMPerPixel(float64(panel.rect.Height)) * app.cfg.Crosshair.CenterHitRadiusPx
	if lm, ok := app.planner.Store().FindNearest(world, radius); ok {
		app.planner.RemoveLandmark(lm.ID)
		app.setStatus("landmark removed")
	}
}

func dominantAxisOf(p *slicePanel) int {
	return geometry.DominantAxis(p.cam.ViewPlaneNormal)
}

func (app *App) panelAt(pos rl.Vector2) *slicePanel {
	for _, id := range app.panelOrder {
		if app.panels[id].contains(pos) {
			return app.panels[id]
		}
	}
	return nil
}
