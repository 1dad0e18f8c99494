package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/openmpr/taviplan/internal/measurement"
	"github.com/openmpr/taviplan/internal/overlay"
)

const overlayFontSize = 16

var (
	panelBorderColor = rl.NewColor(70, 70, 70, 255)
	crosshairRl      = rl.NewColor(255, 200, 0, 255)
	overviewClear    = rl.NewColor(12, 12, 16, 255)
)

func (app *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	for _, id := range app.panelOrder {
		app.drawPanel(app.panels[id])
	}
	app.drawOverview()
	app.drawStatusBar()

	rl.EndDrawing()
}

// drawPanel draws one MPR panel: the slice texture, the landmark dots,
// the centerline curve and the crosshair overlay, all clipped to the
// panel rectangle.
func (app *App) drawPanel(p *slicePanel) {
	p.refreshTexture()
	if p.texValid {
		rl.DrawTexture(p.tex, int32(p.rect.X), int32(p.rect.Y), rl.White)
	}

	rl.BeginScissorMode(int32(p.rect.X), int32(p.rect.Y), int32(p.rect.Width), int32(p.rect.Height))
	app.drawCurveOn(p)
	app.drawLandmarksOn(p)
	app.drawCrosshairOn(p)
	rl.EndScissorMode()

	rl.DrawRectangleLinesEx(p.rect, 1, panelBorderColor)
	rl.DrawTextEx(app.font, p.id,
		rl.Vector2{X: p.rect.X + 8, Y: p.rect.Y + 6}, overlayFontSize, 1, rl.Gray)
}

func (app *App) drawLandmarksOn(p *slicePanel) {
	landmarks := app.planner.Store().All()
	p.handles.Sync(landmarks)
	for _, lm := range landmarks {
		if !app.planner.Engine().Visible(lm.ID, p.id) {
			continue
		}
		h, ok := p.handles.Handle(lm.ID)
		if !ok {
			continue
		}
		x, y := p.WorldToCanvas(lm.Position)
		sx, sy := int32(p.rect.X+float32(x)), int32(p.rect.Y+float32(y))
		rl.DrawCircleLines(sx, sy, 6, rl.White)
		rl.DrawCircle(sx, sy, 5, h.(landmarkHandle).color)
	}
}

func (app *App) drawCurveOn(p *slicePanel) {
	for _, line := range app.planner.Curve().Project(p, app.planner.Engine()) {
		col := measurement.ColorFromHex(line.Color)
		for i := 1; i < len(line.Points); i++ {
			a, b := line.Points[i-1], line.Points[i]
			rl.DrawLineEx(
				rl.Vector2{X: p.rect.X + float32(a.X), Y: p.rect.Y + float32(a.Y)},
				rl.Vector2{X: p.rect.X + float32(b.X), Y: p.rect.Y + float32(b.Y)},
				2, col)
		}
	}
}

// drawCrosshairOn draws the crosshair geometry computed by the state
// machine. Rotation markers only appear on the short-axis (axial)
// panel, where rotation is allowed.
func (app *App) drawCrosshairOn(p *slicePanel) {
	ch := app.planner.Machine().Geometry(p.id)
	if ch == nil {
		return
	}
	offset := func(pt overlay.Point) rl.Vector2 {
		return rl.Vector2{X: p.rect.X + float32(pt.X), Y: p.rect.Y + float32(pt.Y)}
	}

	for _, arm := range ch.Arms {
		rl.DrawLineEx(offset(arm.From), offset(arm.To), 1, crosshairRl)
	}
	center := offset(ch.Center)
	rl.DrawCircleLines(int32(center.X), int32(center.Y), float32(ch.CenterRadius), crosshairRl)

	if p.id == PanelAxial {
		for _, marker := range ch.Markers {
			mp := offset(marker.Center)
			rl.DrawCircleLines(int32(mp.X), int32(mp.Y), float32(marker.Radius), crosshairRl)
		}
	}

	if text := app.planner.Machine().FormattedAnnulusDistance(); text != "" {
		rl.DrawTextEx(app.font, text,
			rl.Vector2{X: center.X + 14, Y: center.Y - 22}, overlayFontSize, 1, rl.Yellow)
	}
}

// drawOverview renders the 3D context panel into its own texture:
// volume bounds, landmarks, the centerline curve and the fitted
// annulus.
func (app *App) drawOverview() {
	rect := app.overviewRect
	w, h := int32(rect.Width), int32(rect.Height)
	if w <= 0 || h <= 0 {
		return
	}
	app.ensureOverviewTexture(w, h)

	rl.BeginTextureMode(app.overviewTex)
	rl.ClearBackground(overviewClear)

	rl.BeginMode3D(app.orbit.camera)
	center := app.vol.Center()
	extent := app.vol.Extent()
	rl.DrawCubeWiresV(
		rl.Vector3{X: float32(center.X), Y: float32(center.Y), Z: float32(center.Z)},
		rl.Vector3{X: float32(extent.X), Y: float32(extent.Y), Z: float32(extent.Z)},
		rl.DarkGray)
	rl.EndMode3D()

	ctx := measurement.RenderContext{
		Camera:   app.orbit.camera,
		Font:     app.font,
		FontSize: overlayFontSize,
		Width:    w,
		Height:   h,
	}
	measurement.DrawCurve(ctx, app.planner.Curve().Points(), nil)
	measurement.DrawLandmarks(ctx, app.planner.Store().All(), nil)
	measurement.DrawAnnulus(ctx, app.planner.Annulus())
	if fixed := app.planner.Machine().State().FixedPosition; fixed != nil {
		measurement.DrawDistanceReadout(ctx, *fixed, app.planner.Machine().FormattedAnnulusDistance())
	}
	rl.EndTextureMode()

	// Render textures draw upside down
	rl.DrawTextureRec(app.overviewTex.Texture,
		rl.Rectangle{Width: float32(w), Height: -float32(h)},
		rl.Vector2{X: rect.X, Y: rect.Y}, rl.White)
	rl.DrawRectangleLinesEx(rect, 1, panelBorderColor)
	rl.DrawTextEx(app.font, "3d",
		rl.Vector2{X: rect.X + 8, Y: rect.Y + 6}, overlayFontSize, 1, rl.Gray)
}

func (app *App) ensureOverviewTexture(w, h int32) {
	if app.overviewTexValid && app.overviewTex.Texture.Width == w && app.overviewTex.Texture.Height == h {
		return
	}
	if app.overviewTexValid {
		rl.UnloadRenderTexture(app.overviewTex)
	}
	app.overviewTex = rl.LoadRenderTexture(w, h)
	app.overviewTexValid = true
}

// statusLine summarizes the planning state for the status bar
func (app *App) statusLine() string {
	tool := "none"
	if app.interaction.placementTool != "" {
		tool = string(app.interaction.placementTool)
	}
	return fmt.Sprintf("tool: %s | landmarks: %d | angle: %.0f°",
		tool, app.planner.Store().Len(),
		app.planner.Machine().State().RotationAngle*180/math.Pi)
}
