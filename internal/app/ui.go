package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const statusBarHeight = 28

var helpLines = []string{
	"1/2/3  centerline / cusp / root placement tool",
	"esc    clear tool",
	"drag   crosshair center or rotation markers (axial)",
	"shift  drag to adjust window/level",
	"wheel  scroll slices, zoom 3d view",
	"f      toggle force-all-visible",
	"d      toggle center dragging",
	"x      delete landmark under cursor",
	"r      reset 3d camera",
	"h      toggle this help",
}

// drawStatusBar draws the bottom bar: planning state on the left,
// transient status messages on the right, plus the help panel.
func (app *App) drawStatusBar() {
	h := int32(rl.GetScreenHeight())
	w := int32(rl.GetScreenWidth())
	barY := h - statusBarHeight

	rl.DrawRectangle(0, barY, w, statusBarHeight, rl.NewColor(24, 24, 28, 255))
	rl.DrawTextEx(app.font, app.statusLine(),
		rl.Vector2{X: 10, Y: float32(barY) + 6}, overlayFontSize, 1, rl.RayWhite)

	if app.ui.statusFrames > 0 {
		app.ui.statusFrames--
		size := rl.MeasureTextEx(app.font, app.ui.statusText, overlayFontSize, 1)
		rl.DrawTextEx(app.font, app.ui.statusText,
			rl.Vector2{X: float32(w) - size.X - 10, Y: float32(barY) + 6}, overlayFontSize, 1, rl.Yellow)
	}

	if app.ui.showHelp {
		app.drawHelp()
	}
}

func (app *App) drawHelp() {
	x, y := float32(10), float32(30)
	lineStep := float32(20)

	width := float32(0)
	for _, line := range helpLines {
		if size := rl.MeasureTextEx(app.font, line, overlayFontSize, 1); size.X > width {
			width = size.X
		}
	}
	rl.DrawRectangle(int32(x)-6, int32(y)-6,
		int32(width)+12, int32(lineStep)*int32(len(helpLines))+12, rl.NewColor(20, 20, 20, 220))

	for i, line := range helpLines {
		rl.DrawTextEx(app.font, line,
			rl.Vector2{X: x, Y: y + float32(i)*lineStep}, overlayFontSize, 1, rl.LightGray)
	}
}
