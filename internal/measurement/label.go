package measurement

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Label is a boxed text annotation, anchored centered above its screen
// position (the annulus distance readout, landmark kind captions).
type Label struct {
	Text      string
	ScreenPos rl.Vector2
	Color     rl.Color
}

// Draw renders the label and returns its bounding rectangle for
// hit-testing by the host.
func (l *Label) Draw(font rl.Font, fontSize float32, padding float32) rl.Rectangle {
	textSize := rl.MeasureTextEx(font, l.Text, fontSize, 1)

	rect := rl.Rectangle{
		X:      l.ScreenPos.X - textSize.X/2 - padding,
		Y:      l.ScreenPos.Y - padding,
		Width:  textSize.X + 2*padding,
		Height: textSize.Y + 2*padding,
	}

	rl.DrawRectangleRec(rect, rl.NewColor(20, 20, 20, 220))
	rl.DrawRectangleLinesEx(rect, 2, l.Color)

	textPos := rl.Vector2{
		X: l.ScreenPos.X - textSize.X/2,
		Y: l.ScreenPos.Y,
	}
	rl.DrawTextEx(font, l.Text, textPos, fontSize, 1, l.Color)

	return rect
}
