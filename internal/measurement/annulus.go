package measurement

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/openmpr/taviplan/pkg/analysis"
	"github.com/openmpr/taviplan/pkg/geometry"
)

const (
	annulusSegments  = 64
	cuspMarkerRadius = 6
	centerMarker     = 8
	circleThickness  = 2
)

var (
	annulusColor = rl.NewColor(255, 150, 255, 200)
	centerColor  = rl.NewColor(255, 100, 255, 255)
)

// DrawAnnulus draws the fitted annulus circle in its anatomical plane,
// its center marker and a diameter caption.
func DrawAnnulus(ctx RenderContext, a *analysis.Annulus) {
	if a == nil || a.Radius <= 0 {
		return
	}

	// In-plane basis from the fitted normal
	u, v := planeBasis(a.Normal)

	prev := circlePoint(a, u, v, 0)
	for i := 1; i <= annulusSegments; i++ {
		angle := float64(i) * 2 * math.Pi / annulusSegments
		next := circlePoint(a, u, v, angle)
		rl.DrawLineEx(
			ctx.worldToScreen(prev),
			ctx.worldToScreen(next),
			circleThickness, annulusColor)
		prev = next
	}

	centerScreen := ctx.worldToScreen(a.Center)
	rl.DrawCircleLines(int32(centerScreen.X), int32(centerScreen.Y), centerMarker, centerColor)
	rl.DrawCircle(int32(centerScreen.X), int32(centerScreen.Y), centerMarker-1, centerColor)

	label := Label{
		Text:      fmt.Sprintf("⌀ %.1f mm", a.Diameter),
		ScreenPos: rl.Vector2{X: centerScreen.X, Y: centerScreen.Y - 24},
		Color:     annulusColor,
	}
	label.Draw(ctx.Font, ctx.FontSize, 4)
}

// DrawDistanceReadout draws the implantation-depth readout near the
// crosshair center. Empty text draws nothing.
func DrawDistanceReadout(ctx RenderContext, at geometry.Vector3, text string) {
	if text == "" {
		return
	}
	screen := ctx.worldToScreen(at)
	label := Label{
		Text:      text,
		ScreenPos: rl.Vector2{X: screen.X + 18, Y: screen.Y - 18},
		Color:     rl.Yellow,
	}
	label.Draw(ctx.Font, ctx.FontSize, 4)
}

func circlePoint(a *analysis.Annulus, u, v geometry.Vector3, angle float64) geometry.Vector3 {
	return a.Center.
		Add(u.Mul(a.Radius * math.Cos(angle))).
		Add(v.Mul(a.Radius * math.Sin(angle)))
}

// planeBasis returns two orthonormal in-plane directions for a plane
// normal.
func planeBasis(normal geometry.Vector3) (geometry.Vector3, geometry.Vector3) {
	n := normal.Normalize()
	ref := geometry.NewVector3(0, 0, 1)
	if math.Abs(n.Dot(ref)) > 0.9 {
		ref = geometry.NewVector3(1, 0, 0)
	}
	u := n.Cross(ref).Normalize()
	v := n.Cross(u)
	return u, v
}
