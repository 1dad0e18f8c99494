package measurement

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/openmpr/taviplan/internal/landmark"
	"github.com/openmpr/taviplan/pkg/geometry"
)

const (
	landmarkRadius = 5
	curveThickness = 2
)

var curveColor = rl.NewColor(0, 165, 255, 255)

// DrawLandmarks draws the visible landmarks as fixed-size screen-space
// dots in their per-kind colors. visible decides per landmark; a nil
// func draws all of them.
func DrawLandmarks(ctx RenderContext, landmarks []landmark.Landmark, visible func(id string) bool) {
	for _, lm := range landmarks {
		if visible != nil && !visible(lm.ID) {
			continue
		}
		screen := ctx.worldToScreen(lm.Position)
		col := ColorFromHex(lm.Color)
		rl.DrawCircleLines(int32(screen.X), int32(screen.Y), landmarkRadius+1, rl.White)
		rl.DrawCircle(int32(screen.X), int32(screen.Y), landmarkRadius, col)
	}
}

// DrawCurve draws the sampled centerline curve as connected screen
// segments, skipping stretches masked invisible for the current slice.
// A nil mask draws the whole curve.
func DrawCurve(ctx RenderContext, points []geometry.Vector3, mask []bool) {
	for i := 1; i < len(points); i++ {
		if mask != nil && (!maskAt(mask, i-1) || !maskAt(mask, i)) {
			continue
		}
		rl.DrawLineEx(
			ctx.worldToScreen(points[i-1]),
			ctx.worldToScreen(points[i]),
			curveThickness, curveColor)
	}
}

func maskAt(mask []bool, i int) bool {
	return i < len(mask) && mask[i]
}
