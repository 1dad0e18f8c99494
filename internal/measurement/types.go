// Package measurement draws the screen-space planning overlay of the
// raylib host: landmark markers, the fitted annulus circle, the
// centerline curve and the distance readout. Everything is projected
// to 2D and drawn in pixels so marker sizes stay constant under zoom.
package measurement

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/openmpr/taviplan/pkg/geometry"
)

// RenderContext carries the per-frame inputs of the overlay pass.
// Width and Height are the render-target size in pixels, so the pass
// works both on screen and inside a render texture.
type RenderContext struct {
	Camera   rl.Camera3D
	Font     rl.Font
	FontSize float32
	Width    int32
	Height   int32
}

func (ctx RenderContext) worldToScreen(p geometry.Vector3) rl.Vector2 {
	return rl.GetWorldToScreenEx(rl.Vector3{
		X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z),
	}, ctx.Camera, ctx.Width, ctx.Height)
}

// ColorFromHex converts a "#rrggbb" landmark color to a raylib color.
// Malformed strings come out magenta so they stand out in review.
func ColorFromHex(hex string) rl.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return rl.Magenta
	}
	return rl.NewColor(r, g, b, 255)
}
