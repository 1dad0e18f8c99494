package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// RasterBackend draws overlay frames onto an RGBA image with fogleman/gg.
// The fyne host composites the result over its slice image; it also
// serves snapshot export and tests.
type RasterBackend struct {
	dc *gg.Context
}

// NewRasterBackend creates a backend drawing onto a fresh transparent
// image of the given pixel size.
func NewRasterBackend(width, height int) *RasterBackend {
	return &RasterBackend{dc: gg.NewContext(width, height)}
}

// NewRasterBackendOver creates a backend drawing on top of an existing
// image (e.g. the rendered slice).
func NewRasterBackendOver(img image.Image) *RasterBackend {
	return &RasterBackend{dc: gg.NewContextForImage(img)}
}

// Image returns the composited result
func (b *RasterBackend) Image() image.Image {
	return b.dc.Image()
}

const (
	lineWidth  = 1.5
	curveWidth = 2.0
)

var crosshairColor = color.RGBA{R: 0xff, G: 0xc8, B: 0x00, A: 0xff}
var labelColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Draw renders one overlay frame
func (b *RasterBackend) Draw(frame Frame) error {
	dc := b.dc

	if ch := frame.Crosshair; ch != nil {
		dc.SetColor(crosshairColor)
		dc.SetLineWidth(lineWidth)
		for _, arm := range ch.Arms {
			dc.DrawLine(arm.From.X, arm.From.Y, arm.To.X, arm.To.Y)
			dc.Stroke()
		}

		if frame.ShowMarkers {
			for _, m := range ch.Markers {
				dc.DrawCircle(m.Center.X, m.Center.Y, m.Radius)
				dc.Stroke()
			}
		}

		dc.DrawCircle(ch.Center.X, ch.Center.Y, ch.CenterRadius)
		dc.Stroke()
	}

	for _, pl := range frame.Polylines {
		c, err := parseHexColor(pl.Color)
		if err != nil {
			return err
		}
		dc.SetColor(c)
		dc.SetLineWidth(curveWidth)
		for i := 1; i < len(pl.Points); i++ {
			dc.DrawLine(pl.Points[i-1].X, pl.Points[i-1].Y, pl.Points[i].X, pl.Points[i].Y)
		}
		dc.Stroke()
	}

	for _, dot := range frame.Dots {
		c, err := parseHexColor(dot.Color)
		if err != nil {
			return err
		}
		dc.SetColor(c)
		dc.DrawCircle(dot.Center.X, dot.Center.Y, dot.Radius)
		if dot.Filled {
			dc.Fill()
		} else {
			dc.Stroke()
		}
	}

	dc.SetColor(labelColor)
	for _, label := range frame.Labels {
		dc.DrawString(label.Text, label.Pos.X, label.Pos.Y)
	}

	return nil
}

// parseHexColor reads "#rrggbb" color tokens
func parseHexColor(s string) (color.RGBA, error) {
	var r, g, bl uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &bl); err != nil {
		return color.RGBA{}, fmt.Errorf("overlay: bad color token %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: bl, A: 0xff}, nil
}
