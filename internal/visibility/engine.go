// Package visibility decides, per landmark and per viewport, whether a
// landmark should be rendered on the viewport's current slice. The rule
// is distance from the landmark to the slice plane against an adaptive
// threshold derived from the volume's slice spacing.
package visibility

import (
	"math"

	"github.com/openmpr/taviplan/internal/config"
	"github.com/openmpr/taviplan/internal/landmark"
	"github.com/openmpr/taviplan/internal/viewport"
	"github.com/openmpr/taviplan/pkg/geometry"
)

// Change records one visibility flip. Engines only report flips so
// hosts never re-render handles that did not change.
type Change struct {
	LandmarkID string
	ViewportID string
	Visible    bool
}

type pairKey struct {
	landmarkID string
	viewportID string
}

// Engine tracks per-(landmark, viewport) visibility. Owned by the UI
// goroutine; recomputation is triggered by camera changes and landmark
// moves, never by polling.
type Engine struct {
	cfg      config.Visibility
	spacing  viewport.SpacingProvider
	forceAll bool
	state    map[pairKey]bool
}

// NewEngine creates an engine using the given threshold tuning and the
// volume's spacing provider.
func NewEngine(cfg config.Visibility, spacing viewport.SpacingProvider) *Engine {
	return &Engine{
		cfg:     cfg,
		spacing: spacing,
		state:   make(map[pairKey]bool),
	}
}

// SetConfig swaps the threshold tuning; it applies on the next
// recompute.
func (e *Engine) SetConfig(cfg config.Visibility) {
	e.cfg = cfg
}

// Threshold returns the point-landmark visibility threshold for a
// viewport: max(landmarkRadius·k1, sliceSpacing·k2), where the spacing
// component is the one aligned with the slice normal's dominant axis.
func (e *Engine) Threshold(vp viewport.Viewport) float64 {
	return math.Max(e.cfg.LandmarkRadiusMM*e.cfg.RadiusFactor,
		e.dominantSpacing(vp)*e.cfg.SpacingFactor)
}

// CurveThreshold is the much tighter threshold applied to
// connection-curve samples. It is derived from slice spacing alone,
// without the landmark-radius floor, so at CT-realistic sub-millimeter
// spacing the curve reads as a slice intersection rather than a
// proximity halo.
func (e *Engine) CurveThreshold(vp viewport.Viewport) float64 {
	return e.dominantSpacing(vp) * e.cfg.CurveSpacingFactor
}

func (e *Engine) dominantSpacing(vp viewport.Viewport) float64 {
	cam := vp.Camera()
	spacing := e.spacing.SliceSpacing()
	return spacing[geometry.DominantAxis(cam.ViewPlaneNormal)]
}

// SetForceAllVisible toggles the measurement-stage override that shows
// every landmark regardless of slice distance. Returns the flips needed
// to reach the new mode. The override and normal slice culling are
// mutually exclusive; leaving the override re-culls on the next
// recompute.
func (e *Engine) SetForceAllVisible(on bool, landmarks []landmark.Landmark, views []viewport.Viewport) []Change {
	e.forceAll = on
	if on {
		var changes []Change
		for _, vp := range views {
			for _, lm := range landmarks {
				changes = append(changes, e.apply(lm.ID, vp.ID(), true)...)
			}
		}
		return changes
	}
	var changes []Change
	for _, vp := range views {
		changes = append(changes, e.RecomputeViewport(landmarks, vp)...)
	}
	return changes
}

// ForceAllVisible reports whether the override is active
func (e *Engine) ForceAllVisible() bool {
	return e.forceAll
}

// RecomputeViewport re-evaluates every landmark against one viewport's
// current slice plane. Call it after any camera-affecting operation on
// that viewport (scroll, rotation replane).
func (e *Engine) RecomputeViewport(landmarks []landmark.Landmark, vp viewport.Viewport) []Change {
	if e.forceAll {
		return nil
	}
	cam := vp.Camera()
	threshold := e.Threshold(vp)

	var changes []Change
	for _, lm := range landmarks {
		visible := planeDistance(lm.Position, cam) <= threshold
		changes = append(changes, e.apply(lm.ID, vp.ID(), visible)...)
	}
	return changes
}

// RecomputeLandmark re-evaluates one landmark against every viewport.
// Call it after the landmark moved.
func (e *Engine) RecomputeLandmark(lm landmark.Landmark, views []viewport.Viewport) []Change {
	if e.forceAll {
		return nil
	}
	var changes []Change
	for _, vp := range views {
		visible := planeDistance(lm.Position, vp.Camera()) <= e.Threshold(vp)
		changes = append(changes, e.apply(lm.ID, vp.ID(), visible)...)
	}
	return changes
}

// Visible returns the last computed visibility for a pair. Unknown
// pairs default to hidden.
func (e *Engine) Visible(landmarkID, viewportID string) bool {
	return e.state[pairKey{landmarkID, viewportID}]
}

// Forget drops all state for a removed landmark
func (e *Engine) Forget(landmarkID string) {
	for k := range e.state {
		if k.landmarkID == landmarkID {
			delete(e.state, k)
		}
	}
}

// CurveMask classifies each sampled curve point against one viewport's
// slice plane using the tight curve threshold. The force-all override
// applies to the curve as well.
func (e *Engine) CurveMask(points []geometry.Vector3, vp viewport.Viewport) []bool {
	mask := make([]bool, len(points))
	if e.forceAll {
		for i := range mask {
			mask[i] = true
		}
		return mask
	}
	cam := vp.Camera()
	threshold := e.CurveThreshold(vp)
	for i, p := range points {
		mask[i] = planeDistance(p, cam) <= threshold
	}
	return mask
}

// apply records a visibility value and returns a change only on a flip
func (e *Engine) apply(landmarkID, viewportID string, visible bool) []Change {
	k := pairKey{landmarkID, viewportID}
	if prev, known := e.state[k]; known && prev == visible {
		return nil
	}
	e.state[k] = visible
	return []Change{{LandmarkID: landmarkID, ViewportID: viewportID, Visible: visible}}
}

// planeDistance is the absolute distance from a point to the slice
// plane through the camera focal point.
func planeDistance(p geometry.Vector3, cam viewport.Camera) float64 {
	return math.Abs(geometry.SignedDistanceToPlane(p, cam.FocalPoint, cam.ViewPlaneNormal))
}
