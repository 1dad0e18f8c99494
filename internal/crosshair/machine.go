// Package crosshair implements the fixed-position reference crosshair
// drawn on all three MPR viewports and its interaction state machine:
// rotating the two long-axis planes around the short-axis normal,
// dragging the center landmark, and window/level adjustment.
package crosshair

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/openmpr/taviplan/internal/config"
	"github.com/openmpr/taviplan/internal/overlay"
	"github.com/openmpr/taviplan/internal/viewport"
	"github.com/openmpr/taviplan/pkg/analysis"
	"github.com/openmpr/taviplan/pkg/geometry"
)

// PointerEvent is one pointer sample routed from a host viewport.
// Coordinates are canvas pixels of that viewport.
type PointerEvent struct {
	ViewportID string
	X, Y       float64
	// Shift selects the window/level gesture on pointer-down.
	Shift bool
}

// Machine is the crosshair interaction state machine. All methods run
// on the UI goroutine.
type Machine struct {
	cfg   config.Crosshair
	wcfg  config.Windowing
	views *viewport.Set
	state *State
	log   *log.Logger

	mode       Mode
	activeView string

	// Rotating
	lastPointerAngle float64

	// DraggingCenter
	dragStartWorld geometry.Vector3
	dragStartFixed geometry.Vector3

	// Windowing
	winStartX, winStartY         float64
	winStartCenter, winStartWidth float64

	// onCenterMoved keeps the host's anatomical landmark (the valve
	// point) synchronized with the crosshair center.
	onCenterMoved func(geometry.Vector3)
	// onCamerasRotated fires after the dependent cameras have been
	// replaned and rendered, so the owner can re-cull slice visibility
	// against the new planes.
	onCamerasRotated func()
	// cprRotate, when registered, replaces the camera-rotation path for
	// the dependent viewports. Exactly one of the two strategies is
	// active at a time.
	cprRotate func(deltaAngle float64)
	// onError receives integration errors (missing adapter capability)
	onError func(error)
}

// NewMachine wires a state machine over the viewport set and shared state
func NewMachine(cfg config.Crosshair, wcfg config.Windowing, views *viewport.Set, state *State, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.Default()
	}
	return &Machine{
		cfg:   cfg,
		wcfg:  wcfg,
		views: views,
		state: state,
		log:   logger,
	}
}

// SetConfig swaps the interaction tuning. Applies to the next gesture;
// an in-flight gesture finishes under the old values.
func (m *Machine) SetConfig(cfg config.Crosshair, wcfg config.Windowing) {
	m.cfg = cfg
	m.wcfg = wcfg
}

// Mode returns the current gesture mode
func (m *Machine) Mode() Mode {
	return m.mode
}

// State returns the shared crosshair state
func (m *Machine) State() *State {
	return m.state
}

// SetOnCenterMoved registers the center-synchronization callback
func (m *Machine) SetOnCenterMoved(fn func(geometry.Vector3)) {
	m.onCenterMoved = fn
}

// SetOnCamerasRotated registers the rotation-replane callback
func (m *Machine) SetOnCamerasRotated(fn func()) {
	m.onCamerasRotated = fn
}

// SetCPRRotation registers (or, with nil, clears) the CPR rotation
// strategy that replaces the default camera rotation.
func (m *Machine) SetCPRRotation(fn func(deltaAngle float64)) {
	m.cprRotate = fn
}

// SetOnError registers the host's integration-error callback
func (m *Machine) SetOnError(fn func(error)) {
	m.onError = fn
}

// Geometry returns the computed crosshair overlay for one viewport, or
// nil when no fixed position is set or the viewport is unknown.
func (m *Machine) Geometry(viewportID string) *overlay.Crosshair {
	if m.state.FixedPosition == nil {
		return nil
	}
	vp, err := m.views.Get(viewportID)
	if err != nil {
		return nil
	}
	x, y := vp.WorldToCanvas(*m.state.FixedPosition)
	ch := overlay.ComputeCrosshair(
		overlay.Point{X: x, Y: y},
		m.state.RotationAngle,
		m.cfg.ArmLengthPx,
		m.cfg.RotationHitRadiusPx,
		m.cfg.CenterHitRadiusPx,
	)
	return &ch
}

// HandlePointerDown routes a pointer-down event. The return value
// reports whether the event was consumed; unconsumed events are free
// for other tools (e.g. landmark placement).
func (m *Machine) HandlePointerDown(ev PointerEvent) (handled bool) {
	defer m.recoverToIdle("pointer-down")

	if m.mode != Idle {
		return false
	}
	vp, err := m.views.Get(ev.ViewportID)
	if err != nil {
		// Unknown viewport: no-op, retried on the next interaction
		return false
	}

	// Hit priority: center handle, then rotation markers (short-axis
	// only), then the windowing modifier, else unhandled.
	if ch := m.Geometry(ev.ViewportID); ch != nil {
		p := overlay.Point{X: ev.X, Y: ev.Y}

		if ch.HitsCenter(p) && !m.state.CenterDraggingDisabled {
			m.mode = DraggingCenter
			m.activeView = ev.ViewportID
			m.state.IsCenterDragging = true
			m.dragStartWorld = vp.CanvasToWorld(ev.X, ev.Y)
			m.dragStartFixed = *m.state.FixedPosition
			return true
		}

		if ev.ViewportID == m.views.ShortAxisID() && ch.HitMarker(p) >= 0 {
			m.mode = Rotating
			m.activeView = ev.ViewportID
			m.state.IsDragging = true
			m.lastPointerAngle = pointerAngle(ch.Center, p)
			return true
		}
	}

	if ev.Shift {
		wl, err := viewport.WindowLevelOf(vp)
		if err != nil {
			m.reportError(fmt.Errorf("windowing on %s: %w", ev.ViewportID, err))
			return false
		}
		m.mode = Windowing
		m.activeView = ev.ViewportID
		m.winStartX, m.winStartY = ev.X, ev.Y
		m.winStartCenter, m.winStartWidth = wl.WindowLevel()
		return true
	}

	return false
}

// HandlePointerMove advances the active gesture. Hosts register the
// move handler globally once a gesture starts, so fast drags that leave
// the original viewport keep feeding the same gesture.
func (m *Machine) HandlePointerMove(ev PointerEvent) {
	defer m.recoverToIdle("pointer-move")

	switch m.mode {
	case Rotating:
		m.moveRotating(ev)
	case DraggingCenter:
		m.moveDraggingCenter(ev)
	case Windowing:
		m.moveWindowing(ev)
	}
}

// HandlePointerUp unconditionally returns to Idle, clearing the
// gesture-scoped transients.
func (m *Machine) HandlePointerUp(PointerEvent) {
	m.mode = Idle
	m.activeView = ""
	m.state.IsDragging = false
	m.state.IsCenterDragging = false
	m.dragStartWorld = geometry.Vector3{}
	m.dragStartFixed = geometry.Vector3{}
	m.winStartCenter, m.winStartWidth = 0, 0
	m.winStartX, m.winStartY = 0, 0
}

// moveRotating recomputes the pointer angle around the crosshair center
// in short-axis canvas space and applies the smoothed delta to the two
// long-axis viewports.
func (m *Machine) moveRotating(ev PointerEvent) {
	ch := m.Geometry(m.activeView)
	if ch == nil {
		return
	}

	angle := pointerAngle(ch.Center, overlay.Point{X: ev.X, Y: ev.Y})
	delta := normalizeAngle(angle - m.lastPointerAngle)
	m.lastPointerAngle = angle

	// Low-pass the raw delta before accumulating to damp jitter
	delta *= m.cfg.RotationSmoothing
	if delta == 0 {
		return
	}
	m.state.RotationAngle += delta

	applied := delta
	if m.cfg.InvertRotation {
		applied = -delta
	}

	if m.cprRotate != nil {
		m.cprRotate(applied)
		return
	}
	m.rotateDependentCameras(applied)
}

// rotateDependentCameras rotates the two long-axis cameras around the
// short-axis plane normal, keeping each camera at its distance from the
// fixed position and pinning the focal point there. The short-axis
// camera itself is never rotated; only its on-screen overlay turns.
// Both cameras update before a single combined render so no frame shows
// a half-rotated pair.
func (m *Machine) rotateDependentCameras(delta float64) {
	axis := m.views.ShortAxis().Camera().ViewPlaneNormal
	fixed := *m.state.FixedPosition

	for _, vp := range m.views.LongAxis() {
		cam := vp.Camera()

		normal, err := geometry.RotateAroundAxis(cam.ViewPlaneNormal, axis, delta)
		if err != nil {
			// Degenerate axis: skip this frame, keep the last valid angle
			m.log.Warn("rotation skipped", "viewport", vp.ID(), "err", err)
			return
		}
		up, err := geometry.RotateAroundAxis(cam.ViewUp, axis, delta)
		if err != nil {
			m.log.Warn("rotation skipped", "viewport", vp.ID(), "err", err)
			return
		}

		distance := cam.Position.Distance(fixed)
		cam.ViewPlaneNormal = normal.Normalize()
		cam.ViewUp = up.Normalize()
		cam.FocalPoint = fixed
		cam.Position = fixed.Add(cam.ViewPlaneNormal.Mul(distance))
		vp.SetCamera(cam)
	}

	m.views.RenderAll()
	if m.onCamerasRotated != nil {
		m.onCamerasRotated()
	}
}

// moveDraggingCenter converts the pointer to world space and moves the
// fixed position. Once the annular plane is defined the movement is
// constrained to the short-axis plane normal, which models scrolling
// along the centerline only.
func (m *Machine) moveDraggingCenter(ev PointerEvent) {
	vp, err := m.views.Get(m.activeView)
	if err != nil {
		return
	}

	world := vp.CanvasToWorld(ev.X, ev.Y)
	if isNaN3(world) {
		m.log.Warn("center drag skipped: adapter returned NaN", "viewport", m.activeView)
		return
	}

	var next geometry.Vector3
	if m.state.AnnularPlaneDefined {
		axis := m.views.ShortAxis().Camera().ViewPlaneNormal.Normalize()
		if axis.Length() == 0 {
			m.log.Warn("center drag skipped: degenerate short-axis normal")
			return
		}
		travel := geometry.ProjectOntoAxis(world.Sub(m.dragStartWorld), axis)
		next = m.dragStartFixed.Add(axis.Mul(travel))
	} else {
		next = world
	}

	m.state.SetFixedPosition(next)
	if m.onCenterMoved != nil {
		m.onCenterMoved(next)
	}
}

// moveWindowing maps the pointer delta since gesture start onto the
// display window: horizontal to width, inverted vertical to center.
func (m *Machine) moveWindowing(ev PointerEvent) {
	vp, err := m.views.Get(m.activeView)
	if err != nil {
		return
	}
	wl, err := viewport.WindowLevelOf(vp)
	if err != nil {
		m.reportError(fmt.Errorf("windowing on %s: %w", m.activeView, err))
		m.mode = Idle
		return
	}

	width := m.winStartWidth + (ev.X-m.winStartX)*m.wcfg.WidthPerPx
	if width < 1 {
		width = 1
	}
	center := m.winStartCenter - (ev.Y-m.winStartY)*m.wcfg.CenterPerPx
	wl.SetWindowLevel(center, width)
	vp.Render()
}

// AnnulusDistance returns the signed distance from the fixed position
// to the annulus reference along the short-axis plane normal. The sign
// is inverted so positive means below the reference plane. The second
// return is false while either position is unset.
func (m *Machine) AnnulusDistance() (float64, bool) {
	if m.state.FixedPosition == nil || m.state.AnnulusReferencePosition == nil {
		return 0, false
	}
	normal := m.views.ShortAxis().Camera().ViewPlaneNormal.Normalize()
	d := geometry.SignedDistanceToPlane(*m.state.FixedPosition, *m.state.AnnulusReferencePosition, normal)
	return -d, true
}

// FormattedAnnulusDistance renders the readout for display ("+4.2 mm"),
// or "" when the readout is inactive.
func (m *Machine) FormattedAnnulusDistance() string {
	d, ok := m.AnnulusDistance()
	if !ok {
		return ""
	}
	return analysis.FormatSignedDistance(d)
}

// reportError forwards integration errors to the host and the log
func (m *Machine) reportError(err error) {
	m.log.Error("crosshair", "err", err)
	if m.onError != nil {
		m.onError(err)
	}
}

// recoverToIdle catches adapter panics at the handler boundary so a
// throwing host cannot wedge the machine mid-gesture.
func (m *Machine) recoverToIdle(where string) {
	if r := recover(); r != nil {
		m.log.Error("adapter panic, resetting gesture", "during", where, "panic", r)
		m.HandlePointerUp(PointerEvent{})
	}
}

// pointerAngle is the canvas-space angle from the crosshair center to
// the pointer.
func pointerAngle(center, p overlay.Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// normalizeAngle wraps an angle delta into (-π, π] so crossing the
// atan2 seam does not produce a full-turn jump.
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func isNaN3(v geometry.Vector3) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}
