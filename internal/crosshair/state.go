package crosshair

import "github.com/openmpr/taviplan/pkg/geometry"

// Mode is the current interaction gesture. Modes are mutually
// exclusive, entered from Idle on pointer-down and left on pointer-up.
type Mode int

const (
	Idle Mode = iota
	Rotating
	DraggingCenter
	Windowing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Rotating:
		return "rotating"
	case DraggingCenter:
		return "dragging-center"
	case Windowing:
		return "windowing"
	default:
		return "unknown"
	}
}

// State is the shared crosshair state. One instance is owned by the
// coordinating component and injected into whichever handler needs it;
// nothing here is process-global.
type State struct {
	// FixedPosition is the single world position all three viewports
	// draw their crosshair through. Nil until the first placement.
	FixedPosition *geometry.Vector3
	// RotationAngle accumulates across interaction sessions for the
	// lifetime of the tool.
	RotationAngle float64
	// IsDragging is set while a rotation gesture is in progress.
	IsDragging bool
	// IsCenterDragging is set while the center handle is being dragged.
	IsCenterDragging bool
	// AnnularPlaneDefined constrains center dragging to the short-axis
	// plane normal once the anatomical plane has been fixed.
	AnnularPlaneDefined bool
	// CenterDraggingDisabled blocks the center-drag gesture entirely.
	CenterDraggingDisabled bool
	// AnnulusReferencePosition, when set, enables the measurement-stage
	// distance readout relative to the annular plane.
	AnnulusReferencePosition *geometry.Vector3
}

// SetFixedPosition stores a fresh copy of the position
func (s *State) SetFixedPosition(p geometry.Vector3) {
	cp := p
	s.FixedPosition = &cp
}

// ClearFixedPosition unsets the crosshair
func (s *State) ClearFixedPosition() {
	s.FixedPosition = nil
}

// SetAnnulusReference stores a fresh copy of the reference position
func (s *State) SetAnnulusReference(p geometry.Vector3) {
	cp := p
	s.AnnulusReferencePosition = &cp
}

// ClearAnnulusReference disables the distance readout
func (s *State) ClearAnnulusReference() {
	s.AnnulusReferencePosition = nil
}
