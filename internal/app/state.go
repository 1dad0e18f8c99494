package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/openmpr/taviplan/internal/landmark"
	"github.com/openmpr/taviplan/internal/volume"
	"github.com/openmpr/taviplan/pkg/viewer"
)

// Panel ids double as viewport ids
const (
	PanelAxial    = "axial"
	PanelSagittal = "sagittal"
	PanelCoronal  = "coronal"
	PanelOverview = "overview"
)

// slicePanel is one MPR panel of the raylib host. It implements the
// planner's viewport contract; canvas coordinates are panel-local
// pixels.
type slicePanel struct {
	id   string
	rect rl.Rectangle
	cam  *viewer.SliceCamera
	vol  *volume.Volume

	winCenter float64
	winWidth  float64

	// handles caches per-landmark draw resources for this panel,
	// reconciled against the store each frame.
	handles *landmark.HandleRegistry

	tex      rl.Texture2D
	texValid bool
	dirty    bool
}

// OrbitCameraState is the 3D overview camera, orbiting the volume
// center.
type OrbitCameraState struct {
	camera   rl.Camera3D
	distance float32
	angleX   float32
	angleY   float32
	target   rl.Vector3

	defaultDist   float32
	defaultAngleX float32
	defaultAngleY float32
}

// InteractionState tracks which panel owns the active pointer gesture.
// Pointer moves keep routing to the gesture panel even when the mouse
// leaves its rectangle, matching global capture semantics.
type InteractionState struct {
	gesturePanel  string
	mouseDown     bool
	overviewDrag  bool
	lastMousePos  rl.Vector2
	placementTool landmark.Group
}

// UIState holds transient on-screen messaging
type UIState struct {
	statusText   string
	statusFrames int
	showHelp     bool
}
