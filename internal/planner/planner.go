// Package planner wires the planning core together: the landmark
// store, the crosshair state machine, slice visibility and the
// centerline curve, behind one coordinator the rendering hosts drive
// with pointer and camera events.
package planner

import (
	"errors"
	"math"

	"github.com/charmbracelet/log"
	"github.com/openmpr/taviplan/internal/config"
	"github.com/openmpr/taviplan/internal/crosshair"
	"github.com/openmpr/taviplan/internal/curve"
	"github.com/openmpr/taviplan/internal/landmark"
	"github.com/openmpr/taviplan/internal/viewport"
	"github.com/openmpr/taviplan/internal/visibility"
	"github.com/openmpr/taviplan/pkg/analysis"
	"github.com/openmpr/taviplan/pkg/geometry"
)

// LandmarkInfo is the landmark view handed to the host's change
// callback after every committed change.
type LandmarkInfo struct {
	ID       string
	Position geometry.Vector3
	Color    string
	Kind     landmark.Kind
}

// Planner coordinates the planning core for one loaded volume. All
// methods run on the UI goroutine.
type Planner struct {
	cfg   config.Config
	log   *log.Logger
	views *viewport.Set

	store   *landmark.Store
	state   *crosshair.State
	machine *crosshair.Machine
	engine  *visibility.Engine
	curve   *curve.Builder

	annulus *analysis.Annulus

	// placementGroup is the group the next unconsumed click places
	// into; empty disables placement.
	placementGroup landmark.Group
	// draggedLandmark is the landmark id under an active drag
	draggedLandmark string

	onLandmarksChanged  func([]LandmarkInfo)
	onVisibilityChanged func([]visibility.Change)
	onAnnulusDefined    func(analysis.Annulus)
	onError             func(error)

	active bool
}

// New wires a planner over the viewport set. spacing supplies
// the loaded volume's slice spacing for the visibility thresholds.
func New(cfg config.Config, views *viewport.Set, spacing viewport.SpacingProvider, logger *log.Logger) *Planner {
	if logger == nil {
		logger = log.Default()
	}
	state := &crosshair.State{}
	p := &Planner{
		cfg:     cfg,
		log:     logger,
		views:   views,
		store:   landmark.NewStore(),
		state:   state,
		machine: crosshair.NewMachine(cfg.Crosshair, cfg.Windowing, views, state, logger),
		engine:  visibility.NewEngine(cfg.Visibility, spacing),
		curve:   curve.NewBuilder(cfg.Curve, landmark.ColorFor(landmark.KindCenterline)),
	}
	p.machine.SetOnCenterMoved(p.syncValveLandmark)
	// Rotation replanes the long-axis slices, so their culling is stale
	// until recomputed
	p.machine.SetOnCamerasRotated(p.recullLongAxis)
	// The machine logs its own errors; only forward them to the host
	p.machine.SetOnError(func(err error) {
		if p.onError != nil {
			p.onError(err)
		}
	})
	return p
}

// Store exposes the landmark store for read access
func (p *Planner) Store() *landmark.Store { return p.store }

// Machine exposes the crosshair state machine
func (p *Planner) Machine() *crosshair.Machine { return p.machine }

// Engine exposes the slice-visibility engine
func (p *Planner) Engine() *visibility.Engine { return p.engine }

// Curve exposes the centerline curve builder
func (p *Planner) Curve() *curve.Builder { return p.curve }

// Annulus returns the fitted annulus, nil until the cusp group
// completes.
func (p *Planner) Annulus() *analysis.Annulus { return p.annulus }

// SetOnLandmarksChanged registers the host callback fired after every
// committed landmark change.
func (p *Planner) SetOnLandmarksChanged(fn func([]LandmarkInfo)) {
	p.onLandmarksChanged = fn
}

// SetOnVisibilityChanged registers the host callback receiving
// visibility flips (to show or hide landmark handles).
func (p *Planner) SetOnVisibilityChanged(fn func([]visibility.Change)) {
	p.onVisibilityChanged = fn
}

// SetOnAnnulusDefined registers the host callback fired once when the
// third cusp nadir completes the annulus fit. Subsequent cusp drags
// re-fit the plane without re-firing; hosts read Annulus() for the
// current fit.
func (p *Planner) SetOnAnnulusDefined(fn func(analysis.Annulus)) {
	p.onAnnulusDefined = fn
}

// SetOnError registers the integration-error callback
func (p *Planner) SetOnError(fn func(error)) {
	p.onError = fn
}

// SetPlacementGroup selects the landmark group the next unconsumed
// click places into; empty disables click placement.
func (p *Planner) SetPlacementGroup(g landmark.Group) {
	p.placementGroup = g
}

// EnableCenterDragging toggles the crosshair center drag tool
func (p *Planner) EnableCenterDragging(on bool) {
	p.state.CenterDraggingDisabled = !on
}

// SetForceAllVisible toggles the measurement-stage override showing
// every landmark regardless of slice distance.
func (p *Planner) SetForceAllVisible(on bool) {
	changes := p.engine.SetForceAllVisible(on, p.store.All(), p.views.All())
	p.emitVisibility(changes)
}

// ApplyConfig swaps the interaction and visibility tuning at runtime,
// then re-derives everything that depends on it. Landmarks and the
// crosshair position survive the swap.
func (p *Planner) ApplyConfig(cfg config.Config) {
	p.cfg = cfg
	p.machine.SetConfig(cfg.Crosshair, cfg.Windowing)
	p.engine.SetConfig(cfg.Visibility)
	p.curve.SetConfig(cfg.Curve)
	p.refreshDerived(landmark.GroupCenterline)
	p.RecomputeAll()
	p.log.Info("configuration applied", "smoothing", cfg.Crosshair.RotationSmoothing)
}

// RegisterCPRRotation installs (or with nil clears) the CPR rotation
// strategy on the crosshair machine.
func (p *Planner) RegisterCPRRotation(fn func(deltaAngle float64)) {
	p.machine.SetCPRRotation(fn)
}

// Active reports whether a crosshair position is set, which is what
// gates the host's continuous redraw loop.
func (p *Planner) Active() bool { return p.active }

// Activate sets the crosshair fixed position and starts the planning
// interaction.
func (p *Planner) Activate(position geometry.Vector3) {
	p.state.SetFixedPosition(position)
	p.active = true
	p.RecomputeAll()
}

// Deactivate clears the crosshair; the host stops its redraw loop
func (p *Planner) Deactivate() {
	p.state.ClearFixedPosition()
	p.active = false
}

// HandlePointerDown routes a pointer-down through the crosshair
// machine, then the landmark drag tool, then click placement. Returns
// whether anything consumed the event.
func (p *Planner) HandlePointerDown(ev crosshair.PointerEvent) bool {
	if p.machine.HandlePointerDown(ev) {
		return true
	}
	if p.machine.Mode() != crosshair.Idle || ev.Shift {
		return false
	}

	vp, err := p.views.Get(ev.ViewportID)
	if err != nil {
		return false
	}
	world := vp.CanvasToWorld(ev.X, ev.Y)

	// Landmark drag: grab radius is the center hit radius converted to
	// world units at the pointer position.
	radius := grabRadius(vp, ev, p.cfg.Crosshair.CenterHitRadiusPx)
	if lm, ok := p.store.FindNearest(world, radius); ok {
		p.draggedLandmark = lm.ID
		return true
	}

	if p.placementGroup != "" {
		return p.placeLandmark(p.placementGroup, world)
	}
	return false
}

// HandlePointerMove advances the active gesture
func (p *Planner) HandlePointerMove(ev crosshair.PointerEvent) {
	if p.draggedLandmark != "" {
		vp, err := p.views.Get(ev.ViewportID)
		if err != nil {
			return
		}
		p.moveLandmark(p.draggedLandmark, vp.CanvasToWorld(ev.X, ev.Y))
		return
	}
	p.machine.HandlePointerMove(ev)
}

// HandlePointerUp ends the active gesture
func (p *Planner) HandlePointerUp(ev crosshair.PointerEvent) {
	p.draggedLandmark = ""
	p.machine.HandlePointerUp(ev)
}

// CameraChanged re-culls every landmark and reports the flips; hosts
// call it after scrolling or replaning a viewport.
func (p *Planner) CameraChanged(viewportID string) {
	vp, err := p.views.Get(viewportID)
	if err != nil {
		return
	}
	p.emitVisibility(p.engine.RecomputeViewport(p.store.All(), vp))
}

// recullLongAxis re-culls against the two rotated long-axis planes
func (p *Planner) recullLongAxis() {
	for _, vp := range p.views.LongAxis() {
		p.emitVisibility(p.engine.RecomputeViewport(p.store.All(), vp))
	}
}

// RecomputeAll re-culls everything against every viewport
func (p *Planner) RecomputeAll() {
	for _, vp := range p.views.All() {
		p.emitVisibility(p.engine.RecomputeViewport(p.store.All(), vp))
	}
}

// RemoveLandmark deletes a landmark and refreshes the derived state
func (p *Planner) RemoveLandmark(id string) bool {
	lm, ok := p.store.Get(id)
	if !ok {
		return false
	}
	p.store.Remove(id)
	p.engine.Forget(id)
	if lm.Group == landmark.GroupCusp {
		p.dropAnnulus()
	}
	p.refreshDerived(lm.Group)
	p.emitLandmarks()
	return true
}

// ClearGroup removes a whole landmark group
func (p *Planner) ClearGroup(g landmark.Group) {
	for _, lm := range p.store.InGroup(g) {
		p.engine.Forget(lm.ID)
	}
	p.store.ClearGroup(g)
	if g == landmark.GroupCusp {
		p.dropAnnulus()
	}
	p.refreshDerived(g)
	p.emitLandmarks()
}

// placeLandmark adds a landmark; a full group makes the click a no-op
func (p *Planner) placeLandmark(group landmark.Group, world geometry.Vector3) bool {
	lm, err := p.store.Add(group, world)
	if err != nil {
		if errors.Is(err, landmark.ErrCapacity) {
			p.log.Info("group full, click ignored", "group", group)
			return false
		}
		p.reportError(err)
		return false
	}

	p.emitVisibility(p.engine.RecomputeLandmark(lm, p.views.All()))
	if group == landmark.GroupCusp && p.store.IsGroupComplete(landmark.GroupCusp) {
		p.defineAnnulus()
	}
	p.refreshDerived(group)
	p.emitLandmarks()
	return true
}

// moveLandmark updates a dragged landmark's position and the state
// derived from it. A non-finite adapter conversion never reaches the
// position store.
func (p *Planner) moveLandmark(id string, world geometry.Vector3) {
	if math.IsNaN(world.X) || math.IsNaN(world.Y) || math.IsNaN(world.Z) {
		p.log.Warn("landmark move skipped: adapter returned NaN", "id", id)
		return
	}
	if !p.store.UpdatePosition(id, world) {
		return
	}
	lm, _ := p.store.Get(id)
	p.emitVisibility(p.engine.RecomputeLandmark(lm, p.views.All()))
	if lm.Group == landmark.GroupCusp && p.store.IsGroupComplete(landmark.GroupCusp) {
		p.defineAnnulus()
	}
	p.refreshDerived(lm.Group)
	p.emitLandmarks()
}

// syncValveLandmark mirrors the crosshair center into the root-valve
// landmark while the center is dragged.
func (p *Planner) syncValveLandmark(position geometry.Vector3) {
	for _, lm := range p.store.InGroup(landmark.GroupRoot) {
		if lm.Kind == landmark.KindRootValve {
			p.moveLandmark(lm.ID, position)
			return
		}
	}
}

// defineAnnulus fits the annulus plane through the three cusp nadirs
// and arms the constrained-drag mode plus the distance readout.
func (p *Planner) defineAnnulus() {
	cusps := p.store.InGroup(landmark.GroupCusp)
	a, err := analysis.AnnulusFromCusps(cusps[0].Position, cusps[1].Position, cusps[2].Position)
	if err != nil {
		// Collinear nadirs: keep collecting positions, no plane yet
		p.log.Warn("annulus fit failed", "err", err)
		p.dropAnnulus()
		return
	}
	a.OrientToward(p.views.ShortAxis().Camera().ViewPlaneNormal)

	wasDefined := p.annulus != nil
	p.annulus = a
	p.state.AnnularPlaneDefined = true
	p.state.SetAnnulusReference(a.Center)
	// Snap the crosshair onto the plane center so the readout starts at 0
	p.state.SetFixedPosition(a.Center)
	p.syncValveLandmark(a.Center)
	// Later cusp drags re-fit the plane silently; the callback marks
	// the transition into the defined state only
	if !wasDefined && p.onAnnulusDefined != nil {
		p.onAnnulusDefined(*a)
	}
}

func (p *Planner) dropAnnulus() {
	p.annulus = nil
	p.state.AnnularPlaneDefined = false
	p.state.ClearAnnulusReference()
}

// refreshDerived rebuilds the state derived from one group's landmarks
func (p *Planner) refreshDerived(g landmark.Group) {
	if g == landmark.GroupCenterline {
		p.curve.Rebuild(p.store.InGroup(landmark.GroupCenterline))
	}
}

func (p *Planner) emitLandmarks() {
	if p.onLandmarksChanged == nil {
		return
	}
	all := p.store.All()
	infos := make([]LandmarkInfo, len(all))
	for i, lm := range all {
		infos[i] = LandmarkInfo{ID: lm.ID, Position: lm.Position, Color: lm.Color, Kind: lm.Kind}
	}
	p.onLandmarksChanged(infos)
}

func (p *Planner) emitVisibility(changes []visibility.Change) {
	if len(changes) == 0 || p.onVisibilityChanged == nil {
		return
	}
	p.onVisibilityChanged(changes)
}

func (p *Planner) reportError(err error) {
	p.log.Error("planner", "err", err)
	if p.onError != nil {
		p.onError(err)
	}
}

// grabRadius converts a pixel radius at the pointer position to world
// units using the viewport's own mapping.
func grabRadius(vp viewport.Viewport, ev crosshair.PointerEvent, px float64) float64 {
	a := vp.CanvasToWorld(ev.X, ev.Y)
	b := vp.CanvasToWorld(ev.X+px, ev.Y)
	return a.Distance(b)
}
