package main

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	"github.com/openmpr/taviplan/internal/config"
	"github.com/openmpr/taviplan/internal/crosshair"
	"github.com/openmpr/taviplan/internal/landmark"
	"github.com/openmpr/taviplan/internal/overlay"
	"github.com/openmpr/taviplan/internal/planner"
	"github.com/openmpr/taviplan/internal/viewport"
	"github.com/openmpr/taviplan/internal/volume"
	"github.com/openmpr/taviplan/pkg/analysis"
	"github.com/openmpr/taviplan/pkg/geometry"
	"github.com/openmpr/taviplan/pkg/viewer"
)

const (
	windowCenter = 200
	windowWidth  = 800
)

// App is the fyne planning host: three slice views driven by one
// planner, with a tool panel on the right.
type App struct {
	window  fyne.Window
	vol     *volume.Volume
	planner *planner.Planner
	panes   []*slicePane

	landmarkLabel *widget.Label
	annulusLabel  *widget.Label
	statusLabel   *widget.Label
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "taviplan-gui"})

	vol := volume.DefaultPhantom()
	if len(os.Args) > 1 {
		loaded, err := volume.Read(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading volume: %v\n", err)
			os.Exit(1)
		}
		vol = loaded
	}

	a := fyneapp.New()
	w := a.NewWindow("taviplan")

	host := &App{window: w, vol: vol}
	if err := host.setup(config.Default(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w.Resize(fyne.NewSize(1300, 860))
	w.ShowAndRun()
}

func (a *App) setup(cfg config.Config, logger *log.Logger) error {
	center := a.vol.Center()
	extent := a.vol.Extent()

	axial := newSlicePane(viewer.NewSliceView("axial", a.vol,
		viewer.NewAxialCamera(center, extent.X, extent.Y), windowCenter, windowWidth))
	sagittal := newSlicePane(viewer.NewSliceView("sagittal", a.vol,
		viewer.NewSagittalCamera(center, extent.Y, extent.Z), windowCenter, windowWidth))
	coronal := newSlicePane(viewer.NewSliceView("coronal", a.vol,
		viewer.NewCoronalCamera(center, extent.X, extent.Z), windowCenter, windowWidth))
	a.panes = []*slicePane{axial, sagittal, coronal}

	views, err := viewport.NewSet(axial.ID(), axial, sagittal, coronal)
	if err != nil {
		return err
	}

	a.landmarkLabel = widget.NewLabel("Landmarks: 0")
	a.annulusLabel = widget.NewLabel("Annulus: not defined")
	a.statusLabel = widget.NewLabel("")

	a.planner = planner.New(cfg, views, a.vol, logger)
	a.planner.SetOnLandmarksChanged(func(landmarks []planner.LandmarkInfo) {
		a.landmarkLabel.SetText(fmt.Sprintf("Landmarks: %d", len(landmarks)))
	})
	a.planner.SetOnAnnulusDefined(func(an analysis.Annulus) {
		a.annulusLabel.SetText(fmt.Sprintf("Annulus: %.1f mm diameter", an.Diameter))
	})
	a.planner.SetOnError(func(err error) {
		a.statusLabel.SetText(err.Error())
	})

	for _, pane := range a.panes {
		a.wirePane(pane)
	}
	a.planner.Activate(center)

	grid := container.NewGridWithColumns(2,
		axial.view, sagittal.view, coronal.view, a.buildToolPanel())
	a.window.SetContent(grid)
	return nil
}

func (a *App) wirePane(pane *slicePane) {
	id := pane.ID()
	spacing := a.vol.SliceSpacing()
	cam := pane.view.Camera()
	pane.view.SetSliceStep(spacing[geometry.DominantAxis(cam.ViewPlaneNormal)])

	pane.view.SetPointerHandlers(
		func(x, y float64) bool {
			return a.planner.HandlePointerDown(crosshair.PointerEvent{ViewportID: id, X: x, Y: y})
		},
		func(x, y float64) {
			a.planner.HandlePointerMove(crosshair.PointerEvent{ViewportID: id, X: x, Y: y})
		},
		func() {
			a.planner.HandlePointerUp(crosshair.PointerEvent{ViewportID: id})
		},
	)
	pane.view.SetOnCameraChanged(func() {
		a.planner.CameraChanged(id)
	})
	pane.view.SetOverlay(func(img *image.RGBA) {
		a.drawOverlay(pane, img)
	})
}

// drawOverlay composites the crosshair, landmarks and centerline curve
// over one freshly rendered slice image.
func (a *App) drawOverlay(pane *slicePane, img *image.RGBA) {
	id := pane.ID()
	frame := overlay.Frame{
		Crosshair:   a.planner.Machine().Geometry(id),
		ShowMarkers: id == "axial",
		Polylines:   a.planner.Curve().Project(pane, a.planner.Engine()),
	}

	for _, lm := range a.planner.Store().All() {
		if !a.planner.Engine().Visible(lm.ID, id) {
			continue
		}
		x, y := pane.WorldToCanvas(lm.Position)
		frame.Dots = append(frame.Dots, overlay.Dot{
			Circle: overlay.Circle{Center: overlay.Point{X: x, Y: y}, Radius: 5},
			Color:  landmark.ColorFor(lm.Kind),
			Filled: true,
		})
	}

	if text := a.planner.Machine().FormattedAnnulusDistance(); text != "" && frame.Crosshair != nil {
		frame.Labels = append(frame.Labels, overlay.Label{
			Pos:  overlay.Point{X: frame.Crosshair.Center.X + 14, Y: frame.Crosshair.Center.Y - 14},
			Text: text,
		})
	}

	backend := overlay.NewRasterBackendOver(img)
	if err := backend.Draw(frame); err != nil {
		return
	}
	draw.Draw(img, img.Bounds(), backend.Image(), image.Point{}, draw.Src)
}

func (a *App) buildToolPanel() fyne.CanvasObject {
	toolButtons := container.NewVBox(
		widget.NewButton("Place Centerline", func() {
			a.planner.SetPlacementGroup(landmark.GroupCenterline)
			a.statusLabel.SetText("Placing centerline points")
		}),
		widget.NewButton("Place Cusp Nadirs", func() {
			a.planner.SetPlacementGroup(landmark.GroupCusp)
			a.statusLabel.SetText("Placing cusp nadirs")
		}),
		widget.NewButton("Place Root Points", func() {
			a.planner.SetPlacementGroup(landmark.GroupRoot)
			a.statusLabel.SetText("Placing root points")
		}),
		widget.NewButton("Stop Placing", func() {
			a.planner.SetPlacementGroup("")
			a.statusLabel.SetText("")
		}),
	)

	forceCheck := widget.NewCheck("Show all landmarks", func(on bool) {
		a.planner.SetForceAllVisible(on)
		a.renderAll()
	})
	dragCheck := widget.NewCheck("Center dragging", func(on bool) {
		a.planner.EnableCenterDragging(on)
	})
	dragCheck.SetChecked(true)

	clearButton := widget.NewButton("Clear Landmarks", func() {
		a.planner.ClearGroup(landmark.GroupCenterline)
		a.planner.ClearGroup(landmark.GroupCusp)
		a.planner.ClearGroup(landmark.GroupRoot)
		a.landmarkLabel.SetText("Landmarks: 0")
		a.annulusLabel.SetText("Annulus: not defined")
		a.renderAll()
	})

	instructions := widget.NewLabel(
		"Drag the crosshair center to move all views.\n" +
			"Drag an arm marker in the axial view to rotate\n" +
			"the long-axis planes.\n" +
			"Scroll to step through slices.",
	)
	instructions.Wrapping = fyne.TextWrapWord

	panel := container.NewVBox(
		widget.NewLabel("Planning Tools:"),
		widget.NewSeparator(),
		toolButtons,
		widget.NewSeparator(),
		forceCheck,
		dragCheck,
		clearButton,
		widget.NewSeparator(),
		a.landmarkLabel,
		a.annulusLabel,
		widget.NewSeparator(),
		instructions,
		a.statusLabel,
	)
	return container.NewVScroll(panel)
}

func (a *App) renderAll() {
	for _, pane := range a.panes {
		pane.Render()
	}
}
