package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// SliceView is a fyne widget showing one resampled MPR slice plus an
// optional overlay composited on top of each frame.
type SliceView struct {
	widget.BaseWidget
	id      string
	sampler Sampler
	camera  *SliceCamera

	windowCenter float64
	windowWidth  float64
	sliceStepMM  float64

	frame  *canvas.Image
	width  float64
	height float64

	// overlay draws on top of the finished slice frame (crosshair,
	// landmarks, curve) in canvas pixel space.
	overlay func(img *image.RGBA)

	onPointerDown   func(x, y float64) bool
	onPointerMove   func(x, y float64)
	onPointerUp     func()
	onCameraChanged func()

	gestureActive bool
	lastDrag      *fyne.Position
}

// NewSliceView creates a slice view over the sampler with the given
// camera and initial display window.
func NewSliceView(id string, sampler Sampler, camera *SliceCamera, windowCenter, windowWidth float64) *SliceView {
	v := &SliceView{
		id:           id,
		sampler:      sampler,
		camera:       camera,
		windowCenter: windowCenter,
		windowWidth:  windowWidth,
		sliceStepMM:  1,
		frame:        canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
	}
	v.frame.FillMode = canvas.ImageFillStretch
	v.ExtendBaseWidget(v)
	return v
}

// ID returns the viewport identifier
func (v *SliceView) ID() string {
	return v.id
}

// Camera returns the view's slice camera. Mutations through the
// pointer must be followed by Render.
func (v *SliceView) Camera() *SliceCamera {
	return v.camera
}

// SetCamera replaces the slice camera
func (v *SliceView) SetCamera(c *SliceCamera) {
	v.camera = c
}

// WindowLevelValues returns the current display window
func (v *SliceView) WindowLevelValues() (center, width float64) {
	return v.windowCenter, v.windowWidth
}

// SetWindowLevelValues updates the display window; takes effect on the
// next Render.
func (v *SliceView) SetWindowLevelValues(center, width float64) {
	v.windowCenter, v.windowWidth = center, width
}

// SetSliceStep sets the scroll step in millimeters per wheel notch
func (v *SliceView) SetSliceStep(mm float64) {
	v.sliceStepMM = mm
}

// SetOverlay registers the per-frame overlay compositor
func (v *SliceView) SetOverlay(fn func(img *image.RGBA)) {
	v.overlay = fn
}

// SetPointerHandlers registers the gesture callbacks. The down handler
// reports whether it consumed the event.
func (v *SliceView) SetPointerHandlers(down func(x, y float64) bool, move func(x, y float64), up func()) {
	v.onPointerDown = down
	v.onPointerMove = move
	v.onPointerUp = up
}

// SetOnCameraChanged registers the camera-change callback, fired after
// slice scrolling.
func (v *SliceView) SetOnCameraChanged(fn func()) {
	v.onCameraChanged = fn
}

// CanvasSize returns the current canvas size in pixels
func (v *SliceView) CanvasSize() (width, height float64) {
	return v.width, v.height
}

// CanvasToWorld maps a canvas position onto the slice plane
func (v *SliceView) CanvasToWorld(x, y float64) (wx, wy, wz float64) {
	p := v.camera.CanvasToWorld(x, y, v.width, v.height)
	return p.X, p.Y, p.Z
}

// Render resamples the slice and recomposites the overlay
func (v *SliceView) Render() {
	w, h := int(v.width), int(v.height)
	if w <= 0 || h <= 0 {
		return
	}
	img := RenderSlice(v.sampler, v.camera, w, h, v.windowCenter, v.windowWidth)
	if v.overlay != nil {
		v.overlay(img)
	}
	v.frame.Image = img
	v.frame.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (v *SliceView) CreateRenderer() fyne.WidgetRenderer {
	return &sliceViewRenderer{view: v}
}

// Dragged feeds the active gesture. The first drag event of a gesture
// doubles as pointer-down at its start position.
func (v *SliceView) Dragged(event *fyne.DragEvent) {
	if !v.gestureActive {
		v.gestureActive = true
		startX := float64(event.Position.X - event.Dragged.DX)
		startY := float64(event.Position.Y - event.Dragged.DY)
		if v.onPointerDown != nil {
			v.onPointerDown(startX, startY)
		}
	}
	if v.onPointerMove != nil {
		v.onPointerMove(float64(event.Position.X), float64(event.Position.Y))
	}
	v.lastDrag = &event.Position
}

// DragEnd ends the active gesture
func (v *SliceView) DragEnd() {
	v.gestureActive = false
	v.lastDrag = nil
	if v.onPointerUp != nil {
		v.onPointerUp()
	}
}

// Tapped forwards a click as a down/up pair (used for landmark
// placement).
func (v *SliceView) Tapped(event *fyne.PointEvent) {
	if v.onPointerDown != nil {
		v.onPointerDown(float64(event.Position.X), float64(event.Position.Y))
	}
	if v.onPointerUp != nil {
		v.onPointerUp()
	}
}

// Scrolled moves the slice plane along its normal
func (v *SliceView) Scrolled(event *fyne.ScrollEvent) {
	step := v.sliceStepMM
	if event.Scrolled.DY > 0 {
		step = -step
	}
	v.camera.Scroll(step)
	v.Render()
	if v.onCameraChanged != nil {
		v.onCameraChanged()
	}
}

// sliceViewRenderer implements fyne.WidgetRenderer
type sliceViewRenderer struct {
	view *SliceView
}

func (r *sliceViewRenderer) Layout(size fyne.Size) {
	r.view.width = float64(size.Width)
	r.view.height = float64(size.Height)
	r.view.frame.Resize(size)
	r.view.Render()
}

func (r *sliceViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(256, 256)
}

func (r *sliceViewRenderer) Refresh() {
	canvas.Refresh(r.view)
}

func (r *sliceViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.frame}
}

func (r *sliceViewRenderer) Destroy() {}
