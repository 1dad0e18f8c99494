package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/openmpr/taviplan/pkg/geometry"
	"github.com/openmpr/taviplan/pkg/viewer"
)

func sliceCameraAxial(center, extent geometry.Vector3) *viewer.SliceCamera {
	return viewer.NewAxialCamera(center, extent.X, extent.Y)
}

func sliceCameraSagittal(center, extent geometry.Vector3) *viewer.SliceCamera {
	return viewer.NewSagittalCamera(center, extent.Y, extent.Z)
}

func sliceCameraCoronal(center, extent geometry.Vector3) *viewer.SliceCamera {
	return viewer.NewCoronalCamera(center, extent.X, extent.Z)
}

// resetOrbitCamera frames the volume in the 3D overview
func (app *App) resetOrbitCamera() {
	center := app.vol.Center()
	extent := app.vol.Extent()
	size := float32(math.Max(extent.X, math.Max(extent.Y, extent.Z)))

	app.orbit.target = rl.Vector3{X: float32(center.X), Y: float32(center.Y), Z: float32(center.Z)}
	app.orbit.defaultDist = size * 2
	app.orbit.defaultAngleX = 0.5
	app.orbit.defaultAngleY = 0.8

	app.orbit.distance = app.orbit.defaultDist
	app.orbit.angleX = app.orbit.defaultAngleX
	app.orbit.angleY = app.orbit.defaultAngleY

	app.orbit.camera = rl.Camera3D{
		Target:     app.orbit.target,
		Up:         rl.Vector3{Z: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	app.updateOrbitCamera()
}

// updateOrbitCamera recomputes the overview camera position from its
// spherical angles.
func (app *App) updateOrbitCamera() {
	x := app.orbit.distance * float32(math.Cos(float64(app.orbit.angleX))) * float32(math.Sin(float64(app.orbit.angleY)))
	y := app.orbit.distance * float32(math.Cos(float64(app.orbit.angleX))) * float32(math.Cos(float64(app.orbit.angleY)))
	z := app.orbit.distance * float32(math.Sin(float64(app.orbit.angleX)))

	app.orbit.camera.Position = rl.Vector3{
		X: app.orbit.target.X + x,
		Y: app.orbit.target.Y + y,
		Z: app.orbit.target.Z + z,
	}
	app.orbit.camera.Target = app.orbit.target
}

// rotateOrbitCamera applies a mouse delta to the orbit angles
func (app *App) rotateOrbitCamera(delta rl.Vector2) {
	app.orbit.angleY += delta.X * 0.01
	app.orbit.angleX += delta.Y * 0.01

	// Clamp pitch short of the poles
	maxPitch := float32(math.Pi/2 - 0.1)
	if app.orbit.angleX > maxPitch {
		app.orbit.angleX = maxPitch
	}
	if app.orbit.angleX < -maxPitch {
		app.orbit.angleX = -maxPitch
	}
	app.updateOrbitCamera()
}

// zoomOrbitCamera scales the orbit distance
func (app *App) zoomOrbitCamera(wheel float32) {
	app.orbit.distance *= 1 - wheel*0.1
	if app.orbit.distance < 10 {
		app.orbit.distance = 10
	}
	app.updateOrbitCamera()
}
