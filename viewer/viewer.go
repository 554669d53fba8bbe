// Package viewer wires the viewport, the asset handle, the input controllers and the scene into one
// application context shared by the render loop and the window callbacks.
package viewer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// app is the implementation of the App interface.
type app struct {
	logger *slog.Logger

	camera camera.Camera
	handle asset.Handle
	scene  scene.Scene

	drag  input.DragController
	zoom  input.ZoomController
	orbit input.OrbitController

	width    int
	height   int
	onLoaded func(mesh *asset.Mesh)
	loadErr  error
}

// App is the viewer's application context. It owns the single viewport camera and asset handle and
// passes them to the controllers, so there is no package-level state.
//
// All methods run on the render loop goroutine: input and key handlers from the window's event
// dispatch, Frame from the loop, and load completions from posted tasks.
type App interface {
	// HandleInput feeds a pointer event to the drag and zoom controllers.
	//
	// Parameters:
	//   - ev: the raw event
	//
	// Returns:
	//   - bool: true if a controller asked for the event's default action to be suppressed
	HandleInput(ev input.Event) bool

	// HandleKey reacts to a key press: R resets the view, O toggles the orbit animation.
	//
	// Parameters:
	//   - keyCode: the key code (see common.Key*)
	HandleKey(keyCode uint32)

	// Frame advances per-frame animation. Used as the engine's frame callback.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame (unused; the orbit uses a fixed step)
	Frame(deltaTime float32)

	// Load starts loading the asset. The handle is populated from a task on the loop goroutine.
	//
	// Parameters:
	//   - l: the loader, normally posting completions to the engine
	//   - path: the asset path or cache key
	Load(l loader.Loader, path string)

	// ResetView restores the camera, the asset orientation and the orbit clock.
	ResetView()

	// Camera returns the viewport camera.
	Camera() camera.Camera

	// Asset returns the asset handle.
	Asset() asset.Handle

	// Scene returns the scene drawn each frame.
	Scene() scene.Scene

	// Drag returns the drag-rotate controller.
	Drag() input.DragController

	// Zoom returns the wheel-zoom controller.
	Zoom() input.ZoomController

	// Orbit returns the orbit-animate controller.
	Orbit() input.OrbitController

	// LoadErr returns the load failure, if the asset failed to load.
	LoadErr() error
}

var _ App = &app{}

// NewApp builds the application context from the configuration.
//
// Parameters:
//   - cfg: a validated configuration
//   - options: functional options to configure the app
//
// Returns:
//   - App: the application context with an empty asset handle
func NewApp(cfg config.Config, options ...AppOption) App {
	a := &app{
		logger: slog.Default(),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}
	for _, opt := range options {
		opt(a)
	}

	cc := cfg.Camera
	ac := cfg.Asset
	a.camera = camera.NewCamera(
		camera.WithSize(a.width, a.height),
		camera.WithFov(cc.Fov),
		camera.WithNear(cc.Near),
		camera.WithFar(cc.Far),
		camera.WithPosition(cc.Position[0], cc.Position[1], cc.Position[2]),
		camera.WithTarget(ac.Position[0], ac.Position[1], ac.Position[2]),
		camera.WithZoomBounds(cc.MinZoom, cc.MaxZoom),
		camera.WithZoom(cc.Zoom),
		camera.WithZoomStep(cc.ZoomStep),
	)

	a.handle = asset.NewHandle(
		asset.WithScale(ac.Scale),
		asset.WithPosition(ac.Position[0], ac.Position[1], ac.Position[2]),
		asset.WithOrientation(ac.Pitch, ac.Yaw),
	)

	a.scene = scene.NewScene(common.Coalesce(cfg.Window.Title, "oxyview"), a.camera, a.handle)

	a.drag = input.NewDragController(a.camera, a.handle,
		input.WithSensitivity(cfg.Input.SensitivityX, cfg.Input.SensitivityY))
	a.zoom = input.NewZoomController(a.camera)
	a.orbit = input.NewOrbitController(a.handle, a.camera,
		input.WithOrbitStep(cfg.Input.OrbitStep),
		input.WithOrbitRadius(cfg.Input.OrbitRadius),
		input.WithOrbitPolicy(cfg.OrbitPolicy()),
		input.WithDragSource(a.drag),
		input.WithOrbitEnabled(cfg.Input.Orbit),
	)

	return a
}

func (a *app) HandleInput(ev input.Event) bool {
	suppressDrag := a.drag.Handle(ev)
	suppressZoom := a.zoom.Handle(ev)
	return suppressDrag || suppressZoom
}

func (a *app) HandleKey(keyCode uint32) {
	switch keyCode {
	case common.KeyR:
		a.ResetView()
	case common.KeyO:
		a.orbit.SetEnabled(!a.orbit.Enabled())
		a.logger.Info("orbit toggled", "enabled", a.orbit.Enabled())
	}
}

func (a *app) Frame(float32) {
	a.orbit.Step()
}

func (a *app) Load(l loader.Loader, path string) {
	a.logger.Info("loading asset", "path", path)
	l.Load(path, a.complete)
}

// complete runs on the loop goroutine once the loader finishes.
func (a *app) complete(mesh *asset.Mesh, err error) {
	if err != nil {
		// the loader has already logged the failure; the viewer keeps running without an asset
		a.loadErr = err
		return
	}
	if err := a.handle.Populate(mesh); err != nil {
		a.logger.Warn("asset not populated", "err", err)
		return
	}
	if a.onLoaded != nil {
		a.onLoaded(mesh)
	}
}

func (a *app) ResetView() {
	a.drag.Stop()
	a.camera.Reset()
	a.handle.ResetOrientation()
	a.orbit.Reset()
}

func (a *app) Camera() camera.Camera {
	return a.camera
}

func (a *app) Asset() asset.Handle {
	return a.handle
}

func (a *app) Scene() scene.Scene {
	return a.scene
}

func (a *app) Drag() input.DragController {
	return a.drag
}

func (a *app) Zoom() input.ZoomController {
	return a.zoom
}

func (a *app) Orbit() input.OrbitController {
	return a.orbit
}

func (a *app) LoadErr() error {
	return a.loadErr
}
