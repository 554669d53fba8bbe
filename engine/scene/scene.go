package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameSnapshot is everything the renderer needs to draw one frame, copied out of the
// shared viewer state so drawing never reads state that input handlers mutate.
type FrameSnapshot struct {
	// ViewProj is the camera's combined view-projection matrix.
	ViewProj mgl32.Mat4

	// Model is the asset's model matrix.
	Model mgl32.Mat4

	// CameraPosition is the eye position in world space.
	CameraPosition mgl32.Vec3

	// Lights is the packed light rig.
	Lights light.GPULightUniform

	// Mesh is the asset geometry, or nil while the asset is still loading.
	Mesh *asset.Mesh
}

// Scene composes the light set, the single asset and the viewport camera.
// Scenes can be switched off via the Active flag, in which case the render loop clears
// the surface without drawing the asset.
// Not safe for concurrent use; it is owned by the render loop goroutine.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Asset returns the scene's asset handle.
	Asset() asset.Handle

	// Lights returns the scene's lights.
	//
	// Returns:
	//   - []light.Light: a copy of the light list
	Lights() []light.Light

	// AddLight appends a light to the scene.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// ClearLights removes every light from the scene.
	ClearLights()

	// Snapshot captures the current camera, asset and light state.
	//
	// Returns:
	//   - FrameSnapshot: the frame data; Mesh is nil when the asset is not loaded or the scene is inactive
	Snapshot() FrameSnapshot
}

// scene is the implementation of the Scene interface.
type scene struct {
	name   string
	active bool

	cam    camera.Camera
	handle asset.Handle
	lights []light.Light
}

var _ Scene = &scene{}

// NewScene creates an active Scene over the given camera and asset handle.
// Without WithLights the scene uses light.DefaultLights.
//
// Parameters:
//   - name: the scene's identifier
//   - cam: the viewport camera
//   - handle: the asset handle
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the configured scene
func NewScene(name string, cam camera.Camera, handle asset.Handle, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:   name,
		active: true,
		cam:    cam,
		handle: handle,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.lights == nil {
		s.lights = light.DefaultLights()
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) SetName(name string) {
	s.name = name
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Asset() asset.Handle {
	return s.handle
}

func (s *scene) Lights() []light.Light {
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) AddLight(l light.Light) {
	if l != nil {
		s.lights = append(s.lights, l)
	}
}

func (s *scene) ClearLights() {
	s.lights = s.lights[:0]
}

func (s *scene) Snapshot() FrameSnapshot {
	snap := FrameSnapshot{
		ViewProj:       s.cam.ViewProjectionMatrix(),
		Model:          s.handle.ModelMatrix(),
		CameraPosition: s.cam.Position(),
		Lights:         light.PackLights(s.lights),
	}
	if s.active {
		snap.Mesh = s.handle.Mesh()
	}
	return snap
}
