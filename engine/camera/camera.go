package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraImpl is the implementation of the Camera interface.
// It is owned by the render loop goroutine and is not safe for concurrent use; every mutation
// happens from a loop callback, which never runs in parallel with another.
type cameraImpl struct {
	width  int
	height int

	fovDegrees float32
	near       float32
	far        float32
	aspect     float32

	zoom     float32
	minZoom  float32
	maxZoom  float32
	zoomStep float32

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	// initial values restored by Reset
	homeZoom     float32
	homePosition mgl32.Vec3
	homeTarget   mgl32.Vec3

	dirty            bool
	projectionMatrix mgl32.Mat4
}

// Camera holds the viewport state of the viewer: the render surface size in pixels and the
// perspective camera parameters (position, look-at target, zoom, field of view, clip planes).
//
// The projection matrix is recomputed lazily: Resize and zoom changes mark it dirty and the next
// ProjectionMatrix call rebuilds it.
type Camera interface {
	// Width returns the viewport width in pixels.
	Width() int

	// Height returns the viewport height in pixels.
	Height() int

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Fov returns the unzoomed vertical field of view in degrees.
	Fov() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Zoom returns the current zoom factor, always within [MinZoom, MaxZoom].
	//
	// Returns:
	//   - float32: the zoom factor (1 = no zoom)
	Zoom() float32

	// MinZoom returns the lower zoom bound.
	MinZoom() float32

	// MaxZoom returns the upper zoom bound.
	MaxZoom() float32

	// ZoomStep returns the zoom change applied per wheel notch.
	ZoomStep() float32

	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// Target returns the world-space point the camera looks at.
	Target() mgl32.Vec3

	// Dirty reports whether the projection must be recomputed before the next draw.
	Dirty() bool

	// Resize records a new viewport size and recomputes the aspect ratio.
	// Non-positive sizes (e.g. a minimized window) are ignored. Calling it repeatedly
	// with the same size is safe.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	Resize(width, height int)

	// ApplyZoomDelta changes the zoom factor by one ZoomStep in the direction of the delta's sign.
	// The magnitude of the delta is ignored and a zero delta changes nothing. The result is
	// clamped to [MinZoom, MaxZoom].
	//
	// Parameters:
	//   - rawDelta: the raw wheel delta (positive zooms in)
	ApplyZoomDelta(rawDelta float32)

	// SetZoom sets the zoom factor directly, clamped to [MinZoom, MaxZoom].
	//
	// Parameters:
	//   - zoom: the requested zoom factor
	SetZoom(zoom float32)

	// SetPosition moves the camera to a world-space position.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// LookAt orients the camera toward a world-space point.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates of the target
	LookAt(x, y, z float32)

	// Contains reports whether a pixel coordinate lies on the render surface.
	//
	// Parameters:
	//   - x, y: surface-relative pixel coordinates
	//
	// Returns:
	//   - bool: true if the point lies inside [0, width) x [0, height)
	Contains(x, y float32) bool

	// ProjectionMatrix returns the perspective projection for the current aspect and zoom,
	// rebuilding it first when the viewport is dirty.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewMatrix returns the world-to-camera matrix for the current position and target.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major view matrix
	ViewMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Reset restores the zoom, position and target the camera was created with.
	Reset()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with the viewer defaults: 60 degree field of view, clip planes at
// 0.1 and 1000, positioned at (0, 0, 2) looking at the origin, zoom 1 with a 0.05 step
// bounded to [0.1, 10].
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		width:      1280,
		height:     720,
		fovDegrees: 60,
		near:       0.1,
		far:        1000,
		zoom:       1,
		minZoom:    0.1,
		maxZoom:    10,
		zoomStep:   0.05,
		position:   mgl32.Vec3{0, 0, 2},
		target:     mgl32.Vec3{0, 0, 0},
		up:         mgl32.Vec3{0, 1, 0},
	}
	for _, option := range options {
		option(c)
	}
	if c.minZoom > c.maxZoom {
		c.minZoom, c.maxZoom = c.maxZoom, c.minZoom
	}
	c.zoom = common.Clamp(c.zoom, c.minZoom, c.maxZoom)
	c.aspect = float32(c.width) / float32(c.height)
	c.homeZoom = c.zoom
	c.homePosition = c.position
	c.homeTarget = c.target
	c.dirty = true
	return c
}

func (c *cameraImpl) Width() int {
	return c.width
}

func (c *cameraImpl) Height() int {
	return c.height
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Fov() float32 {
	return c.fovDegrees
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) Zoom() float32 {
	return c.zoom
}

func (c *cameraImpl) MinZoom() float32 {
	return c.minZoom
}

func (c *cameraImpl) MaxZoom() float32 {
	return c.maxZoom
}

func (c *cameraImpl) ZoomStep() float32 {
	return c.zoomStep
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Dirty() bool {
	return c.dirty
}

func (c *cameraImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
	c.aspect = float32(width) / float32(height)
	c.dirty = true
}

func (c *cameraImpl) ApplyZoomDelta(rawDelta float32) {
	dir := common.Sign(rawDelta)
	if dir == 0 {
		return
	}
	c.SetZoom(c.zoom + dir*c.zoomStep)
}

func (c *cameraImpl) SetZoom(zoom float32) {
	c.zoom = common.Clamp(zoom, c.minZoom, c.maxZoom)
	c.dirty = true
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.position = mgl32.Vec3{x, y, z}
}

func (c *cameraImpl) LookAt(x, y, z float32) {
	c.target = mgl32.Vec3{x, y, z}
}

func (c *cameraImpl) Contains(x, y float32) bool {
	return x >= 0 && y >= 0 && x < float32(c.width) && y < float32(c.height)
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	if c.dirty {
		fov := common.EffectiveFov(mgl32.DegToRad(c.fovDegrees), c.zoom)
		c.projectionMatrix = common.PerspectiveZO(fov, c.aspect, c.near, c.far)
		c.dirty = false
	}
	return c.projectionMatrix
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.target, c.up)
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

func (c *cameraImpl) Reset() {
	c.zoom = c.homeZoom
	c.position = c.homePosition
	c.target = c.homeTarget
	c.dirty = true
}
