package asset

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrAlreadyLoaded is returned by Populate when the handle already holds a mesh.
var ErrAlreadyLoaded = errors.New("asset handle already populated")

// ErrNilMesh is returned by Populate when given a nil mesh.
var ErrNilMesh = errors.New("asset mesh is nil")

// handleImpl is the implementation of the Handle interface.
// Owned by the render loop goroutine; not safe for concurrent use.
type handleImpl struct {
	mesh *Mesh

	pitch float32
	yaw   float32

	scale    float32
	position mgl32.Vec3

	homePitch float32
	homeYaw   float32
}

// Handle is the viewer's reference to the single loaded asset.
//
// A Handle starts empty. The loader populates it exactly once; before that, Loaded reports false
// and every orientation mutation is a no-op. After population the handle lives for the session and
// is shared by the drag and orbit controllers and the scene.
type Handle interface {
	// Loaded reports whether the asset has been populated.
	Loaded() bool

	// Populate attaches the loaded mesh. It may only succeed once.
	//
	// Parameters:
	//   - mesh: the loaded mesh
	//
	// Returns:
	//   - error: ErrNilMesh for a nil mesh, ErrAlreadyLoaded on a second call
	Populate(mesh *Mesh) error

	// Mesh returns the loaded mesh, or nil before population.
	Mesh() *Mesh

	// Orientation returns the current pitch (X axis) and yaw (Y axis) in radians.
	Orientation() (pitch, yaw float32)

	// Rotate adds an incremental pitch and yaw rotation.
	//
	// Parameters:
	//   - dPitch: pitch increment in radians
	//   - dYaw: yaw increment in radians
	//
	// Returns:
	//   - bool: false (and no change) if the asset is not loaded
	Rotate(dPitch, dYaw float32) bool

	// SetOrientation replaces the pitch and yaw.
	//
	// Parameters:
	//   - pitch: rotation around X in radians
	//   - yaw: rotation around Y in radians
	//
	// Returns:
	//   - bool: false (and no change) if the asset is not loaded
	SetOrientation(pitch, yaw float32) bool

	// ResetOrientation restores the orientation the handle was created with.
	ResetOrientation()

	// Scale returns the uniform scale applied to the asset.
	Scale() float32

	// Position returns the asset's position in the scene.
	Position() mgl32.Vec3

	// ModelMatrix returns the asset's model matrix (translation, pitch, yaw, uniform scale).
	//
	// Returns:
	//   - mgl32.Mat4: the column-major model matrix
	ModelMatrix() mgl32.Mat4
}

var _ Handle = &handleImpl{}

// NewHandle creates an empty Handle with unit scale at the origin.
//
// Parameters:
//   - options: functional options to configure the handle
//
// Returns:
//   - Handle: the unloaded handle
func NewHandle(options ...HandleBuilderOption) Handle {
	h := &handleImpl{
		scale: 1,
	}
	for _, option := range options {
		option(h)
	}
	h.homePitch, h.homeYaw = h.pitch, h.yaw
	return h
}

func (h *handleImpl) Loaded() bool {
	return h.mesh != nil
}

func (h *handleImpl) Populate(mesh *Mesh) error {
	if mesh == nil {
		return ErrNilMesh
	}
	if h.mesh != nil {
		return ErrAlreadyLoaded
	}
	h.mesh = mesh
	return nil
}

func (h *handleImpl) Mesh() *Mesh {
	return h.mesh
}

func (h *handleImpl) Orientation() (pitch, yaw float32) {
	return h.pitch, h.yaw
}

func (h *handleImpl) Rotate(dPitch, dYaw float32) bool {
	if h.mesh == nil {
		return false
	}
	h.pitch += dPitch
	h.yaw += dYaw
	return true
}

func (h *handleImpl) SetOrientation(pitch, yaw float32) bool {
	if h.mesh == nil {
		return false
	}
	h.pitch, h.yaw = pitch, yaw
	return true
}

func (h *handleImpl) ResetOrientation() {
	h.pitch, h.yaw = h.homePitch, h.homeYaw
}

func (h *handleImpl) Scale() float32 {
	return h.scale
}

func (h *handleImpl) Position() mgl32.Vec3 {
	return h.position
}

func (h *handleImpl) ModelMatrix() mgl32.Mat4 {
	return common.ModelMatrix(h.position, h.pitch, h.yaw, h.scale)
}
