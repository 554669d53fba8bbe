package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// GPUFrameUniform is the single uniform block bound at group 0, binding 0 of the viewer shader.
// Matches the WGSL Frame struct layout exactly. Size: 224 bytes.
type GPUFrameUniform struct {
	Camera camera.GPUCameraUniform // offset   0: view-projection + camera position (80 bytes)
	Model  [16]float32             // offset  80: asset model matrix (mat4x4<f32>)
	Lights light.GPULightUniform   // offset 144: packed light rig (80 bytes)
}

// NewGPUFrameUniform packs a frame snapshot into the uniform layout.
//
// Parameters:
//   - snap: the snapshot to pack
//
// Returns:
//   - GPUFrameUniform: the packed uniform
func NewGPUFrameUniform(snap scene.FrameSnapshot) GPUFrameUniform {
	return GPUFrameUniform{
		Camera: camera.GPUCameraUniform{
			ViewProj:       snap.ViewProj,
			CameraPosition: snap.CameraPosition,
		},
		Model:  snap.Model,
		Lights: snap.Lights,
	}
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (224)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, 0, g.Size())
	buf = append(buf, g.Camera.Marshal()...)
	for i := range 16 {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(g.Model[i]))
	}
	buf = append(buf, g.Lights.Marshal()...)
	return buf
}
