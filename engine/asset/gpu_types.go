package asset

import (
	"encoding/binary"
	"math"
)

// GPUVertexStride is the byte size of one vertex in the GPU vertex buffer:
// position (vec3<f32>) followed by normal (vec3<f32>).
const GPUVertexStride = 24

// VertexData serializes the vertices into a little-endian buffer matching GPUVertexStride.
//
// Returns:
//   - []byte: the vertex buffer contents
func (m *Mesh) VertexData() []byte {
	buf := make([]byte, len(m.Vertices)*GPUVertexStride)
	for i, v := range m.Vertices {
		off := i * GPUVertexStride
		for j := range 3 {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(v.Position[j]))
			binary.LittleEndian.PutUint32(buf[off+12+j*4:], math.Float32bits(v.Normal[j]))
		}
	}
	return buf
}

// IndexData serializes the indices as little-endian uint32 values.
//
// Returns:
//   - []byte: the index buffer contents
func (m *Mesh) IndexData() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
