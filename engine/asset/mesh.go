package asset

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a single mesh vertex with a position and a normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh is the triangle geometry of a loaded asset, flattened into a single indexed list
// with node transforms already applied.
type Mesh struct {
	// Name is the asset identifier (usually the file name).
	Name string

	// Vertices are the mesh vertices.
	Vertices []Vertex

	// Indices are the triangle list indices into Vertices.
	Indices []uint32

	// BoundsMin is the minimum corner of the axis-aligned bounding box.
	BoundsMin [3]float32

	// BoundsMax is the maximum corner of the axis-aligned bounding box.
	BoundsMax [3]float32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// ComputeBounds recomputes BoundsMin and BoundsMax from the vertex positions.
// An empty mesh gets zero bounds.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = [3]float32{}, [3]float32{}
		return
	}
	lo := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, v := range m.Vertices {
		for i := range 3 {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	m.BoundsMin, m.BoundsMax = lo, hi
}

// GenerateNormals replaces every vertex normal with the area-weighted average of the face
// normals of the triangles sharing it. Vertices touched by no valid triangle point up.
func (m *Mesh) GenerateNormals() {
	n := len(m.Vertices)
	accum := make([]mgl32.Vec3, n)

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(i0) >= n || int(i1) >= n || int(i2) >= n {
			continue
		}

		p0 := mgl32.Vec3(m.Vertices[i0].Position)
		p1 := mgl32.Vec3(m.Vertices[i1].Position)
		p2 := mgl32.Vec3(m.Vertices[i2].Position)

		// length proportional to triangle area
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		accum[i0] = accum[i0].Add(face)
		accum[i1] = accum[i1].Add(face)
		accum[i2] = accum[i2].Add(face)
	}

	for i := range n {
		if accum[i].Len() < 1e-12 {
			m.Vertices[i].Normal = [3]float32{0, 1, 0}
			continue
		}
		m.Vertices[i].Normal = accum[i].Normalize()
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() [3]float32 {
	return [3]float32{
		(m.BoundsMin[0] + m.BoundsMax[0]) / 2,
		(m.BoundsMin[1] + m.BoundsMax[1]) / 2,
		(m.BoundsMin[2] + m.BoundsMax[2]) / 2,
	}
}

// Size returns the extent of the bounding box along each axis.
func (m *Mesh) Size() [3]float32 {
	return [3]float32{
		m.BoundsMax[0] - m.BoundsMin[0],
		m.BoundsMax[1] - m.BoundsMin[1],
		m.BoundsMax[2] - m.BoundsMin[2],
	}
}

// NewCubeMesh returns an axis-aligned cube centered on the origin with 24 vertices
// (4 per face, so each face has its own normal) and 36 indices. All outward faces wind
// counter-clockwise.
//
// Parameters:
//   - size: edge length of the cube
//
// Returns:
//   - *Mesh: the cube mesh with bounds computed
func NewCubeMesh(size float32) *Mesh {
	h := size / 2
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		// Front (+Z)
		{[3]float32{0, 0, 1}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		// Back (-Z)
		{[3]float32{0, 0, -1}, [4][3]float32{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		// Right (+X)
		{[3]float32{1, 0, 0}, [4][3]float32{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		// Left (-X)
		{[3]float32{-1, 0, 0}, [4][3]float32{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		// Top (+Y)
		{[3]float32{0, 1, 0}, [4][3]float32{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		// Bottom (-Y)
		{[3]float32{0, -1, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}

	m := &Mesh{
		Name:     "cube",
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.normal})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.ComputeBounds()
	return m
}
