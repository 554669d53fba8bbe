package common

import (
	"cmp"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp constrains v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to constrain
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - T: lo if v < lo, hi if v > hi, otherwise v
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// Sign returns -1, 0 or 1 depending on the sign of v.
func Sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// EffectiveFov narrows a vertical field of view by a zoom factor the same way a lens zoom does:
// the tangent of the half angle is divided by the zoom.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - zoom: zoom factor (values <= 0 are treated as 1)
//
// Returns:
//   - float32: the zoomed field of view in radians
func EffectiveFov(fovY, zoom float32) float32 {
	if zoom <= 0 {
		zoom = 1
	}
	return 2 * math32.Atan(math32.Tan(fovY/2)/zoom)
}

// OrbitPoint returns the point on a horizontal circle of the given radius at angle t.
// The circle lies in the XZ plane, t = 0 maps to +Z.
//
// Parameters:
//   - radius: circle radius
//   - t: angle in radians
//
// Returns:
//   - x, z: the horizontal coordinates on the circle
func OrbitPoint(radius, t float32) (x, z float32) {
	return radius * math32.Sin(t), radius * math32.Cos(t)
}

// ModelMatrix builds a model matrix from a translation, a pitch/yaw orientation and a uniform scale.
// Rotation is applied X first then Y in the object's local frame (M = T * Rx * Ry * S).
//
// Parameters:
//   - position: translation in world space
//   - pitch: rotation around the X axis in radians
//   - yaw: rotation around the Y axis in radians
//   - scale: uniform scale factor
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ModelMatrix(position mgl32.Vec3, pitch, yaw, scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(mgl32.HomogRotate3DX(pitch)).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

// PerspectiveZO creates a perspective projection matrix for a [0, 1] clip-space depth range
// as used by WebGPU. mgl32.Perspective targets the OpenGL [-1, 1] range.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1 / math32.Tan(fovY/2)
	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = (near * far) / (near - far)
	return m
}
