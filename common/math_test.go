package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0.1), Clamp(float32(-4), 0.1, 10))
	assert.Equal(t, float32(10), Clamp(float32(42), 0.1, 10))
	assert.Equal(t, 3, Clamp(3, 1, 5))
}

func TestSign(t *testing.T) {
	assert.Equal(t, float32(1), Sign(120))
	assert.Equal(t, float32(-1), Sign(-0.001))
	assert.Equal(t, float32(0), Sign(0))
}

func TestEffectiveFov(t *testing.T) {
	fov := float32(math.Pi / 3)
	assert.InDelta(t, fov, EffectiveFov(fov, 1), 1e-6)
	assert.InDelta(t, fov, EffectiveFov(fov, 0), 1e-6, "non-positive zoom falls back to 1")
	assert.Less(t, EffectiveFov(fov, 2), fov)
	assert.Greater(t, EffectiveFov(fov, 0.5), fov)
}

func TestOrbitPoint(t *testing.T) {
	x, z := OrbitPoint(0.3, 0)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0.3, z, 1e-6)

	x, z = OrbitPoint(2, math.Pi/2)
	assert.InDelta(t, 2, x, 1e-6)
	assert.InDelta(t, 0, z, 1e-6)
}

func TestModelMatrix(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{1, 2, 3}, 0, 0, 2)
	p := m.Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.InDelta(t, 3, p.X(), 1e-6)
	assert.InDelta(t, 4, p.Y(), 1e-6)
	assert.InDelta(t, 5, p.Z(), 1e-6)

	// A quarter yaw turns +X into -Z.
	m = ModelMatrix(mgl32.Vec3{}, 0, math.Pi/2, 1)
	p = m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-6)
	assert.InDelta(t, -1, p.Z(), 1e-6)
}

func TestPerspectiveZODepthRange(t *testing.T) {
	proj := PerspectiveZO(math.Pi/3, 4.0/3.0, 0.1, 1000)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -1000, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-5)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
