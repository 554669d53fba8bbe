package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, float32(60), c.Fov())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(1000), c.Far())
	assert.Equal(t, float32(1), c.Zoom())
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, c.Position())
	assert.True(t, c.Dirty())
}

func TestResizeRecomputesAspect(t *testing.T) {
	c := NewCamera()
	c.ProjectionMatrix()
	require.False(t, c.Dirty())

	c.Resize(800, 600)
	assert.InDelta(t, 800.0/600.0, c.Aspect(), 1e-6)
	assert.True(t, c.Dirty())

	first := c.ProjectionMatrix()
	c.Resize(800, 600)
	c.Resize(800, 600)
	assert.InDelta(t, 800.0/600.0, c.Aspect(), 1e-6)
	assert.Equal(t, first, c.ProjectionMatrix())
}

func TestResizeIgnoresNonPositive(t *testing.T) {
	c := NewCamera(WithSize(640, 480))

	c.Resize(0, 0)
	c.Resize(-5, 100)
	assert.Equal(t, 640, c.Width())
	assert.Equal(t, 480, c.Height())
	assert.InDelta(t, 640.0/480.0, c.Aspect(), 1e-6)
}

func TestApplyZoomDeltaSteps(t *testing.T) {
	c := NewCamera()
	for range 3 {
		c.ApplyZoomDelta(-1)
	}
	assert.InDelta(t, 0.85, c.Zoom(), 1e-6)

	c.ApplyZoomDelta(250)
	assert.InDelta(t, 0.90, c.Zoom(), 1e-6, "only the sign of the delta matters")

	c.ApplyZoomDelta(0)
	assert.InDelta(t, 0.90, c.Zoom(), 1e-6)
}

func TestApplyZoomDeltaClamps(t *testing.T) {
	c := NewCamera(WithZoomBounds(0.5, 1.5), WithZoomStep(0.3))

	for range 50 {
		c.ApplyZoomDelta(1)
		assert.GreaterOrEqual(t, c.Zoom(), c.MinZoom())
		assert.LessOrEqual(t, c.Zoom(), c.MaxZoom())
	}
	assert.Equal(t, float32(1.5), c.Zoom())

	for range 50 {
		c.ApplyZoomDelta(-1e9)
		assert.GreaterOrEqual(t, c.Zoom(), c.MinZoom())
		assert.LessOrEqual(t, c.Zoom(), c.MaxZoom())
	}
	assert.Equal(t, float32(0.5), c.Zoom())
}

func TestZoomNarrowsProjection(t *testing.T) {
	c := NewCamera()
	base := c.ProjectionMatrix()

	c.SetZoom(2)
	zoomed := c.ProjectionMatrix()
	assert.Greater(t, zoomed[5], base[5], "a larger zoom yields a narrower field of view")
}

func TestSwappedZoomBounds(t *testing.T) {
	c := NewCamera(WithZoomBounds(10, 0.1), WithZoom(50))
	assert.Equal(t, float32(0.1), c.MinZoom())
	assert.Equal(t, float32(10), c.MaxZoom())
	assert.Equal(t, float32(10), c.Zoom())
}

func TestContains(t *testing.T) {
	c := NewCamera(WithSize(100, 50))

	assert.True(t, c.Contains(0, 0))
	assert.True(t, c.Contains(99.5, 49))
	assert.False(t, c.Contains(100, 10))
	assert.False(t, c.Contains(-1, 10))
	assert.False(t, c.Contains(10, 50))
}

func TestViewProjectionCentersTarget(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5))
	c.LookAt(0, 0, 0)

	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-6)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-6)
}

func TestReset(t *testing.T) {
	c := NewCamera()
	c.SetZoom(3)
	c.SetPosition(1, 1, 1)
	c.LookAt(4, 4, 4)

	c.Reset()
	assert.Equal(t, float32(1), c.Zoom())
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, c.Position())
	assert.Equal(t, mgl32.Vec3{}, c.Target())
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	c := NewCamera()
	u := NewGPUCameraUniform(c)

	buf := u.Marshal()
	assert.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())
}
