package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls       []string
	configured  [][2]int
	presentMode PresentMode
	clearColor  wgpu.Color
	shader      string
	uniformSize int
	uploads     int
	indexCount  int
	uniform     []byte
	beginErr    error
	released    bool
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.configured = append(f.configured, [2]int{width, height})
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = mode }

func (f *fakeBackend) SetClearColor(color wgpu.Color) { f.clearColor = color }

func (f *fakeBackend) RegisterViewerPipeline(source string, uniformSize int) error {
	f.shader, f.uniformSize = source, uniformSize
	return nil
}

func (f *fakeBackend) UploadMesh(_ string, _, _ []byte, indexCount int) error {
	f.uploads++
	f.indexCount = indexCount
	return nil
}

func (f *fakeBackend) WriteFrameUniform(data []byte) { f.uniform = data }

func (f *fakeBackend) BeginFrame() error {
	f.calls = append(f.calls, "begin")
	return f.beginErr
}

func (f *fakeBackend) DrawMesh() { f.calls = append(f.calls, "draw") }

func (f *fakeBackend) EndFrame() error {
	f.calls = append(f.calls, "end")
	return nil
}

func (f *fakeBackend) Present() { f.calls = append(f.calls, "present") }

func (f *fakeBackend) Release() { f.released = true }

func attachFake(t *testing.T, options ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	r := newRenderer(BackendTypeWGPU, options...)
	fb := &fakeBackend{}
	require.NoError(t, r.attach(fb, 640, 480))
	return r, fb
}

func TestAttachRegistersPipeline(t *testing.T) {
	_, fb := attachFake(t, WithPresentMode(PresentModeUncapped), WithClearColor(0, 0, 0, 1))

	assert.Equal(t, [][2]int{{640, 480}}, fb.configured)
	assert.Equal(t, PresentModeUncapped, fb.presentMode)
	assert.Equal(t, wgpu.Color{A: 1}, fb.clearColor)
	assert.Contains(t, fb.shader, "fn vs_main")
	assert.Contains(t, fb.shader, "fn fs_main")
	assert.Equal(t, 224, fb.uniformSize)
}

func TestDefaultClearColorIsTransparent(t *testing.T) {
	_, fb := attachFake(t)
	assert.Equal(t, wgpu.Color{}, fb.clearColor)
}

func TestResize(t *testing.T) {
	r, fb := attachFake(t)

	require.NoError(t, r.Resize(0, 0))
	require.NoError(t, r.Resize(640, 480))
	assert.Len(t, fb.configured, 1, "minimized or unchanged sizes do not reconfigure")

	require.NoError(t, r.Resize(800, 600))
	assert.Equal(t, [2]int{800, 600}, fb.configured[1])

	require.NoError(t, r.SetPresentMode(PresentModeVSync))
	assert.Equal(t, [2]int{800, 600}, fb.configured[2])
}

func TestDrawFrameWithoutMesh(t *testing.T) {
	r, fb := attachFake(t)

	require.NoError(t, r.DrawFrame(scene.FrameSnapshot{}))
	assert.Equal(t, []string{"begin", "end", "present"}, fb.calls)
	assert.Zero(t, fb.uploads)
	assert.Len(t, fb.uniform, 224)
}

func TestDrawFrameUploadsMeshOnce(t *testing.T) {
	r, fb := attachFake(t)
	mesh := asset.NewCubeMesh(1)
	snap := scene.FrameSnapshot{Mesh: mesh}

	for range 3 {
		require.NoError(t, r.DrawFrame(snap))
	}
	assert.Equal(t, 1, fb.uploads)
	assert.Equal(t, len(mesh.Indices), fb.indexCount)
	assert.Equal(t, []string{"begin", "draw", "end", "present"}, fb.calls[:4])

	// dropping the mesh releases the GPU copy
	require.NoError(t, r.DrawFrame(scene.FrameSnapshot{}))
	assert.Equal(t, 2, fb.uploads)
	assert.Zero(t, fb.indexCount)
}

func TestDrawFrameFailure(t *testing.T) {
	r, fb := attachFake(t)
	cause := errors.New("surface lost")
	fb.beginErr = cause

	err := r.DrawFrame(scene.FrameSnapshot{})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, fb.calls, "present")

	r.Release()
	assert.True(t, fb.released)
}

func TestFrameUniformLayout(t *testing.T) {
	snap := scene.FrameSnapshot{
		ViewProj:       mgl32.Ident4().Mul(2),
		Model:          mgl32.Translate3D(1, 2, 3),
		CameraPosition: mgl32.Vec3{4, 5, 6},
		Lights:         light.PackLights(light.DefaultLights()),
	}
	u := NewGPUFrameUniform(snap)
	require.Equal(t, 224, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 224)

	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	assert.Equal(t, float32(2), f(0), "view_proj[0][0]")
	assert.Equal(t, float32(4), f(64), "camera_position.x")
	assert.Equal(t, float32(6), f(72), "camera_position.z")
	assert.Equal(t, float32(1), f(80+12*4), "model translation x")
	assert.Equal(t, float32(3), f(80+14*4), "model translation z")
	assert.InDelta(t, 0.5, f(144), 1e-6, "ambient red")
}

func TestBackendEnums(t *testing.T) {
	assert.True(t, MSAAOff.Valid())
	assert.True(t, MSAA16x.Valid())
	assert.False(t, MSAASampleCount(2).Valid())

	assert.Equal(t, "vsync", PresentModeVSync.String())
	assert.Equal(t, "uncapped", PresentModeUncapped.String())
	assert.Equal(t, "PresentMode(7)", PresentMode(7).String())
}
