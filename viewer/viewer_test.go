package viewer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoadedApp(t *testing.T, cfg config.Config, options ...AppOption) App {
	t.Helper()
	a := NewApp(cfg, options...)
	a.Load(loader.NewLoader(loader.WithMesh("cube", asset.NewCubeMesh(1))), "cube")
	require.True(t, a.Asset().Loaded())
	return a
}

func TestNewAppAppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Fov = 45
	cfg.Asset.Scale = 2
	cfg.Asset.Position = [3]float32{1, 0, 0}
	cfg.Input.Orbit = false

	a := NewApp(cfg, WithSurfaceSize(800, 600))
	assert.Equal(t, float32(45), a.Camera().Fov())
	assert.InDelta(t, 4.0/3.0, a.Camera().Aspect(), 1e-6)
	assert.Equal(t, float32(2), a.Asset().Scale())
	assert.Equal(t, float32(1), a.Camera().Target().X())
	assert.False(t, a.Orbit().Enabled())
	assert.False(t, a.Asset().Loaded())
}

func TestViewerScenario(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Orbit = false
	a := newLoadedApp(t, cfg)

	a.Camera().Resize(800, 600)
	assert.InDelta(t, 1.3333333, a.Camera().Aspect(), 1e-6)

	for range 3 {
		a.HandleInput(input.WheelInput{X: 400, Y: 300, Delta: -1})
	}
	assert.InDelta(t, 0.85, a.Camera().Zoom(), 1e-6)

	a.HandleInput(input.MouseInput{Phase: input.PhaseDown, X: 100, Y: 100, Button: input.ButtonLeft})
	a.HandleInput(input.MouseInput{Phase: input.PhaseMove, X: 110, Y: 130})
	a.HandleInput(input.MouseInput{Phase: input.PhaseUp, X: 110, Y: 130, Button: input.ButtonLeft})

	pitch, yaw := a.Asset().Orientation()
	assert.InDelta(t, 0.30, pitch, 1e-6)
	assert.InDelta(t, 0.10, yaw, 1e-6)

	a.HandleKey(common.KeyR)
	pitch, yaw = a.Asset().Orientation()
	assert.Zero(t, pitch)
	assert.Zero(t, yaw)
	assert.Equal(t, float32(1), a.Camera().Zoom())
}

func TestInputBeforeLoad(t *testing.T) {
	a := NewApp(config.Default())

	assert.NotPanics(t, func() {
		a.HandleInput(input.MouseInput{Phase: input.PhaseDown, X: 10, Y: 10})
		a.HandleInput(input.MouseInput{Phase: input.PhaseMove, X: 40, Y: 40})
		a.Frame(0.016)
	})
	pitch, yaw := a.Asset().Orientation()
	assert.Zero(t, pitch)
	assert.Zero(t, yaw)
	assert.Zero(t, a.Orbit().Elapsed())
}

func TestTouchEventsAreSuppressed(t *testing.T) {
	a := newLoadedApp(t, config.Default())
	assert.True(t, a.HandleInput(input.TouchInput{Phase: input.PhaseDown, Touches: []input.TouchPoint{{X: 5, Y: 5}}}))
	assert.True(t, a.HandleInput(input.WheelInput{X: 5, Y: 5, Delta: 1}))
	assert.False(t, a.HandleInput(input.WheelInput{X: -5, Y: 5, Delta: 1}))
}

func TestOrbitToggleAndFrame(t *testing.T) {
	a := newLoadedApp(t, config.Default())

	a.Frame(0)
	assert.InDelta(t, 0.01, a.Orbit().Elapsed(), 1e-7)
	assert.InDelta(t, 0.3, a.Camera().Position().Len(), 1e-5)

	a.HandleKey(common.KeyO)
	assert.False(t, a.Orbit().Enabled())
	a.Frame(0)
	assert.InDelta(t, 0.01, a.Orbit().Elapsed(), 1e-7)

	a.HandleKey(common.KeyO)
	assert.True(t, a.Orbit().Enabled())
}

func TestLoadFailureKeepsViewerRunning(t *testing.T) {
	var loaded *asset.Mesh
	a := NewApp(config.Default(), WithOnLoaded(func(m *asset.Mesh) { loaded = m }))
	a.Load(loader.NewLoader(), "model.obj")

	assert.False(t, a.Asset().Loaded())
	assert.Nil(t, loaded)
	assert.True(t, errors.Is(a.LoadErr(), loader.ErrUnsupportedFormat))
	assert.Nil(t, a.Scene().Snapshot().Mesh)
}

func TestOnLoaded(t *testing.T) {
	var loaded *asset.Mesh
	a := newLoadedApp(t, config.Default(), WithOnLoaded(func(m *asset.Mesh) { loaded = m }))
	require.NotNil(t, loaded)
	assert.Same(t, loaded, a.Asset().Mesh())
	assert.Same(t, loaded, a.Scene().Snapshot().Mesh)
}
