package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(60), cfg.Camera.Fov)
	assert.Equal(t, [3]float32{0, 0, 2}, cfg.Camera.Position)
	assert.Equal(t, float32(0.05), cfg.Camera.ZoomStep)
	assert.Equal(t, input.OrbitAlways, cfg.OrbitPolicy())
}

func TestReadMergesOverDefaults(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
[camera]
fov = 45.0
position = [1.0, 2.0, 3.0]

[input]
orbit = false
orbit_policy = "paused-while-dragging"

[render]
msaa = 1
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(45), cfg.Camera.Fov)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, float32(0.1), cfg.Camera.Near, "untouched keys keep defaults")
	assert.False(t, cfg.Input.Orbit)
	assert.Equal(t, input.OrbitPausedWhileDragging, cfg.OrbitPolicy())
	assert.Equal(t, 1, cfg.Render.MSAA)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestReadRejectsUnknownKeys(t *testing.T) {
	_, err := Read(strings.NewReader("[camera]\nfovv = 45.0\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[asset]\npath = \"duck.glb\"\nscale = 0.5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "duck.glb", cfg.Asset.Path)
	assert.Equal(t, float32(0.5), cfg.Asset.Scale)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Camera.Near = 0
	cfg.Camera.MinZoom = 5
	cfg.Camera.MaxZoom = 1
	cfg.Render.MSAA = 3
	cfg.Input.OrbitPolicy = "sometimes"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"camera.near", "zoom bounds", "render.msaa", "orbit_policy", "log.format"} {
		assert.Contains(t, msg, want)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = LogConfig{Level: "loud"}.NewLogger(&buf)
	assert.Error(t, err)
}

func TestReadKeepsResizableDefault(t *testing.T) {
	cfg, err := Read(strings.NewReader("[window]\nwidth = 640\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Window.Resizable)
	assert.Equal(t, 640, cfg.Window.Width)

	cfg, err = Read(strings.NewReader("[window]\nresizable = false\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Window.Resizable)
}
