// Package config holds the viewer settings: built-in defaults, an optional TOML file and validation.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/pelletier/go-toml/v2"
)

// Config is the complete viewer configuration.
type Config struct {
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Asset  AssetConfig  `toml:"asset"`
	Input  InputConfig  `toml:"input"`
	Render RenderConfig `toml:"render"`
	Loader LoaderConfig `toml:"loader"`
	Log    LogConfig    `toml:"log"`
}

// WindowConfig configures the host window.
type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

// CameraConfig configures the viewport camera. Angles are in degrees.
type CameraConfig struct {
	Fov      float32    `toml:"fov"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Position [3]float32 `toml:"position"`
	Zoom     float32    `toml:"zoom"`
	MinZoom  float32    `toml:"min_zoom"`
	MaxZoom  float32    `toml:"max_zoom"`
	ZoomStep float32    `toml:"zoom_step"`
}

// AssetConfig configures the asset and its placement. Angles are in radians.
type AssetConfig struct {
	Path     string     `toml:"path"`
	Scale    float32    `toml:"scale"`
	Position [3]float32 `toml:"position"`
	Pitch    float32    `toml:"pitch"`
	Yaw      float32    `toml:"yaw"`
}

// InputConfig configures the drag and orbit controllers.
type InputConfig struct {
	SensitivityX float32 `toml:"sensitivity_x"`
	SensitivityY float32 `toml:"sensitivity_y"`
	Orbit        bool    `toml:"orbit"`
	OrbitStep    float32 `toml:"orbit_step"`
	OrbitRadius  float32 `toml:"orbit_radius"`
	OrbitPolicy  string  `toml:"orbit_policy"`
}

// RenderConfig configures the renderer and frame pacing.
type RenderConfig struct {
	VSync      bool       `toml:"vsync"`
	MSAA       int        `toml:"msaa"`
	FrameLimit float64    `toml:"frame_limit"`
	Software   bool       `toml:"software"`
	ClearColor [4]float64 `toml:"clear_color"`
	Profiling  bool       `toml:"profiling"`
}

// LoaderConfig configures the asset loader.
type LoaderConfig struct {
	Workers int `toml:"workers"`
}

// LogConfig configures the diagnostic logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file or flag overrides a setting.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "oxyview",
			Width:     1280,
			Height:    720,
			Resizable: true,
		},
		Camera: CameraConfig{
			Fov:      60,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{0, 0, 2},
			Zoom:     1,
			MinZoom:  0.1,
			MaxZoom:  10,
			ZoomStep: 0.05,
		},
		Asset: AssetConfig{
			Scale: 1,
		},
		Input: InputConfig{
			SensitivityX: 0.01,
			SensitivityY: 0.01,
			Orbit:        true,
			OrbitStep:    0.01,
			OrbitRadius:  0.3,
			OrbitPolicy:  input.OrbitAlways.String(),
		},
		Render: RenderConfig{
			VSync: true,
			MSAA:  4,
		},
		Loader: LoaderConfig{
			Workers: 1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep their default value;
// unknown keys are an error.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file cannot be read or decoded
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Read(bufio.NewReader(f))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Read decodes TOML from r over the defaults.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the merged configuration
//   - error: a decode error, including unknown keys
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate reports every setting that cannot be used, joined into one error.
//
// Returns:
//   - error: nil if the configuration is usable
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)

	check(c.Camera.Fov > 0 && c.Camera.Fov < 180, "camera.fov must be in (0, 180), got %v", c.Camera.Fov)
	check(c.Camera.Near > 0, "camera.near must be positive, got %v", c.Camera.Near)
	check(c.Camera.Far > c.Camera.Near, "camera.far (%v) must exceed camera.near (%v)", c.Camera.Far, c.Camera.Near)
	check(c.Camera.MinZoom > 0 && c.Camera.MinZoom <= c.Camera.MaxZoom,
		"zoom bounds must satisfy 0 < min_zoom <= max_zoom, got [%v, %v]", c.Camera.MinZoom, c.Camera.MaxZoom)
	check(c.Camera.ZoomStep > 0, "camera.zoom_step must be positive, got %v", c.Camera.ZoomStep)

	check(c.Asset.Scale > 0, "asset.scale must be positive, got %v", c.Asset.Scale)

	check(c.Input.OrbitStep > 0, "input.orbit_step must be positive, got %v", c.Input.OrbitStep)
	check(c.Input.OrbitRadius > 0, "input.orbit_radius must be positive, got %v", c.Input.OrbitRadius)
	_, ok := input.ParseOrbitPolicy(c.Input.OrbitPolicy)
	check(ok, "input.orbit_policy %q is not one of %q, %q", c.Input.OrbitPolicy,
		input.OrbitAlways.String(), input.OrbitPausedWhileDragging.String())

	switch c.Render.MSAA {
	case 1, 4, 8, 16:
	default:
		errs = append(errs, fmt.Errorf("render.msaa must be 1, 4, 8 or 16, got %d", c.Render.MSAA))
	}
	check(c.Render.FrameLimit >= 0, "render.frame_limit must not be negative, got %v", c.Render.FrameLimit)

	check(c.Loader.Workers >= 1, "loader.workers must be at least 1, got %d", c.Loader.Workers)

	var level slog.Level
	check(level.UnmarshalText([]byte(c.Log.Level)) == nil, "log.level %q is not a slog level", c.Log.Level)
	check(c.Log.Format == "text" || c.Log.Format == "json", "log.format must be text or json, got %q", c.Log.Format)

	return errors.Join(errs...)
}

// OrbitPolicy returns the parsed orbit policy, falling back to input.OrbitAlways.
func (c Config) OrbitPolicy() input.OrbitPolicy {
	p, _ := input.ParseOrbitPolicy(c.Input.OrbitPolicy)
	return p
}

// NewLogger builds the diagnostic logger described by the log section.
//
// Parameters:
//   - w: where log records are written
//
// Returns:
//   - *slog.Logger: the logger
//   - error: an error if the level is unknown
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
