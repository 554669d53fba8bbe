package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-viewer/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/Carmen-Shannon/oxy-viewer/viewer"
	"github.com/spf13/cobra"
)

// cubeKey is the loader cache key of the built-in cube used by --cube.
const cubeKey = "builtin:cube"

// flags holds command-line overrides. Only flags the user actually set are applied over the config.
type flags struct {
	configPath  string
	width       int
	height      int
	fov         float32
	scale       float32
	noOrbit     bool
	orbitPolicy string
	msaa        int
	vsync       bool
	frameLimit  float64
	software    bool
	profile     bool
	workers     int
	logLevel    string
	logFormat   string
	cube        bool
}

func newRootCommand() *cobra.Command {
	return bindRootCommand(&flags{})
}

// bindRootCommand builds the root command with its flags bound to f.
func bindRootCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oxyview [flags] <model.gltf|model.glb>",
		Short: "WebGPU glTF/GLB asset viewer",
		Long: `oxyview - WebGPU glTF/GLB asset viewer

Opens a window showing one asset lit by an ambient, a directional and a point light.
The camera slowly orbits the asset once it has loaded.

Controls:
  Mouse drag  - Rotate the asset
  Scroll      - Zoom in/out
  O           - Toggle the orbit animation
  R           - Reset the view
  Esc         - Quit`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, f.cube)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "TOML config file")
	fs.IntVar(&f.width, "width", 0, "Window width in pixels")
	fs.IntVar(&f.height, "height", 0, "Window height in pixels")
	fs.Float32Var(&f.fov, "fov", 0, "Vertical field of view in degrees")
	fs.Float32Var(&f.scale, "scale", 0, "Uniform scale applied to the asset")
	fs.BoolVar(&f.noOrbit, "no-orbit", false, "Start with the orbit animation off")
	fs.StringVar(&f.orbitPolicy, "orbit-policy", "", `Orbit behavior while dragging: "always" or "paused-while-dragging"`)
	fs.IntVar(&f.msaa, "msaa", 0, "MSAA sample count (1, 4, 8 or 16)")
	fs.BoolVar(&f.vsync, "vsync", true, "Wait for vertical blank when presenting")
	fs.Float64Var(&f.frameLimit, "frame-limit", 0, "Maximum frames per second (0 = uncapped)")
	fs.BoolVar(&f.software, "software", false, "Force the software fallback adapter")
	fs.BoolVar(&f.profile, "profile", false, "Log FPS and memory statistics every second")
	fs.IntVar(&f.workers, "workers", 0, "Asset loader worker count")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format (text or json)")
	fs.BoolVar(&f.cube, "cube", false, "Show a built-in cube instead of loading a file")

	cmd.AddCommand(newInfoCommand())
	return cmd
}

// resolve merges defaults, the config file, positional arguments and set flags, then validates.
func (f *flags) resolve(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if len(args) == 1 {
		cfg.Asset.Path = args[0]
	}

	changed := cmd.Flags().Changed
	if changed("width") {
		cfg.Window.Width = f.width
	}
	if changed("height") {
		cfg.Window.Height = f.height
	}
	if changed("fov") {
		cfg.Camera.Fov = f.fov
	}
	if changed("scale") {
		cfg.Asset.Scale = f.scale
	}
	if changed("no-orbit") {
		cfg.Input.Orbit = !f.noOrbit
	}
	if changed("orbit-policy") {
		cfg.Input.OrbitPolicy = f.orbitPolicy
	}
	if changed("msaa") {
		cfg.Render.MSAA = f.msaa
	}
	if changed("vsync") {
		cfg.Render.VSync = f.vsync
	}
	if changed("frame-limit") {
		cfg.Render.FrameLimit = f.frameLimit
	}
	if changed("software") {
		cfg.Render.Software = f.software
	}
	if changed("profile") {
		cfg.Render.Profiling = f.profile
	}
	if changed("workers") {
		cfg.Loader.Workers = f.workers
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}

	if cfg.Asset.Path == "" && !f.cube {
		return config.Config{}, errors.New("no asset given: pass a .gltf/.glb path, set asset.path in the config, or use --cube")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// run opens the window and drives the render loop until the window closes or ctx is cancelled.
func run(ctx context.Context, cfg config.Config, cube bool) error {
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithResizable(cfg.Window.Resizable),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	app := viewer.NewApp(cfg,
		viewer.WithLogger(logger),
		viewer.WithSurfaceSize(win.Width(), win.Height()),
		viewer.WithOnLoaded(func(mesh *asset.Mesh) {
			win.SetTitle(fmt.Sprintf("%s - %s", cfg.Window.Title, mesh.Name))
		}),
	)

	presentMode := renderer.PresentModeUncapped
	if cfg.Render.VSync {
		presentMode = renderer.PresentModeVSync
	}
	rend, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Render.Software),
		renderer.WithClearColor(cfg.Render.ClearColor[0], cfg.Render.ClearColor[1], cfg.Render.ClearColor[2], cfg.Render.ClearColor[3]),
		renderer.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Release()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(rend),
		engine.WithScene(app.Scene()),
		engine.WithFrameCallback(app.Frame),
		engine.WithProfiling(cfg.Render.Profiling),
		engine.WithRenderFrameLimit(cfg.Render.FrameLimit),
		engine.WithLogger(logger),
	)

	win.SetInputCallback(func(ev input.Event) {
		app.HandleInput(ev)
	})
	win.SetKeyDownCallback(app.HandleKey)

	loaderOptions := []loader.LoaderBuilderOption{
		loader.WithPoster(eng),
		loader.WithWorkers(cfg.Loader.Workers),
		loader.WithLogger(logger),
	}
	path := cfg.Asset.Path
	if cube {
		cubeMesh := asset.NewCubeMesh(1)
		cubeMesh.Name = "cube"
		loaderOptions = append(loaderOptions, loader.WithMesh(cubeKey, cubeMesh))
		path = cubeKey
	}
	ld := loader.NewLoader(loaderOptions...)
	defer ld.Release()
	app.Load(ld, path)

	err = eng.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
