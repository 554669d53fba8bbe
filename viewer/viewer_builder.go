package viewer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
)

// AppOption is a functional option for configuring an App.
type AppOption func(*app)

// WithLogger sets the logger for application events.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - AppOption: option function to apply
func WithLogger(logger *slog.Logger) AppOption {
	return func(a *app) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithSurfaceSize sets the initial viewport size, overriding the configured window size with the
// framebuffer size the window actually got.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//
// Returns:
//   - AppOption: option function to apply
func WithSurfaceSize(width, height int) AppOption {
	return func(a *app) {
		if width > 0 && height > 0 {
			a.width, a.height = width, height
		}
	}
}

// WithOnLoaded sets a function called on the loop goroutine after the asset handle is populated.
//
// Parameters:
//   - callback: function receiving the loaded mesh
//
// Returns:
//   - AppOption: option function to apply
func WithOnLoaded(callback func(mesh *asset.Mesh)) AppOption {
	return func(a *app) {
		a.onLoaded = callback
	}
}
