package window

import "github.com/Carmen-Shannon/oxy-viewer/engine/input"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text; empty keeps "oxyview"
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		if title != "" {
			w.title = title
		}
	}
}

// WithSize sets the initial window size. Non-positive values keep the default for that axis.
//
// Parameters:
//   - width: initial width in screen coordinates
//   - height: initial height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithWidth sets the initial window width.
func WithWidth(width int) WindowBuilderOption {
	return WithSize(width, 0)
}

// WithHeight sets the initial window height.
func WithHeight(height int) WindowBuilderOption {
	return WithSize(0, height)
}

// WithSizeLimits bounds how far the user can resize the window.
// Limits where min exceeds max on an axis are ignored for that axis.
//
// Parameters:
//   - minWidth, minHeight: smallest allowed size
//   - maxWidth, maxHeight: largest allowed size; non-positive leaves the axis unbounded
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		if minWidth > 0 && (maxWidth <= 0 || minWidth <= maxWidth) {
			w.minWidth, w.maxWidth = minWidth, maxWidth
		}
		if minHeight > 0 && (maxHeight <= 0 || minHeight <= maxHeight) {
			w.minHeight, w.maxHeight = minHeight, maxHeight
		}
	}
}

// WithResizable controls whether the user can resize the window. Defaults to true.
func WithResizable(resizable bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.fixedSize = !resizable
	}
}

// WithInputCallback registers the pointer event callback before the platform window exists,
// so no event from the first poll is missed.
//
// Parameters:
//   - callback: receives every pointer and wheel event in framebuffer pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithInputCallback(callback func(ev input.Event)) WindowBuilderOption {
	return func(w *engineWindow) {
		w.onInput = callback
	}
}
