package camera

// CameraBuilderOption is a functional option for configuring a Camera via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithSize sets the initial viewport size in pixels. Non-positive values are ignored.
//
// Parameters:
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport size
func WithSize(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.width = width
			c.height = height
		}
	}
}

// WithFov sets the vertical field of view in degrees.
//
// Parameters:
//   - degrees: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovDegrees = degrees
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithPosition sets the initial world-space camera position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position[0], c.position[1], c.position[2] = x, y, z
	}
}

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the look-at point
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target[0], c.target[1], c.target[2] = x, y, z
	}
}

// WithZoom sets the initial zoom factor. It is clamped to the zoom bounds after all options apply.
//
// Parameters:
//   - zoom: initial zoom factor
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = zoom
	}
}

// WithZoomBounds sets the minimum and maximum zoom factor.
//
// Parameters:
//   - min: minimum zoom factor
//   - max: maximum zoom factor
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom bounds
func WithZoomBounds(min, max float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minZoom = min
		c.maxZoom = max
	}
}

// WithZoomStep sets the zoom change applied per wheel notch.
//
// Parameters:
//   - step: zoom change per ApplyZoomDelta call
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom step
func WithZoomStep(step float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoomStep = step
	}
}
