package asset

// HandleBuilderOption is a functional option for configuring a Handle via NewHandle.
type HandleBuilderOption func(*handleImpl)

// WithScale sets the uniform scale applied to the asset. Non-positive values are ignored.
//
// Parameters:
//   - scale: uniform scale factor
//
// Returns:
//   - HandleBuilderOption: a function that sets the scale
func WithScale(scale float32) HandleBuilderOption {
	return func(h *handleImpl) {
		if scale > 0 {
			h.scale = scale
		}
	}
}

// WithPosition sets the asset's position in the scene.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - HandleBuilderOption: a function that sets the position
func WithPosition(x, y, z float32) HandleBuilderOption {
	return func(h *handleImpl) {
		h.position[0], h.position[1], h.position[2] = x, y, z
	}
}

// WithOrientation sets the initial pitch and yaw in radians.
//
// Parameters:
//   - pitch: rotation around X in radians
//   - yaw: rotation around Y in radians
//
// Returns:
//   - HandleBuilderOption: a function that sets the initial orientation
func WithOrientation(pitch, yaw float32) HandleBuilderOption {
	return func(h *handleImpl) {
		h.pitch, h.yaw = pitch, yaw
	}
}
