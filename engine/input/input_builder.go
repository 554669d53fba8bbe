package input

// DragBuilderOption is a functional option for configuring a DragController.
type DragBuilderOption func(*dragController)

// OrbitBuilderOption is a functional option for configuring an OrbitController.
type OrbitBuilderOption func(*orbitController)

// WithSensitivity sets the radians of rotation per pixel of pointer movement.
//
// Parameters:
//   - x: yaw per horizontal pixel
//   - y: pitch per vertical pixel
//
// Returns:
//   - DragBuilderOption: option function to apply
func WithSensitivity(x, y float32) DragBuilderOption {
	return func(d *dragController) {
		d.sensitivityX = x
		d.sensitivityY = y
	}
}

// WithOrbitStep sets how far the orbit clock advances per frame. Non-positive values are ignored.
//
// Parameters:
//   - step: clock increment per frame
//
// Returns:
//   - OrbitBuilderOption: option function to apply
func WithOrbitStep(step float32) OrbitBuilderOption {
	return func(o *orbitController) {
		if step > 0 {
			o.step = step
		}
	}
}

// WithOrbitRadius sets the distance between the camera and the asset. Non-positive values are ignored.
//
// Parameters:
//   - radius: orbit radius in world units
//
// Returns:
//   - OrbitBuilderOption: option function to apply
func WithOrbitRadius(radius float32) OrbitBuilderOption {
	return func(o *orbitController) {
		if radius > 0 {
			o.radius = radius
		}
	}
}

// WithOrbitPolicy sets the drag interaction policy.
//
// Parameters:
//   - policy: the policy
//
// Returns:
//   - OrbitBuilderOption: option function to apply
func WithOrbitPolicy(policy OrbitPolicy) OrbitBuilderOption {
	return func(o *orbitController) {
		o.policy = policy
	}
}

// WithDragSource sets the drag state consulted by OrbitPausedWhileDragging.
//
// Parameters:
//   - drag: usually the DragController
//
// Returns:
//   - OrbitBuilderOption: option function to apply
func WithDragSource(drag DragSource) OrbitBuilderOption {
	return func(o *orbitController) {
		o.drag = drag
	}
}

// WithOrbitEnabled sets whether the orbit starts enabled.
//
// Parameters:
//   - enabled: initial enabled flag
//
// Returns:
//   - OrbitBuilderOption: option function to apply
func WithOrbitEnabled(enabled bool) OrbitBuilderOption {
	return func(o *orbitController) {
		o.enabled = enabled
	}
}
