package input

// Zoomable is the part of the viewport state the zoom controller mutates.
type Zoomable interface {
	Surface

	// ApplyZoomDelta steps the zoom factor in the direction of the delta's sign.
	ApplyZoomDelta(rawDelta float32)
}

// zoomController is the implementation of the ZoomController interface.
type zoomController struct {
	viewport Zoomable
}

// ZoomController maps wheel events over the surface to viewport zoom steps.
// It keeps no state of its own; bounding the zoom is left to the viewport's clamp.
type ZoomController interface {
	// Handle applies one wheel event.
	//
	// Parameters:
	//   - ev: the raw event; non-wheel events are ignored
	//
	// Returns:
	//   - bool: true if the event was over the surface and its default action should be suppressed
	Handle(ev Event) bool
}

var _ ZoomController = &zoomController{}

// NewZoomController creates a ZoomController for the given viewport.
//
// Parameters:
//   - viewport: the viewport receiving zoom steps
//
// Returns:
//   - ZoomController: the controller
func NewZoomController(viewport Zoomable) ZoomController {
	return &zoomController{viewport: viewport}
}

func (z *zoomController) Handle(ev Event) bool {
	wheel, ok := ev.(WheelInput)
	if !ok || !z.viewport.Contains(wheel.X, wheel.Y) {
		return false
	}
	z.viewport.ApplyZoomDelta(wheel.Delta)
	return true
}
