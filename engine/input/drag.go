package input

// Surface reports whether a pixel coordinate lies on the render surface.
type Surface interface {
	Contains(x, y float32) bool
}

// Rotatable is the part of the asset handle the drag controller mutates.
type Rotatable interface {
	// Rotate applies an incremental rotation and reports whether it took effect.
	Rotate(dPitch, dYaw float32) bool
}

// DragState is the state of the drag-rotate state machine.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

// dragController is the implementation of the DragController interface.
type dragController struct {
	surface Surface
	target  Rotatable

	sensitivityX float32
	sensitivityY float32

	state DragState
	lastX float32
	lastY float32
}

// DragController rotates the asset while the primary pointer is held down on the surface.
//
// Horizontal pointer movement turns the asset around its Y axis (yaw), vertical movement around
// its X axis (pitch). Rotation is applied through Rotatable, so it is a no-op until the asset has
// loaded.
type DragController interface {
	// Handle feeds one raw event through the state machine.
	//
	// Parameters:
	//   - ev: the raw event; non-pointer events are ignored
	//
	// Returns:
	//   - bool: true if the host should suppress the event's default action (touch events)
	Handle(ev Event) bool

	// State returns the current state.
	State() DragState

	// Dragging reports whether a drag is in progress.
	Dragging() bool

	// Stop ends any drag in progress. Calling it while idle does nothing.
	Stop()
}

var _ DragController = &dragController{}

// NewDragController creates an idle DragController.
//
// Parameters:
//   - surface: bounds check for drag starts
//   - target: the asset receiving rotations
//   - options: functional options to configure the controller
//
// Returns:
//   - DragController: the controller
func NewDragController(surface Surface, target Rotatable, options ...DragBuilderOption) DragController {
	d := &dragController{
		surface:      surface,
		target:       target,
		sensitivityX: 0.01,
		sensitivityY: 0.01,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *dragController) Handle(ev Event) bool {
	sample, ok := Normalize(ev)

	switch sample.Phase {
	case PhaseDown:
		if ok && sample.Primary && d.surface.Contains(sample.X, sample.Y) {
			d.state = DragDragging
			d.lastX, d.lastY = sample.X, sample.Y
		}
	case PhaseMove:
		if d.state != DragDragging {
			break
		}
		// the first touch point went away mid-drag
		if !ok {
			d.Stop()
			break
		}
		dx, dy := sample.X-d.lastX, sample.Y-d.lastY
		d.target.Rotate(dy*d.sensitivityY, dx*d.sensitivityX)
		d.lastX, d.lastY = sample.X, sample.Y
	case PhaseUp, PhaseCancel:
		d.Stop()
	default:
		return false
	}

	return sample.Source == SourceTouch
}

func (d *dragController) State() DragState {
	return d.state
}

func (d *dragController) Dragging() bool {
	return d.state == DragDragging
}

func (d *dragController) Stop() {
	d.state = DragIdle
	d.lastX, d.lastY = 0, 0
}
