// Package input turns raw host input into viewer state changes.
//
// Hosts deliver events as one of the Event variants. Pointer variants (MouseInput, TouchInput) are
// reduced to a PointerSample by Normalize before any controller logic looks at them, so the drag
// controller never has to care which modality produced a sample.
package input

// Phase is the stage of a pointer interaction.
type Phase int

const (
	// PhaseNone marks a sample that carries no pointer phase.
	PhaseNone Phase = iota
	PhaseDown
	PhaseMove
	PhaseUp
	PhaseCancel
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Source identifies the modality that produced a pointer sample.
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Event is a raw input event delivered by a host. The concrete type is one of MouseInput,
// TouchInput or WheelInput.
type Event interface {
	isEvent()
}

// MouseInput is a mouse button or cursor event in surface pixel coordinates.
// Button is only meaningful for PhaseDown and PhaseUp.
type MouseInput struct {
	Phase  Phase
	X, Y   float32
	Button Button
}

// TouchPoint is one active contact of a touch event.
type TouchPoint struct {
	ID   int
	X, Y float32
}

// TouchInput is a touch event. Touches lists the contacts still active after the event, so a
// touch-end usually carries none.
type TouchInput struct {
	Phase   Phase
	Touches []TouchPoint
}

// WheelInput is a scroll event at the cursor position. Delta is positive when scrolling up.
type WheelInput struct {
	X, Y  float32
	Delta float32
}

func (MouseInput) isEvent() {}
func (TouchInput) isEvent() {}
func (WheelInput) isEvent() {}

// PointerSample is the modality-independent form of a pointer event.
type PointerSample struct {
	Phase  Phase
	X, Y   float32
	Source Source

	// Primary is true for the left mouse button and for the first touch point.
	Primary bool
}

// Normalize reduces a pointer event to a PointerSample.
//
// The returned sample's Phase and Source are always filled in for pointer events. ok is false when
// the event has no usable position: a touch event without touch points, or a non-pointer event.
//
// Parameters:
//   - ev: the raw event
//
// Returns:
//   - PointerSample: the normalized sample
//   - bool: true if the sample carries a position
func Normalize(ev Event) (PointerSample, bool) {
	switch e := ev.(type) {
	case MouseInput:
		return PointerSample{
			Phase:   e.Phase,
			X:       e.X,
			Y:       e.Y,
			Source:  SourceMouse,
			Primary: e.Button == ButtonLeft,
		}, true
	case TouchInput:
		s := PointerSample{Phase: e.Phase, Source: SourceTouch}
		if len(e.Touches) == 0 {
			return s, false
		}
		s.X, s.Y = e.Touches[0].X, e.Touches[0].Y
		s.Primary = true
		return s, true
	default:
		return PointerSample{}, false
	}
}
