package input

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitTarget is the asset the camera orbits.
type OrbitTarget interface {
	Loaded() bool
	Position() mgl32.Vec3
}

// Eye is the camera moved by the orbit controller.
type Eye interface {
	SetPosition(x, y, z float32)
	LookAt(x, y, z float32)
}

// DragSource reports whether a manual drag is in progress.
type DragSource interface {
	Dragging() bool
}

// OrbitPolicy decides how the automatic orbit interacts with a manual drag.
type OrbitPolicy int

const (
	// OrbitAlways keeps orbiting during a drag, so the camera motion and the manual rotation combine.
	OrbitAlways OrbitPolicy = iota

	// OrbitPausedWhileDragging holds the orbit (elapsed time included) while a drag is in progress.
	OrbitPausedWhileDragging
)

// String returns the policy name used in config files and flags.
func (p OrbitPolicy) String() string {
	switch p {
	case OrbitPausedWhileDragging:
		return "paused-while-dragging"
	default:
		return "always"
	}
}

// ParseOrbitPolicy parses a policy name produced by OrbitPolicy.String.
//
// Parameters:
//   - s: the policy name
//
// Returns:
//   - OrbitPolicy: the parsed policy
//   - bool: false if the name is unknown
func ParseOrbitPolicy(s string) (OrbitPolicy, bool) {
	switch s {
	case "always", "":
		return OrbitAlways, true
	case "paused-while-dragging":
		return OrbitPausedWhileDragging, true
	default:
		return OrbitAlways, false
	}
}

// orbitController is the implementation of the OrbitController interface.
type orbitController struct {
	target OrbitTarget
	eye    Eye
	drag   DragSource

	policy  OrbitPolicy
	enabled bool

	step    float32
	radius  float32
	elapsed float32
}

// OrbitController circles the camera around the asset in the horizontal plane, one fixed time
// step per frame, keeping the camera pointed at the asset.
type OrbitController interface {
	// Step advances the orbit by one frame.
	//
	// Returns:
	//   - bool: true if the camera was moved
	Step() bool

	// Elapsed returns the orbit clock.
	Elapsed() float32

	// Policy returns the drag interaction policy.
	Policy() OrbitPolicy

	// SetPolicy changes the drag interaction policy.
	SetPolicy(policy OrbitPolicy)

	// Enabled reports whether Step moves the camera.
	Enabled() bool

	// SetEnabled turns orbiting on or off. The orbit clock is kept.
	SetEnabled(enabled bool)

	// Reset rewinds the orbit clock to zero.
	Reset()
}

var _ OrbitController = &orbitController{}

// NewOrbitController creates an enabled OrbitController.
//
// Parameters:
//   - target: the asset to orbit
//   - eye: the camera to move
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the controller
func NewOrbitController(target OrbitTarget, eye Eye, options ...OrbitBuilderOption) OrbitController {
	o := &orbitController{
		target:  target,
		eye:     eye,
		enabled: true,
		step:    0.01,
		radius:  0.3,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

func (o *orbitController) Step() bool {
	if !o.enabled || !o.target.Loaded() {
		return false
	}
	if o.policy == OrbitPausedWhileDragging && o.drag != nil && o.drag.Dragging() {
		return false
	}

	o.elapsed += o.step
	x, z := common.OrbitPoint(o.radius, o.elapsed)
	center := o.target.Position()
	o.eye.SetPosition(center.X()+x, center.Y(), center.Z()+z)
	o.eye.LookAt(center.X(), center.Y(), center.Z())
	return true
}

func (o *orbitController) Elapsed() float32 {
	return o.elapsed
}

func (o *orbitController) Policy() OrbitPolicy {
	return o.policy
}

func (o *orbitController) SetPolicy(policy OrbitPolicy) {
	o.policy = policy
}

func (o *orbitController) Enabled() bool {
	return o.enabled
}

func (o *orbitController) SetEnabled(enabled bool) {
	o.enabled = enabled
}

func (o *orbitController) Reset() {
	o.elapsed = 0
}
