package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestScaleCursor(t *testing.T) {
	x, y := scaleCursor(100, 50, 800, 600, 1600, 1200)
	assert.Equal(t, float32(200), x)
	assert.Equal(t, float32(100), y)

	x, y = scaleCursor(10, 20, 0, 0, 1600, 1200)
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(20), y)
}

func TestButtonMapping(t *testing.T) {
	phase, ok := buttonPhase(glfw.Press)
	assert.True(t, ok)
	assert.Equal(t, input.PhaseDown, phase)

	phase, ok = buttonPhase(glfw.Release)
	assert.True(t, ok)
	assert.Equal(t, input.PhaseUp, phase)

	_, ok = buttonPhase(glfw.Repeat)
	assert.False(t, ok)

	assert.Equal(t, input.ButtonLeft, mouseButton(glfw.MouseButtonLeft))
	assert.Equal(t, input.ButtonRight, mouseButton(glfw.MouseButtonRight))
	assert.Equal(t, input.ButtonMiddle, mouseButton(glfw.MouseButton4))
}

func TestCallbacksWithoutPlatformWindow(t *testing.T) {
	w := &engineWindow{width: 10, height: 10}

	var got []input.Event
	var size [2]int
	w.SetInputCallback(func(ev input.Event) { got = append(got, ev) })
	w.SetResizeCallback(func(width, height int) { size = [2]int{width, height} })

	w.emit(input.WheelInput{X: 1, Y: 2, Delta: 1})
	w.resized(640, 480)

	assert.Equal(t, []input.Event{input.WheelInput{X: 1, Y: 2, Delta: 1}}, got)
	assert.Equal(t, [2]int{640, 480}, size)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())

	assert.False(t, w.IsRunning())
	assert.False(t, w.PollEvents())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
	assert.NotPanics(t, func() {
		w.RequestClose()
		w.SetTitle("x")
	})
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{title: "oxyview", width: 1280, height: 720, minWidth: 200, minHeight: 150, maxWidth: 3840, maxHeight: 2160}
	called := false
	for _, opt := range []WindowBuilderOption{
		WithTitle(""),
		WithSize(800, -1),
		WithHeight(600),
		WithSizeLimits(320, 500, 1920, 400),
		WithResizable(false),
		WithInputCallback(func(input.Event) { called = true }),
	} {
		opt(w)
	}

	assert.Equal(t, "oxyview", w.title)
	assert.Equal(t, 800, w.width)
	assert.Equal(t, 600, w.height)
	assert.Equal(t, [2]int{320, 1920}, [2]int{w.minWidth, w.maxWidth})
	assert.Equal(t, [2]int{150, 2160}, [2]int{w.minHeight, w.maxHeight}, "inverted height limits ignored")
	assert.True(t, w.fixedSize)

	w.emit(input.WheelInput{Delta: 1})
	assert.True(t, called)
}

func TestDefaultsLeaveMaximumSizeUnbounded(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, "oxyview", w.title)
	assert.Equal(t, [2]int{1280, 720}, [2]int{w.width, w.height})
	assert.Equal(t, [2]int{200, 150}, [2]int{w.minWidth, w.minHeight})
	assert.Equal(t, glfw.DontCare, sizeLimit(w.maxWidth))
	assert.Equal(t, glfw.DontCare, sizeLimit(w.maxHeight))
	assert.Equal(t, 200, sizeLimit(w.minWidth))

	w = newEngineWindow(WithSizeLimits(640, 360, 0, 1440))
	assert.Equal(t, glfw.DontCare, sizeLimit(w.maxWidth))
	assert.Equal(t, 1440, sizeLimit(w.maxHeight))
	assert.Equal(t, [2]int{640, 360}, [2]int{w.minWidth, w.minHeight})
}
