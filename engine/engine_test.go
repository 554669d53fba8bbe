package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	polls    int
	maxPolls int
	onPoll   func(poll int)
	onResize func(width, height int)
}

func (h *fakeHost) PollEvents() bool {
	h.polls++
	if h.onPoll != nil {
		h.onPoll(h.polls)
	}
	return h.maxPolls == 0 || h.polls <= h.maxPolls
}

func (h *fakeHost) IsRunning() bool { return true }

func (h *fakeHost) SetResizeCallback(callback func(width, height int)) { h.onResize = callback }

type fakeDrawer struct {
	frames    []scene.FrameSnapshot
	sizes     [][2]int
	drawErr   error
	resizeErr error
}

func (d *fakeDrawer) DrawFrame(snap scene.FrameSnapshot) error {
	d.frames = append(d.frames, snap)
	return d.drawErr
}

func (d *fakeDrawer) Resize(width, height int) error {
	d.sizes = append(d.sizes, [2]int{width, height})
	return d.resizeErr
}

func newTestScene() scene.Scene {
	return scene.NewScene("test", camera.NewCamera(), asset.NewHandle())
}

func TestRunRequiresCollaborators(t *testing.T) {
	err := NewEngine().Run(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRunDrawsOneFramePerIteration(t *testing.T) {
	host := &fakeHost{maxPolls: 3}
	drawer := &fakeDrawer{}
	callbacks := 0
	e := NewEngine(
		WithWindow(host),
		WithRenderer(drawer),
		WithScene(newTestScene()),
		WithFrameCallback(func(float32) { callbacks++ }),
	)

	require.NoError(t, e.Run(context.Background()))
	assert.Len(t, drawer.frames, 3)
	assert.Equal(t, 3, callbacks)
	assert.False(t, e.Running())
}

func TestPostedTasksRunOnLoopBeforeDraw(t *testing.T) {
	host := &fakeHost{maxPolls: 2}
	drawer := &fakeDrawer{}
	sc := newTestScene()
	e := NewEngine(WithWindow(host), WithRenderer(drawer), WithScene(sc))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Post(func() {
			_ = sc.Asset().Populate(asset.NewCubeMesh(1))
		})
	}()
	wg.Wait()

	require.NoError(t, e.Run(context.Background()))
	require.Len(t, drawer.frames, 2)
	assert.NotNil(t, drawer.frames[0].Mesh, "task ran before the first draw")

	assert.NotPanics(t, func() {
		e.Post(func() {})
		e.Post(nil)
	}, "posting after the loop stopped does not block")
}

func TestQuitStopsLoop(t *testing.T) {
	drawer := &fakeDrawer{}
	var e Engine
	host := &fakeHost{onPoll: func(poll int) {
		if poll == 2 {
			e.Quit()
			e.Quit()
		}
	}}
	e = NewEngine(WithWindow(host), WithRenderer(drawer), WithScene(newTestScene()))

	require.NoError(t, e.Run(context.Background()))
	assert.Len(t, drawer.frames, 2)
}

func TestContextCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	host := &fakeHost{onPoll: func(poll int) {
		if poll == 1 {
			cancel()
		}
	}}
	e := NewEngine(WithWindow(host), WithRenderer(&fakeDrawer{}), WithScene(newTestScene()))

	assert.ErrorIs(t, e.Run(ctx), context.Canceled)
}

func TestDrawFailureIsFatal(t *testing.T) {
	cause := errors.New("device lost")
	drawer := &fakeDrawer{drawErr: cause}
	host := &fakeHost{}
	e := NewEngine(WithWindow(host), WithRenderer(drawer), WithScene(newTestScene()))

	err := e.Run(context.Background())
	assert.ErrorIs(t, err, cause)
	assert.Len(t, drawer.frames, 1, "no retry")
}

func TestResizeReachesCameraAndRenderer(t *testing.T) {
	drawer := &fakeDrawer{}
	sc := newTestScene()
	var host *fakeHost
	host = &fakeHost{maxPolls: 2, onPoll: func(poll int) {
		if poll == 1 {
			host.onResize(800, 600)
		}
	}}
	e := NewEngine(WithWindow(host), WithRenderer(drawer), WithScene(sc))

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, [][2]int{{800, 600}}, drawer.sizes, "one resize event, one surface reconfigure")
	assert.Len(t, drawer.frames, 2)
	assert.InDelta(t, 800.0/600.0, sc.Camera().Aspect(), 1e-6)
}

func TestResizeFailureIsFatal(t *testing.T) {
	cause := errors.New("surface lost")
	drawer := &fakeDrawer{resizeErr: cause}
	var host *fakeHost
	host = &fakeHost{onPoll: func(poll int) {
		if poll == 1 {
			host.onResize(10, 10)
		}
	}}
	e := NewEngine(WithWindow(host), WithRenderer(drawer), WithScene(newTestScene()))

	assert.ErrorIs(t, e.Run(context.Background()), cause)
	assert.Empty(t, drawer.frames)
	assert.Equal(t, 1, host.polls, "loop stops on the iteration that saw the failure")
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(50)).(*engine)
	assert.Equal(t, int64(20_000_000), e.renderFrameLimit.Nanoseconds())

	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}
