package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// ErrNotConfigured is returned by Run when the engine has no host, renderer or scene.
var ErrNotConfigured = errors.New("engine requires a window, a renderer and a scene")

// Host is the part of the window the render loop drives.
type Host interface {
	PollEvents() bool
	IsRunning() bool
	SetResizeCallback(callback func(width, height int))
}

// Drawer is the part of the renderer the render loop drives.
type Drawer interface {
	DrawFrame(snap scene.FrameSnapshot) error
	Resize(width, height int) error
}

type engine struct {
	running atomic.Bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	tasks chan func()

	host   Host
	drawer Drawer
	scene  scene.Scene
	logger *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	// resizeErr holds a surface reconfiguration failure until the loop can return it
	resizeErr error
}

// Engine is the viewer's render loop.
//
// The loop runs on the calling goroutine, which must be the goroutine that owns the window (GLFW and
// WebGPU both need the main OS thread). Each iteration it checks the stop flag, dispatches pending
// window events, runs tasks posted from other goroutines, invokes the frame callback, draws exactly one
// frame of the scene and ticks the profiler. Frame pacing comes from the renderer's present mode and the
// optional frame limit.
type Engine interface {
	// Run drives the loop until the context is cancelled, Quit is called or the window closes.
	//
	// Parameters:
	//   - ctx: cancelling the context stops the loop
	//
	// Returns:
	//   - error: nil after Quit or a closed window, ctx.Err() after cancellation, or the wrapped draw
	//     or resize failure that stopped the loop
	Run(ctx context.Context) error

	// Quit stops the loop before its next iteration. Safe to call many times and from any goroutine.
	Quit()

	// Running reports whether Run is executing.
	Running() bool

	// Post queues a task to run on the loop goroutine before the next frame. Tasks posted after the
	// loop has stopped are dropped. Safe to call from any goroutine.
	//
	// Parameters:
	//   - task: the function to run
	Post(task func())

	// Scene returns the scene drawn each frame.
	Scene() scene.Scene

	// EnableProfiler enables frame and memory statistics logging.
	EnableProfiler()

	// DisableProfiler disables frame and memory statistics logging.
	DisableProfiler()

	// SetFrameCallback sets the function invoked once per frame before drawing.
	//
	// Parameters:
	//   - callback: function receiving the seconds since the previous frame (or nil to disable)
	SetFrameCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit caps the frame rate. Values <= 0 remove the cap.
	//
	// Parameters:
	//   - fps: maximum frames per second
	SetRenderFrameLimit(fps float64)
}

var _ Engine = &engine{}

// NewEngine creates a new Engine and hooks the window's resize events to the scene camera and the renderer.
//
// Parameters:
//   - options: functional options to configure the engine
//
// Returns:
//   - Engine: the engine, not yet running
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		tasks:       make(chan func(), 64),
		logger:      slog.Default(),
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.host != nil {
		e.host.SetResizeCallback(e.resize)
	}

	return e
}

// resize runs on the loop goroutine from inside PollEvents.
func (e *engine) resize(width, height int) {
	if e.scene != nil {
		e.scene.Camera().Resize(width, height)
	}
	if e.drawer != nil {
		if err := e.drawer.Resize(width, height); err != nil && e.resizeErr == nil {
			e.resizeErr = err
		}
	}
	e.logger.Debug("viewport resized", "width", width, "height", height)
}

func (e *engine) Run(ctx context.Context) error {
	if e.host == nil || e.drawer == nil || e.scene == nil {
		return ErrNotConfigured
	}
	if !e.running.CompareAndSwap(false, true) {
		return errors.New("engine is already running")
	}
	defer e.running.Store(false)
	// release goroutines blocked in Post
	defer e.Quit()

	lastFrame := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quitChannel:
			return nil
		default:
		}

		if !e.host.PollEvents() || !e.host.IsRunning() {
			return nil
		}
		if e.resizeErr != nil {
			return fmt.Errorf("resize surface: %w", e.resizeErr)
		}
		e.drainTasks()

		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		if e.frameCallback != nil {
			e.frameCallback(dt)
		}

		if err := e.drawer.DrawFrame(e.scene.Snapshot()); err != nil {
			e.logger.Error("draw failed", "err", err)
			return fmt.Errorf("draw frame: %w", err)
		}

		if e.profilingEnabled {
			e.profiler.Tick()
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// drainTasks runs every task queued so far without waiting for more.
func (e *engine) drainTasks() {
	for {
		select {
		case task := <-e.tasks:
			task()
		default:
			return
		}
	}
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Running() bool {
	return e.running.Load()
}

func (e *engine) Post(task func()) {
	if task == nil {
		return
	}
	select {
	case e.tasks <- task:
	case <-e.quitChannel:
	}
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
