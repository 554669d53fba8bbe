package renderer

import (
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/viewer.wgsl
var viewerShaderSource string

// SurfaceSource is the window side of the renderer: it describes the native surface to draw to
// and its current framebuffer size.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	logger      *slog.Logger

	width  int
	height int

	// uploaded is the mesh currently resident on the GPU
	uploaded *asset.Mesh

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer draws frame snapshots of the viewer scene to a window surface.
//
// The renderer owns a single lit pipeline and keeps at most one mesh resident on the GPU. A snapshot
// whose mesh differs from the resident one triggers a re-upload; a snapshot without a mesh only
// clears the surface.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// Non-positive sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface attachments could not be recreated
	Resize(width, height int) error

	// SetPresentMode changes how frames are delivered to the display and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	SetPresentMode(mode PresentMode) error

	// DrawFrame uploads the frame uniform, records one render pass and presents it.
	//
	// Parameters:
	//   - snap: the frame snapshot to draw
	//
	// Returns:
	//   - error: an error if the mesh upload, surface acquisition or submission failed
	DrawFrame(snap scene.FrameSnapshot) error

	// Release frees every GPU object owned by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing to the given surface, configures the surface at its current size
// and registers the viewer pipeline.
//
// Parameters:
//   - backendType: the GPU backend implementation to use
//   - surface: the window surface to draw to
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the GPU device, surface or pipeline could not be created
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}
	if !msaa.Valid() {
		return nil, fmt.Errorf("unsupported msaa sample count %d", msaa)
	}

	var backend RendererBackend
	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}
	if err != nil {
		return nil, err
	}

	if err := r.attach(backend, surface.Width(), surface.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	presentMode := PresentModeVSync
	if r.pendingPresentMode != nil {
		presentMode = *r.pendingPresentMode
	}
	r.logger.Info("renderer ready", "present_mode", presentMode.String(), "msaa", uint32(msaa))
	return r, nil
}

// newRenderer applies options to a renderer without a backend.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attach configures the backend for the initial surface size and registers the viewer pipeline.
func (r *renderer) attach(backend RendererBackend, width, height int) error {
	r.backend = backend
	r.backend.SetClearColor(r.clearColor)
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.width, r.height = max(width, 1), max(height, 1)
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}

	uniform := GPUFrameUniform{}
	if err := r.backend.RegisterViewerPipeline(viewerShaderSource, uniform.Size()); err != nil {
		return fmt.Errorf("register viewer pipeline: %w", err)
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 || (width == r.width && height == r.height) {
		return nil
	}
	r.width, r.height = width, height
	r.logger.Debug("surface resized", "width", width, "height", height)
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.SetPresentMode(mode)
	return r.backend.ConfigureSurface(r.width, r.height)
}

func (r *renderer) DrawFrame(snap scene.FrameSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snap.Mesh != r.uploaded {
		if err := r.upload(snap.Mesh); err != nil {
			return err
		}
	}

	uniform := NewGPUFrameUniform(snap)
	r.backend.WriteFrameUniform(uniform.Marshal())

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if snap.Mesh != nil {
		r.backend.DrawMesh()
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	r.backend.Present()
	return nil
}

// upload replaces the resident mesh. A nil mesh drops the GPU buffers.
func (r *renderer) upload(mesh *asset.Mesh) error {
	if mesh == nil {
		if err := r.backend.UploadMesh("", nil, nil, 0); err != nil {
			return err
		}
		r.uploaded = nil
		return nil
	}

	if err := r.backend.UploadMesh(mesh.Name, mesh.VertexData(), mesh.IndexData(), len(mesh.Indices)); err != nil {
		return fmt.Errorf("upload mesh %q: %w", mesh.Name, err)
	}
	r.uploaded = mesh
	r.logger.Debug("mesh uploaded", "name", mesh.Name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend != nil {
		r.backend.Release()
	}
	r.uploaded = nil
}
