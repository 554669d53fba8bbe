package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
)

// ErrUnsupportedFormat is returned when no backend accepts the asset's file extension.
var ErrUnsupportedFormat = errors.New("unsupported asset format")

// ErrReleased is returned for loads requested after Release.
var ErrReleased = errors.New("loader released")

// LoadError reports a failed asset load. It wraps the underlying cause.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load asset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Poster queues a task to run on the owner's goroutine. The render loop implements it so that
// load completions run atomically with respect to input callbacks and frame draws.
type Poster interface {
	Post(task func())
}

// Summary describes a loaded asset.
type Summary struct {
	Name      string
	Vertices  int
	Triangles int
	BoundsMin [3]float32
	BoundsMax [3]float32
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	meshCache map[string]*asset.Mesh

	backend loaderBackend
	poster  Poster
	logger  *slog.Logger

	workers  int
	pool     worker.DynamicWorkerPool
	poolOnce sync.Once
	taskID   atomic.Int64
	released atomic.Bool
}

// Loader defines the public-facing interface for loading and caching 3D assets.
// It abstracts the file format (glTF, GLB) behind a backend and caches every mesh by path.
type Loader interface {
	// Load reads the asset at path and delivers the result to onDone exactly once.
	//
	// When a Poster is configured, decoding happens on a worker goroutine and the completion is
	// posted back to the poster's goroutine. Without a Poster, Load decodes inline and calls onDone
	// before returning. Failures are logged at error level and are not retried.
	//
	// Parameters:
	//   - path: the file path to the asset
	//   - onDone: completion callback receiving the mesh or a *LoadError
	Load(path string, onDone func(*asset.Mesh, error))

	// LoadSync reads the asset at path on the calling goroutine.
	// If the asset is already cached (by path), the cached mesh is returned.
	//
	// Parameters:
	//   - path: the file path to the asset
	//
	// Returns:
	//   - *asset.Mesh: the loaded mesh
	//   - error: a *LoadError if loading fails
	LoadSync(path string) (*asset.Mesh, error)

	// Info loads the asset (or reads it from cache) and summarizes its geometry.
	//
	// Parameters:
	//   - path: the file path to the asset
	//
	// Returns:
	//   - Summary: vertex/triangle counts and bounds
	//   - error: a *LoadError if loading fails
	Info(path string) (Summary, error)

	// Get retrieves a cached mesh by path. Returns nil if not found.
	//
	// Parameters:
	//   - path: the cache key to look up
	//
	// Returns:
	//   - *asset.Mesh: the cached mesh or nil
	Get(path string) *asset.Mesh

	// Release stops the decode workers. Loads requested afterwards complete immediately with
	// ErrReleased. Safe to call more than once.
	Release()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the glTF backend and the provided options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		meshCache: make(map[string]*asset.Mesh),
		backend:   newGLTFLoaderBackend(),
		logger:    slog.Default(),
		workers:   1,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string, onDone func(*asset.Mesh, error)) {
	var once sync.Once
	complete := func(mesh *asset.Mesh, err error) {
		once.Do(func() {
			if onDone != nil {
				onDone(mesh, err)
			}
		})
	}

	if l.released.Load() {
		complete(nil, &LoadError{Path: path, Err: ErrReleased})
		return
	}
	if l.poster == nil {
		complete(l.load(path))
		return
	}

	l.workerPool().SubmitTask(worker.Task{
		ID: int(l.taskID.Add(1)),
		Do: func() (any, error) {
			mesh, err := l.load(path)
			l.poster.Post(func() { complete(mesh, err) })
			return nil, nil
		},
	})
}

func (l *loader) LoadSync(path string) (*asset.Mesh, error) {
	l.mu.RLock()
	if cached, ok := l.meshCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	if err := l.resolveBackend(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	mesh, err := l.backend.Load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	l.mu.Lock()
	l.meshCache[path] = mesh
	l.mu.Unlock()

	return mesh, nil
}

func (l *loader) Info(path string) (Summary, error) {
	mesh, err := l.LoadSync(path)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Name:      mesh.Name,
		Vertices:  mesh.VertexCount(),
		Triangles: mesh.TriangleCount(),
		BoundsMin: mesh.BoundsMin,
		BoundsMax: mesh.BoundsMax,
	}, nil
}

func (l *loader) Get(path string) *asset.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshCache[path]
}

func (l *loader) Release() {
	if l.released.Swap(true) {
		return
	}
	// no pool can be created once this Do has run
	l.poolOnce.Do(func() {})
	if l.pool != nil {
		l.pool.Stop()
	}
}

// load wraps LoadSync with timing and diagnostic logging.
func (l *loader) load(path string) (*asset.Mesh, error) {
	start := time.Now()
	mesh, err := l.LoadSync(path)
	if err != nil {
		l.logger.Error("asset load failed", "path", path, "error", err)
		return nil, err
	}
	l.logger.Info("asset loaded",
		"path", path,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
		"elapsed", time.Since(start),
	)
	return mesh, nil
}

// workerPool lazily starts the decode pool the first time an asynchronous load is requested.
func (l *loader) workerPool() worker.DynamicWorkerPool {
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 16, 1*time.Second)
	})
	return l.pool
}

// resolveBackend checks that the configured backend accepts the file extension.
func (l *loader) resolveBackend(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(l.backend.Extensions(), ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}
