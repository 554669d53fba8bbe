package loader

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithPoster makes Load asynchronous: decoding runs on worker goroutines and completions are
// posted through p.
//
// Parameters:
//   - p: the poster that receives completion tasks
//
// Returns:
//   - LoaderBuilderOption: a function that applies the poster option to a loader
func WithPoster(p Poster) LoaderBuilderOption {
	return func(l *loader) {
		l.poster = p
	}
}

// WithWorkers sets the maximum number of decode goroutines. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithLogger sets the diagnostic logger.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMesh pre-populates the mesh cache, so loads of key resolve without touching the filesystem.
//
// Parameters:
//   - key: the cache key for the mesh
//   - mesh: the mesh to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mesh option to a loader
func WithMesh(key string, mesh *asset.Mesh) LoaderBuilderOption {
	return func(l *loader) {
		l.meshCache[key] = mesh
	}
}
