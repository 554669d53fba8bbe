package loader

import "github.com/Carmen-Shannon/oxy-viewer/engine/asset"

// loaderBackend defines the generic interface for reading an asset file into a mesh.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load reads the asset at path and flattens it into a single mesh with node
	// transforms applied.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *asset.Mesh: the flattened mesh with bounds computed
	//   - error: error if reading or decoding fails
	Load(path string) (*asset.Mesh, error)

	// Extensions returns the lower-case file extensions (with the leading dot) the backend accepts.
	Extensions() []string
}
