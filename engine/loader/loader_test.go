package loader

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type triangleOptions struct {
	normals bool
	indices bool
	shiftX  bool
	mirrorX bool
}

// writeTriangle saves a single-triangle GLB under a temp dir and returns its path.
func writeTriangle(t *testing.T, opts triangleOptions) string {
	t.Helper()

	doc := gltf.NewDocument()
	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
	}
	if opts.normals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	}
	prim := &gltf.Primitive{Attributes: attrs}
	if opts.indices {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 2}))
	}
	doc.Meshes = []*gltf.Mesh{{Name: "tri", Primitives: []*gltf.Primitive{prim}}}

	node := &gltf.Node{Name: "root", Mesh: gltf.Index(0)}
	if opts.shiftX {
		node.Translation[0] = 2
	}
	if opts.mirrorX {
		node.Scale[0], node.Scale[1], node.Scale[2] = -1, 1, 1
	}
	doc.Nodes = []*gltf.Node{node}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

type chanPoster chan func()

func (p chanPoster) Post(task func()) { p <- task }

func TestLoadSyncTriangle(t *testing.T) {
	path := writeTriangle(t, triangleOptions{normals: true, indices: true, shiftX: true})
	l := NewLoader()

	mesh, err := l.LoadSync(path)
	require.NoError(t, err)

	assert.Equal(t, "tri.glb", mesh.Name)
	assert.Equal(t, 3, mesh.VertexCount())
	assert.Equal(t, 1, mesh.TriangleCount())
	assert.InDelta(t, 2, mesh.BoundsMin[0], 1e-6, "node translation is applied")
	assert.InDelta(t, 3, mesh.BoundsMax[0], 1e-6)
	assert.InDelta(t, 1, mesh.Vertices[0].Normal[2], 1e-6)

	again, err := l.LoadSync(path)
	require.NoError(t, err)
	assert.Same(t, mesh, again, "second load is served from cache")
	assert.Same(t, mesh, l.Get(path))
}

func TestLoadGeneratesMissingData(t *testing.T) {
	path := writeTriangle(t, triangleOptions{})
	mesh, err := NewLoader().LoadSync(path)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	for _, v := range mesh.Vertices {
		assert.InDelta(t, 1, v.Normal[2], 1e-6)
	}
}

func TestLoadMirroredNodeKeepsFrontFace(t *testing.T) {
	path := writeTriangle(t, triangleOptions{mirrorX: true})
	mesh, err := NewLoader().LoadSync(path)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 2, 1}, mesh.Indices)
	assert.InDelta(t, -1, mesh.BoundsMin[0], 1e-6)
	assert.InDelta(t, 1, mesh.Vertices[0].Normal[2], 1e-6)
}

func TestLoadErrors(t *testing.T) {
	l := NewLoader()

	_, err := l.LoadSync("model.obj")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = l.LoadSync(filepath.Join(t.TempDir(), "missing.glb"))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Path, "missing.glb")
	assert.Nil(t, l.Get(loadErr.Path), "failures are not cached")
}

func TestImportEmptyDocument(t *testing.T) {
	_, err := importDocument(gltf.NewDocument(), "empty")
	assert.ErrorIs(t, err, ErrEmptyAsset)
}

func TestLoadInlineWithoutPoster(t *testing.T) {
	cube := asset.NewCubeMesh(1)
	l := NewLoader(WithMesh("cube", cube))

	calls := 0
	l.Load("cube", func(mesh *asset.Mesh, err error) {
		calls++
		assert.NoError(t, err)
		assert.Same(t, cube, mesh)
	})
	assert.Equal(t, 1, calls)

	info, err := l.Info("cube")
	require.NoError(t, err)
	assert.Equal(t, 24, info.Vertices)
	assert.Equal(t, 12, info.Triangles)
}

func TestLoadAsyncPostsCompletionOnce(t *testing.T) {
	path := writeTriangle(t, triangleOptions{indices: true})
	poster := make(chanPoster, 4)
	l := NewLoader(WithPoster(poster), WithWorkers(2))

	results := make(chan error, 4)
	l.Load(path, func(_ *asset.Mesh, err error) { results <- err })
	l.Load("bad.txt", func(_ *asset.Mesh, err error) { results <- err })

	var errs []error
	deadline := time.After(5 * time.Second)
	for len(errs) < 2 {
		select {
		case task := <-poster:
			task()
		case err := <-results:
			errs = append(errs, err)
		case <-deadline:
			t.Fatal("load completions were not posted")
		}
	}

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Empty(t, results)
}

func TestReleaseStopsFurtherLoads(t *testing.T) {
	path := writeTriangle(t, triangleOptions{indices: true})
	poster := make(chanPoster, 4)
	l := NewLoader(WithPoster(poster))

	done := make(chan error, 2)
	l.Load(path, func(_ *asset.Mesh, err error) { done <- err })
	select {
	case task := <-poster:
		task()
	case <-time.After(5 * time.Second):
		t.Fatal("load completion was not posted")
	}
	require.NoError(t, <-done)

	assert.NotPanics(t, func() {
		l.Release()
		l.Release()
	})

	l.Load(path, func(_ *asset.Mesh, err error) { done <- err })
	err := <-done
	assert.ErrorIs(t, err, ErrReleased)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)
	assert.Empty(t, poster, "nothing posted after release")
}

func TestReleaseWithoutWorkers(t *testing.T) {
	l := NewLoader()
	l.Release()

	var got error
	l.Load("cube.glb", func(_ *asset.Mesh, err error) { got = err })
	assert.ErrorIs(t, got, ErrReleased)
	assert.Nil(t, l.(*loader).pool)
}
