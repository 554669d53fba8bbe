package loader

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-viewer/engine/asset"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrEmptyAsset is returned when an asset decodes but contains no triangle geometry.
var ErrEmptyAsset = errors.New("asset contains no triangles")

// maxNodeDepth bounds the node hierarchy walk so a malformed (cyclic) document cannot recurse forever.
const maxNodeDepth = 64

// gltfLoaderBackend reads .gltf and .glb files with github.com/qmuntal/gltf.
type gltfLoaderBackend struct{}

var _ loaderBackend = &gltfLoaderBackend{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - loaderBackend: the backend
func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackend{}
}

func (b *gltfLoaderBackend) Extensions() []string {
	return []string{".gltf", ".glb"}
}

func (b *gltfLoaderBackend) Load(path string) (*asset.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return importDocument(doc, filepath.Base(path))
}

// gltfImporter accumulates primitives from a document into one flattened mesh.
type gltfImporter struct {
	doc  *gltf.Document
	mesh *asset.Mesh

	// missingNormals is set when any primitive lacked a NORMAL attribute.
	missingNormals bool
}

// importDocument flattens every triangle primitive reachable from the document's scene into a
// single mesh. Documents without scenes contribute each mesh once with an identity transform.
//
// Parameters:
//   - doc: the decoded glTF document
//   - name: the name given to the resulting mesh
//
// Returns:
//   - *asset.Mesh: the flattened mesh with bounds computed
//   - error: ErrEmptyAsset when nothing drawable was found, or an accessor read error
func importDocument(doc *gltf.Document, name string) (*asset.Mesh, error) {
	imp := &gltfImporter{
		doc:  doc,
		mesh: &asset.Mesh{Name: name},
	}

	roots := sceneRoots(doc)
	if roots == nil {
		for i := range doc.Meshes {
			if err := imp.addMesh(i, mgl32.Ident4()); err != nil {
				return nil, err
			}
		}
	} else {
		for _, n := range roots {
			if err := imp.addNode(n, mgl32.Ident4(), 0); err != nil {
				return nil, err
			}
		}
	}

	if imp.mesh.TriangleCount() == 0 {
		return nil, ErrEmptyAsset
	}
	if imp.missingNormals {
		imp.mesh.GenerateNormals()
	}
	imp.mesh.ComputeBounds()
	return imp.mesh, nil
}

// sceneRoots returns the root node indices of the default scene, the first scene when no
// default is set, or nil when the document has no scenes.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	idx := 0
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		idx = *doc.Scene
	}
	if doc.Scenes[idx] == nil {
		return nil
	}
	return doc.Scenes[idx].Nodes
}

func (imp *gltfImporter) addNode(index int, parent mgl32.Mat4, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	if index < 0 || index >= len(imp.doc.Nodes) || imp.doc.Nodes[index] == nil {
		return fmt.Errorf("node %d out of range", index)
	}

	node := imp.doc.Nodes[index]
	world := parent.Mul4(nodeMatrix(node))

	if node.Mesh != nil {
		if err := imp.addMesh(*node.Mesh, world); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := imp.addNode(child, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (imp *gltfImporter) addMesh(index int, world mgl32.Mat4) error {
	if index < 0 || index >= len(imp.doc.Meshes) || imp.doc.Meshes[index] == nil {
		return fmt.Errorf("mesh %d out of range", index)
	}
	for i, prim := range imp.doc.Meshes[index].Primitives {
		if prim == nil || prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		if err := imp.addPrimitive(prim, world); err != nil {
			return fmt.Errorf("mesh %d primitive %d: %w", index, i, err)
		}
	}
	return nil
}

func (imp *gltfImporter) addPrimitive(prim *gltf.Primitive, world mgl32.Mat4) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	posAcc, err := imp.accessor(posIdx)
	if err != nil {
		return err
	}
	positions, err := modeler.ReadPosition(imp.doc, posAcc, nil)
	if err != nil {
		return fmt.Errorf("failed to read positions: %w", err)
	}

	var normals [][3]float32
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normAcc, err := imp.accessor(normIdx)
		if err != nil {
			return err
		}
		normals, err = modeler.ReadNormal(imp.doc, normAcc, nil)
		if err != nil {
			return fmt.Errorf("failed to read normals: %w", err)
		}
	}
	if len(normals) != len(positions) {
		normals = nil
		imp.missingNormals = true
	}

	var indices []uint32
	if prim.Indices != nil {
		idxAcc, err := imp.accessor(*prim.Indices)
		if err != nil {
			return err
		}
		indices, err = modeler.ReadIndices(imp.doc, idxAcc, nil)
		if err != nil {
			return fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	normalMat := world.Inv().Transpose().Mat3()
	base := uint32(len(imp.mesh.Vertices))
	for i, p := range positions {
		v := asset.Vertex{
			Position: mgl32.TransformCoordinate(mgl32.Vec3(p), world),
		}
		if normals != nil {
			if n := normalMat.Mul3x1(mgl32.Vec3(normals[i])); n.Len() > 0 {
				v.Normal = n.Normalize()
			}
		}
		imp.mesh.Vertices = append(imp.mesh.Vertices, v)
	}

	// a mirroring transform flips the winding
	flip := world.Det() < 0
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
			return fmt.Errorf("index out of range at triangle %d", i/3)
		}
		if flip {
			b, c = c, b
		}
		imp.mesh.Indices = append(imp.mesh.Indices, base+a, base+b, base+c)
	}
	return nil
}

func (imp *gltfImporter) accessor(index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(imp.doc.Accessors) || imp.doc.Accessors[index] == nil {
		return nil, fmt.Errorf("accessor %d out of range", index)
	}
	return imp.doc.Accessors[index], nil
}

// nodeMatrix returns the node's local transform: its explicit matrix when one is set, otherwise
// the composition of translation, rotation and scale.
func nodeMatrix(node *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	id := mgl32.Ident4()
	identity := true
	for i, v := range node.MatrixOrDefault() {
		m[i] = float32(v)
		if m[i] != id[i] {
			identity = false
		}
	}
	if !identity {
		return m
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}
