package loaders

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// ErrInvalidGLTF is returned when a glTF document references data it does
// not contain or stores it in a layout the loader does not read
var ErrInvalidGLTF = errors.New("invalid glTF")

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// LoadGLTF loads a .gltf or .glb file into a group hierarchy mirroring the
// document's node tree
func LoadGLTF(path string) (*geometry.Group, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	g, err := GroupFromGLTF(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// GroupFromGLTF converts the default scene of doc (or every root node when
// no scene is named) into groups of triangles. Each node becomes a group
// carrying the node's transform; only triangle-list primitives are used.
func GroupFromGLTF(doc *gltf.Document) (*geometry.Group, error) {
	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		roots = doc.Scenes[0].Nodes
	default:
		for i := range doc.Nodes {
			roots = append(roots, i)
		}
	}

	root := geometry.NewGroup()
	for _, idx := range roots {
		child, err := nodeToGroup(doc, idx, 0)
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}
	return root, nil
}

// nodeToGroup builds a node bottom-up so that each group's bounds are final
// before it is attached to its parent
func nodeToGroup(doc *gltf.Document, idx, depth int) (*geometry.Group, error) {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil, fmt.Errorf("%w: node %d out of range", ErrInvalidGLTF, idx)
	}
	if depth > len(doc.Nodes) {
		return nil, fmt.Errorf("%w: node hierarchy contains a cycle", ErrInvalidGLTF)
	}
	node := doc.Nodes[idx]

	m := nodeTransform(node)
	if !m.IsInvertible() {
		return nil, fmt.Errorf("%w: node %d transform is singular", ErrInvalidGLTF, idx)
	}
	g := geometry.NewGroup()
	g.SetTransform(m)

	if node.Mesh != nil {
		if *node.Mesh >= len(doc.Meshes) {
			return nil, fmt.Errorf("%w: mesh %d out of range", ErrInvalidGLTF, *node.Mesh)
		}
		for _, prim := range doc.Meshes[*node.Mesh].Primitives {
			mesh, err := primitiveMesh(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", idx, err)
			}
			if mesh == nil {
				continue
			}
			tris, _ := mesh.ToGroup()
			g.AddChild(tris)
		}
	}

	for _, c := range node.Children {
		child, err := nodeToGroup(doc, c, depth+1)
		if err != nil {
			return nil, err
		}
		g.AddChild(child)
	}
	return g, nil
}

// nodeTransform returns the node's matrix, or its translation, rotation and
// scale composed as T*R*S when no explicit matrix is set
func nodeTransform(node *gltf.Node) core.Matrix {
	if node.Matrix != identity16 && node.Matrix != ([16]float64{}) {
		return core.FromMat4(mgl64.Mat4(node.Matrix))
	}

	t := node.Translation
	s := node.Scale
	if s == ([3]float64{}) {
		s = [3]float64{1, 1, 1}
	}
	r := node.Rotation
	rotation := core.Identity()
	if r != ([4]float64{}) {
		q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
		rotation = core.FromMat4(q.Mat4())
	}
	return core.Chain(core.Scaling(s[0], s[1], s[2]), rotation, core.Translation(t[0], t[1], t[2]))
}

// primitiveMesh reads a triangle-list primitive. Other modes yield nil.
func primitiveMesh(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}

	positions, err := readVec3(doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	mesh := &Mesh{}
	for _, p := range positions {
		mesh.Vertices = append(mesh.Vertices, core.Point(p[0], p[1], p[2]))
	}

	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := readVec3(doc, normIdx)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		for _, n := range normals {
			mesh.Normals = append(mesh.Normals, core.Vector(n[0], n[1], n[2]))
		}
	}

	var indices []int
	if prim.Indices != nil {
		if indices, err = readIndices(doc, *prim.Indices); err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = indexRange(len(positions))
	}
	for i := 0; i+2 < len(indices); i += 3 {
		f := [3]int{indices[i], indices[i+1], indices[i+2]}
		for _, v := range f {
			if v < 0 || v >= len(mesh.Vertices) {
				return nil, fmt.Errorf("%w: index %d out of range", ErrInvalidGLTF, v)
			}
		}
		mesh.Faces = append(mesh.Faces, f)
	}
	return mesh, nil
}

// accessorBytes returns the buffer backing an accessor along with the
// offset of its first element and the stride between elements
func accessorBytes(doc *gltf.Document, idx, elemSize int) (*gltf.Accessor, []byte, int, int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, nil, 0, 0, fmt.Errorf("%w: accessor %d out of range", ErrInvalidGLTF, idx)
	}
	accessor := doc.Accessors[idx]
	if accessor.BufferView == nil || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, nil, 0, 0, fmt.Errorf("%w: accessor %d has no buffer view", ErrInvalidGLTF, idx)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer >= len(doc.Buffers) || len(doc.Buffers[view.Buffer].Data) == 0 {
		return nil, nil, 0, 0, fmt.Errorf("%w: buffer %d has no data", ErrInvalidGLTF, view.Buffer)
	}
	data := doc.Buffers[view.Buffer].Data

	start := view.ByteOffset + accessor.ByteOffset
	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if accessor.Count > 0 && start+(accessor.Count-1)*stride+elemSize > len(data) {
		return nil, nil, 0, 0, fmt.Errorf("%w: accessor %d overruns its buffer", ErrInvalidGLTF, idx)
	}
	return accessor, data, start, stride, nil
}

// readVec3 reads a VEC3 float accessor
func readVec3(doc *gltf.Document, idx int) ([][3]float64, error) {
	accessor, data, start, stride, err := accessorBytes(doc, idx, 12)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("%w: expected float VEC3, got %v %v", ErrInvalidGLTF, accessor.ComponentType, accessor.Type)
	}

	result := make([][3]float64, accessor.Count)
	for i := range result {
		offset := start + i*stride
		for j := range 3 {
			bits := binary.LittleEndian.Uint32(data[offset+j*4:])
			result[i][j] = float64(math.Float32frombits(bits))
		}
	}
	return result, nil
}

// readIndices reads an unsigned SCALAR accessor
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d out of range", ErrInvalidGLTF, idx)
	}
	var size int
	switch doc.Accessors[idx].ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("%w: unsupported index type %v", ErrInvalidGLTF, doc.Accessors[idx].ComponentType)
	}

	accessor, data, start, stride, err := accessorBytes(doc, idx, size)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("%w: expected SCALAR indices, got %v", ErrInvalidGLTF, accessor.Type)
	}

	result := make([]int, accessor.Count)
	for i := range result {
		offset := start + i*stride
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		default:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}
