package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewTriangleMeshScene creates a scene showcasing triangle geometry: a
// faceted box and pyramid, a smooth-shaded sphere mesh and two loose
// triangles
func NewTriangleMeshScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:       600,
		Height:      338,
		FieldOfView: 45 * math.Pi / 180,
		From:        core.Point(0, 2, -6),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
	}
	s := newScene("triangles", defaultCameraConfig, cameraOverrides)

	ground := groundPlane()

	box := meshGroup(createBoxMesh())
	box.SetTransform(core.Chain(core.RotationY(math.Pi/6), core.Translation(-2.2, 0.5, 0)))
	boxMaterial := phong(core.NewColor(0.8, 0.2, 0.2), 0.7, 0.8)
	boxMaterial.Reflective = 0.2

	pyramid := meshGroup(createPyramidMesh(1.5, 2))
	pyramid.SetTransform(core.Chain(core.RotationY(math.Pi/4), core.Translation(0, 0, 1)))
	pyramidMaterial := matte(core.NewColor(0.2, 0.3, 0.8))

	sphere := meshGroup(createSphereMesh(16, 32))
	sphere.SetTransform(core.Chain(core.Scaling(0.8, 0.8, 0.8), core.Translation(2.2, 0.8, 0)))
	sphereMaterial := gold()

	t1 := geometry.NewTriangle(core.Point(0, 1, 0), core.Point(-1, 0, 0), core.Point(1, 0, 0))
	t2 := geometry.NewTriangle(core.Point(0, 1, 0), core.Point(1, 0, 0), core.Point(0.5, 1, 0.5))
	loose := geometry.NewGroup()
	loose.SetTransform(core.Chain(core.Scaling(0.6, 0.6, 0.6), core.Translation(-0.5, 0, -1.5)))
	loose.AddChild(t1, t2)
	looseMaterial := matte(core.NewColor(0.9, 0.8, 0.2))

	// Groups hand their material down to every triangle
	box.SetMaterial(boxMaterial)
	pyramid.SetMaterial(pyramidMaterial)
	sphere.SetMaterial(sphereMaterial)
	loose.SetMaterial(looseMaterial)

	s.Add(ground, box, pyramid, sphere, loose)
	s.AddPointLight(core.Point(2, 6, -3), core.NewColor(0.9, 0.85, 0.8))
	s.AddPointLight(core.Point(-3, 4, -2), core.NewColor(0.3, 0.35, 0.4))
	return s
}

// meshGroup converts a mesh into an optimized group of triangles
func meshGroup(m *loaders.Mesh) *geometry.Group {
	g, _ := m.ToGroup()
	g.Optimize(geometry.DefaultLeafThreshold, geometry.DefaultMaxDepth)
	return g
}

// createBoxMesh creates a unit box centred on the origin as 12 triangles
func createBoxMesh() *loaders.Mesh {
	h := 0.5
	return &loaders.Mesh{
		Vertices: []core.Tuple{
			core.Point(-h, -h, -h), core.Point(h, -h, -h), core.Point(h, h, -h), core.Point(-h, h, -h),
			core.Point(-h, -h, h), core.Point(h, -h, h), core.Point(h, h, h), core.Point(-h, h, h),
		},
		Faces: [][3]int{
			{0, 1, 2}, {0, 2, 3}, // -z
			{4, 6, 5}, {4, 7, 6}, // +z
			{0, 3, 7}, {0, 7, 4}, // -x
			{1, 5, 6}, {1, 6, 2}, // +x
			{0, 4, 5}, {0, 5, 1}, // -y
			{3, 2, 6}, {3, 6, 7}, // +y
		},
	}
}

// createPyramidMesh creates a square pyramid standing on the origin
func createPyramidMesh(baseSize, height float64) *loaders.Mesh {
	h := baseSize / 2
	return &loaders.Mesh{
		Vertices: []core.Tuple{
			core.Point(-h, 0, -h), core.Point(h, 0, -h), core.Point(h, 0, h), core.Point(-h, 0, h),
			core.Point(0, height, 0),
		},
		Faces: [][3]int{
			{0, 1, 2}, {0, 2, 3},
			{0, 4, 1}, {1, 4, 2}, {2, 4, 3}, {3, 4, 0},
		},
	}
}

// createSphereMesh tessellates a unit sphere into latitude bands with a
// normal per vertex. The triangles touching the poles collapse to lines and
// are dropped when the mesh becomes a group.
func createSphereMesh(rings, segments int) *loaders.Mesh {
	m := &loaders.Mesh{}
	for i := 0; i <= rings; i++ {
		theta := math.Pi * float64(i) / float64(rings)
		for j := 0; j <= segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)
			x := math.Sin(theta) * math.Cos(phi)
			y := math.Cos(theta)
			z := math.Sin(theta) * math.Sin(phi)
			m.Vertices = append(m.Vertices, core.Point(x, y, z))
			m.Normals = append(m.Normals, core.Vector(x, y, z))
		}
	}

	row := segments + 1
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			a := i*row + j
			b := a + row
			m.Faces = append(m.Faces, [3]int{a, b, a + 1}, [3]int{a + 1, b, b + 1})
		}
	}
	return m
}
