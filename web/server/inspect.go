package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Path         []string               `json:"path"` // Enclosing groups and CSG nodes, outermost first
	Properties   map[string]interface{} `json:"properties"`
}

// inspectPixel casts the camera ray through a pixel and prepares the
// shading frame at the first hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (world.Computation, bool) {
	ray := sceneObj.Camera().RayForPixel(pixelX, pixelY)
	xs := sceneObj.World.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return world.Computation{}, false
	}
	return world.PrepareComputations(hit, ray, xs), true
}

// extractMaterialInfo describes the Phong and optical terms of a material
func extractMaterialInfo(m *material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflective":      m.Reflective,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
		"patterned":       m.Pattern != nil,
	}
	if m.Pattern == nil {
		properties["color"] = hexColor(m.Color)
	}
	return properties
}

// extractGeometryInfo names the shape that was hit with its parameters
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		return "sphere", properties
	case *geometry.Plane:
		return "plane", properties
	case *geometry.Cube:
		return "cube", properties
	case *geometry.Cylinder:
		properties["minimum"] = geom.Minimum
		properties["maximum"] = geom.Maximum
		properties["closed"] = geom.Closed
		return "cylinder", properties
	case *geometry.Cone:
		properties["minimum"] = geom.Minimum
		properties["maximum"] = geom.Maximum
		properties["closed"] = geom.Closed
		return "cone", properties
	case *geometry.SmoothTriangle:
		properties["vertices"] = [][3]float64{vec(geom.P1), vec(geom.P2), vec(geom.P3)}
		return "smooth_triangle", properties
	case *geometry.Triangle:
		properties["vertices"] = [][3]float64{vec(geom.P1), vec(geom.P2), vec(geom.P3)}
		return "triangle", properties
	default:
		return "unknown", properties
	}
}

// parentPath lists the groups and CSG nodes containing shape
func parentPath(shape geometry.Shape) []string {
	var path []string
	for p := shape.Parent(); p != nil; p = p.Parent() {
		if c, ok := p.(*geometry.CSG); ok {
			path = append([]string{"csg:" + c.Operation.String()}, path...)
			continue
		}
		path = append([]string{p.Kind().String()}, path...)
	}
	return path
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	cfg := sceneObj.CameraConfig
	if pixelX < 0 || pixelX >= cfg.Width || pixelY < 0 || pixelY >= cfg.Height {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Pixel coordinates out of bounds for %dx%d image", cfg.Width, cfg.Height))
		return
	}

	comps, ok := inspectPixel(sceneObj, pixelX, pixelY)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	geometryType, geometryProps := extractGeometryInfo(comps.Object)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        vec(comps.Point),
		Normal:       vec(comps.Normal),
		Distance:     comps.T,
		Inside:       comps.Inside,
		Path:         parentPath(comps.Object),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(comps.Object.Material()),
			"geometry": geometryProps,
			"n1":       comps.N1,
			"n2":       comps.N2,
		},
	})
}

func vec(t core.Tuple) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}

// hexColor formats a linear color as an sRGB hex string
func hexColor(c core.Color) string {
	return colorful.LinearRgb(c.R, c.G, c.B).Clamped().Hex()
}
