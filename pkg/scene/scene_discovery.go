package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// BuiltinGroup is the group every built-in scene is listed under
const BuiltinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the scene file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// Builder creates a scene, optionally overriding its default camera
type Builder func(cameraOverrides ...renderer.CameraConfig) *Scene

type builtin struct {
	info  SceneInfo
	build Builder
}

var builtins = []builtin{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Three spheres in a corner of flattened-sphere walls"}, NewDefaultScene},
	{SceneInfo{ID: "reflection", Name: "Reflection", Description: "Red sphere between reflective checkered planes"}, NewReflectionScene},
	{SceneInfo{ID: "glass", Name: "Glass", Description: "Clear glass sphere and a noisy mirror ball"}, NewGlassScene},
	{SceneInfo{ID: "fresnel", Name: "Fresnel", Description: "Looking across water that reflects more towards the horizon"}, NewFresnelScene},
	{SceneInfo{ID: "csg", Name: "CSG", Description: "Cube fused with a glass sphere, and a carved die"}, NewCSGScene},
	{SceneInfo{ID: "hexagon", Name: "Hexagon", Description: "Hexagon built from nested groups"}, NewHexagonScene},
	{SceneInfo{ID: "cylinders", Name: "Cylinders", Description: "Open and capped cylinders"}, NewCylinderTestScene},
	{SceneInfo{ID: "cones", Name: "Cones", Description: "Cones, frustums and a double cone"}, NewConeTestScene},
	{SceneInfo{ID: "patterns", Name: "Patterns", Description: "Nested, blended and noisy patterns"}, NewPatternScene},
	{SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "Grid of colored spheres in a bounding volume hierarchy"}, NewSphereGridScene},
	{SceneInfo{ID: "triangles", Name: "Triangle Meshes", Description: "Faceted and smooth triangle meshes"}, NewTriangleMeshScene},
}

func init() {
	for i := range builtins {
		builtins[i].info.Group = BuiltinGroup
		builtins[i].info.Type = "builtin"
	}
}

// ListBuiltinScenes returns the built-in scenes in display order
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		infos[i] = b.info
	}
	return infos
}

// NewBuiltinScene creates the built-in scene with the given id
func NewBuiltinScene(id string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == id {
			return b.build(cameraOverrides...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// Load returns a built-in scene by id, or reads a JSON scene file when
// name ends in .json
func Load(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if !strings.EqualFold(filepath.Ext(name), ".json") {
		return NewBuiltinScene(name, cameraOverrides...)
	}

	desc, err := loaders.LoadScene(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownScene, err)
		}
		return nil, err
	}
	s := newScene(desc.Name, desc.Camera, cameraOverrides)
	s.World = desc.World
	return s, nil
}

// ListFileScenes scans dir for JSON scene files. A missing directory yields
// an empty list.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a scene file
// without building it. Missing values fall back to the file name.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(base),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to read scene file: %w", err)
	}
	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, fmt.Errorf("%s: %w", filePath, err)
	}

	if meta.Name != "" {
		info.Name = meta.Name
	}
	if meta.Group != "" {
		info.Group = meta.Group
	}
	info.Description = meta.Description
	return info, nil
}

// ListAllScenes returns both built-in and file scenes from dir, grouped by
// category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(ListBuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != BuiltinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: BuiltinGroup, Scenes: groupMap[BuiltinGroup]})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
