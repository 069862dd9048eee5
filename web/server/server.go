package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits
const (
	MinSize     = 16
	MaxSize     = 2000
	MaxDepth    = 16
	MaxOptimize = 1000
)

// Server handles web requests for the ray tracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server. Scene files are discovered in
// scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`    // Built-in scene id or scene file path
	Width    int    `json:"width"`    // Image width (0 = scene default)
	Height   int    `json:"height"`   // Image height (0 = scene default)
	Depth    int    `json:"depth"`    // Max recursion (0 = scene default)
	Optimize int    `json:"optimize"` // Group threshold for the BVH (0 = off)
	Workers  int    `json:"workers"`  // Parallel workers (0 = CPU count)
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	mux.HandleFunc("/api/render", s.handleRenderImage)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		log.Printf("Error listing scenes: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default camera for a scene with the
// request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("scene")
	if name == "" {
		name = "default"
	}

	sceneObj, err := scene.Load(name)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	cfg := sceneObj.CameraConfig
	response := map[string]interface{}{
		"scene": name,
		"defaults": map[string]interface{}{
			"width":       cfg.Width,
			"height":      cfg.Height,
			"fieldOfView": cfg.FieldOfView,
			"depth":       sceneObj.World.MaxRecursion,
			"primitives":  sceneObj.GetPrimitiveCount(),
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": MinSize, "max": MaxSize},
			"height":   map[string]int{"min": MinSize, "max": MaxSize},
			"depth":    map[string]int{"min": 0, "max": MaxDepth},
			"optimize": map[string]int{"min": 0, "max": MaxOptimize},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, MinSize, MaxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, MinSize, MaxSize); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 0, MaxDepth); err != nil {
		return nil, err
	}
	if req.Optimize, err = parseIntParam(query, "optimize", 0, 0, MaxOptimize); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1000*1000 {
		log.Printf("Render warning: %dx%d image may render slowly", req.Width, req.Height)
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene loads the requested scene and applies the request overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Load(req.Scene, renderer.CameraConfig{Width: req.Width, Height: req.Height})
	if err != nil {
		return nil, err
	}
	if req.Depth > 0 {
		sceneObj.World.MaxRecursion = req.Depth
	}
	if req.Optimize > 0 {
		sceneObj.Optimize(req.Optimize)
	}
	return sceneObj, nil
}

func (req *RenderRequest) options() renderer.Options {
	opts := renderer.DefaultOptions()
	opts.NumWorkers = req.Workers
	return opts
}

// statusFor maps scene errors to HTTP status codes
func statusFor(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
