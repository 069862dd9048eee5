package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// TileUpdate represents a single finished tile sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`      // Left edge in pixels
	TileY      int    `json:"tileY"`      // Top edge in pixels
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tile id (0-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// CompleteUpdate carries the finished image and its statistics
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels   int   `json:"totalPixels"`
	ClippedPixels int   `json:"clippedPixels"`
	Tiles         int   `json:"tiles"`
	Workers       int   `json:"workers"`
	Primitives    int   `json:"primitives"`
	ElapsedMs     int64 `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRenderImage renders a scene and responds with the encoded image
func (s *Server) handleRenderImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	format := renderer.FormatPNG
	if name := r.URL.Query().Get("format"); name != "" {
		if format, err = renderer.ParseFormat(name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	canvas, stats, err := renderer.Render(r.Context(), sceneObj.World, sceneObj.Camera(), req.options(), renderer.NewDefaultLogger())
	if err != nil {
		log.Printf("Render of %s failed: %v", req.Scene, err)
		writeError(w, http.StatusServiceUnavailable, "Render error: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := renderer.Encode(&buf, canvas.Image(), format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/"+string(format))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.Header().Set("X-Render-Clipped-Pixels", strconv.Itoa(stats.ClippedPixels))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

// handleRenderStream renders with real-time tile streaming via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// Only the writer goroutine touches w
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	sceneObj, err := s.createScene(req)
	if err != nil {
		close(consoleChan)
		<-consoleDone
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	webLogger.Printf("Scene %s: %d primitives, %d lights\n",
		sceneObj.Name, sceneObj.GetPrimitiveCount(), len(sceneObj.World.Lights))

	camera := sceneObj.Camera()
	opts := req.options()
	totalTiles := len(renderer.NewTileGrid(camera.HSize, camera.VSize, opts.TileSize))
	opts.TileDone = func(tile renderer.Tile, img *image.RGBA) {
		s.handleTileUpdate(ctx, sseEventChan, tile, img, totalTiles)
	}

	canvas, stats, err := renderer.Render(ctx, sceneObj.World, camera, opts, webLogger)
	close(consoleChan)
	<-consoleDone
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	imageData, err := s.imageToBase64PNG(canvas.Image())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}
	data, err := json.Marshal(CompleteUpdate{
		ImageData: imageData,
		Width:     canvas.Width,
		Height:    canvas.Height,
		Stats: Stats{
			TotalPixels:   stats.TotalPixels,
			ClippedPixels: stats.ClippedPixels,
			Tiles:         stats.Tiles,
			Workers:       stats.Workers,
			Primitives:    sceneObj.GetPrimitiveCount(),
			ElapsedMs:     stats.Elapsed.Milliseconds(),
		},
	})
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	send(ctx, sseEventChan, SSEEvent{Type: "complete", Data: string(data)})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes every SSE event from a single goroutine until the
// channel is closed or the client goes away
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events until the
// console channel is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}
		send(ctx, sseEventChan, SSEEvent{Type: "console", Data: string(data)})
	}
}

// handleTileUpdate sends one finished tile
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan SSEEvent, tile renderer.Tile, img *image.RGBA, totalTiles int) {
	if ctx.Err() != nil {
		return
	}

	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		log.Printf("Error encoding tile %d: %v", tile.ID, err)
		return
	}
	data, err := json.Marshal(TileUpdate{
		TileX:      tile.Bounds.Min.X,
		TileY:      tile.Bounds.Min.Y,
		ImageData:  imageData,
		TileNumber: tile.ID,
		TotalTiles: totalTiles,
	})
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}
	send(ctx, sseEventChan, SSEEvent{Type: "tile", Data: string(data)})
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Encode(&buf, img, renderer.FormatPNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError logs and sends an error event
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	log.Printf("Render error: %s", message)
	send(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}

// send queues an event unless the client has gone away
func send(ctx context.Context, sseEventChan chan SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}
