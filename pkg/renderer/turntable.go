package renderer

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// TurntableConfig controls a turntable animation
type TurntableConfig struct {
	Frames      int     // Number of frames to render
	FPS         int     // Playback rate, also the spring's time step
	Revolutions float64 // Total turn, in full circles
	Frequency   float64 // Spring angular frequency
	Damping     float64 // Spring damping ratio (1 = critically damped)
}

// DefaultTurntableConfig returns a two second, one revolution animation
func DefaultTurntableConfig() TurntableConfig {
	return TurntableConfig{
		Frames:      24,
		FPS:         12,
		Revolutions: 1,
		Frequency:   4.0,
		Damping:     1.0,
	}
}

// Turntable swings the camera around the point it looks at. The yaw is
// driven by a spring toward the final angle, so the motion eases in and
// settles instead of turning at a constant rate.
type Turntable struct {
	base   CameraConfig
	config TurntableConfig
}

// NewTurntable creates a turntable animation starting from base
func NewTurntable(base CameraConfig, config TurntableConfig) *Turntable {
	return &Turntable{base: base, config: config}
}

// Angles returns the camera yaw for each frame, starting at zero
func (t *Turntable) Angles() []float64 {
	fps := max(1, t.config.FPS)
	spring := harmonica.NewSpring(harmonica.FPS(fps), t.config.Frequency, t.config.Damping)
	target := 2 * math.Pi * t.config.Revolutions

	angles := make([]float64, t.config.Frames)
	var angle, velocity float64
	for i := range angles {
		angles[i] = angle
		angle, velocity = spring.Update(angle, velocity, target)
	}
	return angles
}

// Cameras returns one camera per frame, orbiting the base camera's eye
// about the vertical axis through its look-at point
func (t *Turntable) Cameras() []*Camera {
	offset := t.base.From.Subtract(t.base.To)

	angles := t.Angles()
	cameras := make([]*Camera, len(angles))
	for i, angle := range angles {
		cfg := t.base
		cfg.From = t.base.To.Add(core.RotationY(angle).MulTuple(offset))
		cameras[i] = NewCameraFromConfig(cfg)
	}
	return cameras
}

// Render renders every frame in turn, each one in parallel across workers
func (t *Turntable) Render(ctx context.Context, w *world.World, opts Options, logger core.Logger) ([]*image.RGBA, error) {
	cameras := t.Cameras()
	frames := make([]*image.RGBA, 0, len(cameras))
	for i, camera := range cameras {
		logger.Printf("Frame %d/%d\n", i+1, len(cameras))
		canvas, _, err := Render(ctx, w, camera, opts, logger)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
		frames = append(frames, canvas.Image())
	}
	return frames, nil
}
