package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/web/server"
)

var version = "dev"

// options holds the flags shared by the commands
type options struct {
	scene     string
	scenesDir string
	width     int
	height    int
	fov       float64 // Degrees, 0 = scene default
	depth     int
	workers   int
	block     int
	optimize  int
	out       string
	format    string
	frames    int
	fps       int
	port      int
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "raytracer",
		Short: "Whitted-style ray tracer",
		Long: "Renders scenes with Phong shading, shadows, reflection and refraction.\n" +
			"Scenes are built in or read from JSON scene files.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.scenesDir, "scenes", "scenes", "Directory of JSON scene files")

	root.AddCommand(newRenderCmd(opts), newAnimateCmd(opts), newServeCmd(opts), newScenesCmd(opts))
	return root
}

// addSceneFlags registers the flags that pick and configure a scene
func addSceneFlags(cmd *cobra.Command, opts *options) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.scene, "scene", "s", "default", "Built-in scene name or path to a .json scene file")
	flags.IntVarP(&opts.width, "width", "W", 0, "Image width in pixels (0 = scene default)")
	flags.IntVarP(&opts.height, "height", "H", 0, "Image height in pixels (0 = scene default)")
	flags.Float64Var(&opts.fov, "fov", 0, "Field of view in degrees (0 = scene default)")
	flags.IntVarP(&opts.depth, "depth", "d", 0, "Maximum reflection/refraction recursion (0 = scene default)")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "Parallel workers (0 = CPU count)")
	flags.IntVar(&opts.block, "block", renderer.DefaultOptions().TileSize, "Tile size in pixels")
	flags.IntVar(&opts.optimize, "optimize", 0, "Split groups into bounding volume hierarchies with this many children per leaf (0 = off)")
	flags.StringVarP(&opts.out, "out", "o", "", "Output path (default output/<scene>/...)")
}

func newRenderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, renderer.NewDefaultLogger())
		},
	}
	addSceneFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Image format: png, bmp, tiff or gif (default from --out, else png)")
	return cmd
}

func newAnimateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Render a turntable animation around the scene",
		Long: "Swings the camera once around the point it looks at. Writes an animated\n" +
			"GIF when --out ends in .gif, otherwise numbered PNG frames into a directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnimate(cmd.Context(), opts, renderer.NewDefaultLogger())
		},
	}
	addSceneFlags(cmd, opts)
	defaults := renderer.DefaultTurntableConfig()
	cmd.Flags().IntVar(&opts.frames, "frames", defaults.Frames, "Number of frames")
	cmd.Flags().IntVar(&opts.fps, "fps", defaults.FPS, "Frames per second")
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.NewServer(opts.port, opts.scenesDir).Start()
		},
	}
	cmd.Flags().IntVarP(&opts.port, "port", "p", 8080, "Port to serve on")
	return cmd
}

func newScenesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the available scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := scene.ListAllScenes(opts.scenesDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, group := range response.Groups {
				fmt.Fprintf(out, "%s:\n", group.Name)
				for _, info := range group.Scenes {
					fmt.Fprintf(out, "  %-14s %s\n", info.ID, info.Description)
				}
			}
			return nil
		},
	}
}

// createScene loads a scene and applies the command-line overrides
func createScene(opts *options) (*scene.Scene, error) {
	if opts.scene == "" {
		return nil, errors.New("no scene given")
	}
	if opts.width < 0 || opts.height < 0 || opts.depth < 0 || opts.optimize < 0 {
		return nil, errors.New("width, height, depth and optimize must not be negative")
	}

	override := renderer.CameraConfig{
		Width:       opts.width,
		Height:      opts.height,
		FieldOfView: opts.fov * math.Pi / 180,
	}
	s, err := scene.Load(opts.scene, override)
	if err != nil {
		return nil, err
	}
	if opts.depth > 0 {
		s.World.MaxRecursion = opts.depth
	}
	if opts.optimize > 0 {
		s.Optimize(opts.optimize)
	}
	return s, nil
}

func (opts *options) renderOptions() renderer.Options {
	return renderer.Options{TileSize: opts.block, NumWorkers: opts.workers}
}

// createOutputDir returns output/<scene>, using the file stem for scene
// files
func createOutputDir(sceneName string) string {
	base := sceneName
	if strings.EqualFold(filepath.Ext(sceneName), ".json") {
		base = strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	}
	return filepath.Join("output", base)
}

// outputFormat picks the image format from --format, then --out, then png
func outputFormat(opts *options) (renderer.Format, error) {
	if opts.format != "" {
		return renderer.ParseFormat(opts.format)
	}
	if opts.out != "" {
		return renderer.FormatFromPath(opts.out)
	}
	return renderer.FormatPNG, nil
}

func runRender(ctx context.Context, opts *options, logger core.Logger) error {
	format, err := outputFormat(opts)
	if err != nil {
		return err
	}
	s, err := createScene(opts)
	if err != nil {
		return err
	}
	logger.Printf("Scene %s: %d primitives, %d lights, recursion %d\n",
		s.Name, s.GetPrimitiveCount(), len(s.World.Lights), s.World.MaxRecursion)

	canvas, stats, err := renderer.Render(ctx, s.World, s.Camera(), opts.renderOptions(), logger)
	if err != nil {
		return err
	}
	if stats.ClippedPixels > 0 {
		logger.Printf("%d of %d pixels were clamped\n", stats.ClippedPixels, stats.TotalPixels)
	}

	filename := opts.out
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(createOutputDir(opts.scene), fmt.Sprintf("render_%s.%s", timestamp, format))
	}
	if err := writeFile(filename, func(f *os.File) error {
		return renderer.Encode(f, canvas.Image(), format)
	}); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

func runAnimate(ctx context.Context, opts *options, logger core.Logger) error {
	if opts.frames < 1 || opts.fps < 1 {
		return errors.New("frames and fps must be positive")
	}
	s, err := createScene(opts)
	if err != nil {
		return err
	}

	config := renderer.DefaultTurntableConfig()
	config.Frames = opts.frames
	config.FPS = opts.fps
	frames, err := renderer.NewTurntable(s.CameraConfig, config).Render(ctx, s.World, opts.renderOptions(), logger)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = filepath.Join(createOutputDir(opts.scene), "turntable.gif")
	}

	if strings.EqualFold(filepath.Ext(out), ".gif") {
		if err := writeFile(out, func(f *os.File) error {
			return renderer.EncodeGIF(f, frames, 100/opts.fps)
		}); err != nil {
			return err
		}
		logger.Printf("Animation saved as %s\n", out)
		return nil
	}

	for i, frame := range frames {
		name := filepath.Join(out, fmt.Sprintf("frame_%03d.png", i))
		if err := writeFile(name, func(f *os.File) error {
			return renderer.Encode(f, frame, renderer.FormatPNG)
		}); err != nil {
			return err
		}
	}
	logger.Printf("%d frames saved in %s\n", len(frames), out)
	return nil
}

// writeFile creates filename and its directory and fills it with write
func writeFile(filename string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("error writing %s: %w", filename, err)
	}
	return file.Close()
}
