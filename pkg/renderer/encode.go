package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an output image encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatGIF  Format = "gif"
)

// ErrUnknownFormat is returned for unsupported image formats
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat returns the format with the given name, ignoring case
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPNG, FormatBMP, FormatTIFF, FormatGIF:
		return f, nil
	case "tif":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Encode writes a single image in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// EncodeGIF writes frames as a looping animated GIF. delay is in 100ths
// of a second per frame.
func EncodeGIF(w io.Writer, frames []*image.RGBA, delay int) error {
	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	for _, frame := range frames {
		paletted := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), frame, image.Point{})
		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delay)
	}
	return gif.EncodeAll(w, out)
}
