package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/slidelab/lightbox/pkg/types"
)

// Compile-time interface checks.
var (
	_ types.Reader = (*stillReader)(nil)
	_ types.Reader = (*gifReader)(nil)
)

// displayName derives the human-readable image name from its path.
func displayName(path string) string {
	return filepath.Base(path)
}

// decodeStill decodes a single-plane image in the given format.
func decodeStill(path string, f format) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var img image.Image
	switch f.name {
	case "png":
		img, err = png.Decode(file)
	case "jpeg":
		img, err = jpeg.Decode(file)
	case "bmp":
		img, err = bmp.Decode(file)
	case "tiff":
		img, err = tiff.Decode(file)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, f.name)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s as %s: %w", path, f.name, err)
	}
	return img, nil
}

// stillReader reads single-plane formats. The pixel data is decoded on the
// first thumbnail request, not at build time.
type stillReader struct {
	path   string
	format format
	img    image.Image
}

// newStillReader validates the source by decoding its header only.
func newStillReader(path string, f format) (*stillReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return nil, fmt.Errorf("decoding %s header: %w", path, err)
	}
	return &stillReader{path: path, format: f}, nil
}

func (r *stillReader) DisplayName() string { return displayName(r.path) }

func (r *stillReader) Planes() int { return 1 }

func (r *stillReader) Channels() int { return 1 }

func (r *stillReader) Thumbnail(plane, channel int) (image.Image, error) {
	if plane != 0 || channel != 0 {
		return nil, fmt.Errorf("plane %d channel %d out of range for %s", plane, channel, r.path)
	}
	if r.img == nil {
		img, err := decodeStill(r.path, r.format)
		if err != nil {
			return nil, err
		}
		r.img = img
	}
	return scaleThumbnail(r.img), nil
}

func (r *stillReader) Close() error {
	r.img = nil
	return nil
}

// gifReader exposes every GIF frame as one plane, so multi-frame sources
// exercise the middle-plane thumbnail policy.
type gifReader struct {
	path   string
	frames []image.Image
}

func newGIFReader(path string) (*gifReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	g, err := gif.DecodeAll(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("decoding %s: no frames", path)
	}

	// Compose frames onto the logical canvas; later frames may be
	// partial deltas.
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)
	frames := make([]image.Image, 0, len(g.Image))
	for _, frame := range g.Image {
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		snapshot := image.NewRGBA(bounds)
		draw.Draw(snapshot, bounds, canvas, bounds.Min, draw.Src)
		frames = append(frames, snapshot)
	}

	return &gifReader{path: path, frames: frames}, nil
}

func (r *gifReader) DisplayName() string { return displayName(r.path) }

func (r *gifReader) Planes() int { return len(r.frames) }

func (r *gifReader) Channels() int { return 1 }

func (r *gifReader) Thumbnail(plane, channel int) (image.Image, error) {
	if plane < 0 || plane >= len(r.frames) || channel != 0 {
		return nil, fmt.Errorf("plane %d channel %d out of range for %s", plane, channel, r.path)
	}
	return scaleThumbnail(r.frames[plane]), nil
}

func (r *gifReader) Close() error {
	r.frames = nil
	return nil
}
