// Package imageio implements format detection and image readers for the
// lightbox project layer. Detection sniffs magic bytes with an extension
// fallback; readers decode lazily and render bounded thumbnails.
package imageio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/slidelab/lightbox/pkg/types"
)

// format describes one supported image format.
type format struct {
	name       string
	mediaType  string
	extensions []string
	magic      [][]byte
}

// formats lists the supported formats, detection priority order.
var formats = []format{
	{
		name:       "png",
		mediaType:  "image/png",
		extensions: []string{".png"},
		magic:      [][]byte{{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}},
	},
	{
		name:       "jpeg",
		mediaType:  "image/jpeg",
		extensions: []string{".jpg", ".jpeg"},
		magic:      [][]byte{{0xff, 0xd8, 0xff}},
	},
	{
		name:       "gif",
		mediaType:  "image/gif",
		extensions: []string{".gif"},
		magic:      [][]byte{[]byte("GIF87a"), []byte("GIF89a")},
	},
	{
		name:       "bmp",
		mediaType:  "image/bmp",
		extensions: []string{".bmp"},
		magic:      [][]byte{[]byte("BM")},
	},
	{
		name:       "tiff",
		mediaType:  "image/tiff",
		extensions: []string{".tif", ".tiff"},
		magic:      [][]byte{{'I', 'I', 0x2a, 0x00}, {'M', 'M', 0x00, 0x2a}},
	},
}

// Compile-time check: FindBuilders satisfies the finder contract.
var _ types.BuilderFinder = FindBuilders

// FindBuilders returns builders for the image at location, most suitable
// first. The sniffed format leads; the extension and media-type hint only
// add candidates. An empty result means no reader supports the file.
func FindBuilders(hint, location string) ([]types.Builder, error) {
	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", location, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", location, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", location)
	}

	header, err := readHeader(abs)
	if err != nil {
		return nil, err
	}

	var builders []types.Builder
	seen := map[string]bool{}
	add := func(f format) {
		if !seen[f.name] {
			seen[f.name] = true
			builders = append(builders, &builder{path: abs, format: f})
		}
	}

	for _, f := range formats {
		for _, m := range f.magic {
			if bytes.HasPrefix(header, m) {
				add(f)
			}
		}
	}
	ext := strings.ToLower(filepath.Ext(abs))
	for _, f := range formats {
		for _, e := range f.extensions {
			if ext == e {
				add(f)
			}
		}
	}
	if hint != "" {
		for _, f := range formats {
			if f.mediaType == hint {
				add(f)
			}
		}
	}

	return builders, nil
}

// readHeader reads the leading bytes used for magic sniffing.
func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, _ := f.Read(header)
	return header[:n], nil
}

// builder implements types.Builder for one detected source file.
type builder struct {
	path   string
	format format
}

func (b *builder) URI() string { return b.path }

func (b *builder) Format() string { return b.format.name }

// Build opens the source and constructs a reader. GIF sources expose every
// frame as a plane; the still formats expose a single plane.
func (b *builder) Build() (types.Reader, error) {
	if b.format.name == "gif" {
		return newGIFReader(b.path)
	}
	return newStillReader(b.path, b.format)
}
