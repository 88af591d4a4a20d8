package imageio

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writePNG writes a solid PNG of the given size and returns its path.
func writePNG(t *testing.T, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeGIF writes an animated GIF with the given number of frames.
func writeGIF(t *testing.T, name string, frames int) string {
	t.Helper()
	palette := color.Palette{color.Black, color.White}
	g := &gif.GIF{Config: image.Config{Width: 8, Height: 8}}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 8, 8), palette)
		for p := range frame.Pix {
			frame.Pix[p] = uint8(i % 2)
		}
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 10)
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindBuildersPNG(t *testing.T) {
	path := writePNG(t, "slide.png", 10, 10)

	builders, err := FindBuilders("", path)
	if err != nil {
		t.Fatalf("FindBuilders failed: %v", err)
	}
	if len(builders) == 0 {
		t.Fatal("expected at least one builder for a PNG file")
	}
	if builders[0].Format() != "png" {
		t.Errorf("Format = %q, want png", builders[0].Format())
	}
	if !filepath.IsAbs(builders[0].URI()) {
		t.Errorf("URI = %q, want absolute path", builders[0].URI())
	}
}

func TestFindBuildersSniffBeatsExtension(t *testing.T) {
	// PNG content behind a .jpg name: the sniffed format leads, the
	// extension adds a second candidate.
	src := writePNG(t, "slide.png", 4, 4)
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "mislabeled.jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	builders, err := FindBuilders("", path)
	if err != nil {
		t.Fatalf("FindBuilders failed: %v", err)
	}
	if len(builders) < 2 {
		t.Fatalf("got %d builders, want sniffed plus extension candidate", len(builders))
	}
	if builders[0].Format() != "png" {
		t.Errorf("first format = %q, want png from magic bytes", builders[0].Format())
	}
	if builders[1].Format() != "jpeg" {
		t.Errorf("second format = %q, want jpeg from extension", builders[1].Format())
	}
}

func TestFindBuildersUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	builders, err := FindBuilders("", path)
	if err != nil {
		t.Fatalf("FindBuilders failed: %v", err)
	}
	if len(builders) != 0 {
		t.Errorf("got %d builders for a text file, want 0", len(builders))
	}
}

func TestFindBuildersMediaTypeHint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	if err := os.WriteFile(path, []byte("????????"), 0o644); err != nil {
		t.Fatal(err)
	}

	builders, err := FindBuilders("image/png", path)
	if err != nil {
		t.Fatalf("FindBuilders failed: %v", err)
	}
	if len(builders) != 1 || builders[0].Format() != "png" {
		t.Errorf("builders = %v, want single png candidate from hint", builders)
	}
}

func TestFindBuildersMissingFile(t *testing.T) {
	if _, err := FindBuilders("", filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFindBuildersDirectory(t *testing.T) {
	if _, err := FindBuilders("", t.TempDir()); err == nil {
		t.Error("expected error for a directory")
	}
}

func TestStillReaderLifecycle(t *testing.T) {
	path := writePNG(t, "slide.png", 12, 6)

	builders, err := FindBuilders("", path)
	if err != nil || len(builders) == 0 {
		t.Fatalf("FindBuilders = %v, %v", builders, err)
	}
	reader, err := builders[0].Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer reader.Close()

	if reader.DisplayName() != "slide.png" {
		t.Errorf("DisplayName = %q, want slide.png", reader.DisplayName())
	}
	if reader.Planes() != 1 || reader.Channels() != 1 {
		t.Errorf("Planes/Channels = %d/%d, want 1/1", reader.Planes(), reader.Channels())
	}

	thumb, err := reader.Thumbnail(0, 0)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	if thumb.Bounds().Dx() != 12 || thumb.Bounds().Dy() != 6 {
		t.Errorf("small image thumbnail = %v, want original size", thumb.Bounds())
	}

	if _, err := reader.Thumbnail(1, 0); err == nil {
		t.Error("out-of-range plane should fail")
	}
}

func TestStillReaderRejectsCorruptSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	// Valid magic bytes, truncated body.
	if err := os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, 0o644); err != nil {
		t.Fatal(err)
	}

	builders, err := FindBuilders("", path)
	if err != nil || len(builders) == 0 {
		t.Fatalf("FindBuilders = %v, %v", builders, err)
	}
	if _, err := builders[0].Build(); err == nil {
		t.Error("Build should fail for a truncated image")
	}
}

func TestGIFReaderExposesFramesAsPlanes(t *testing.T) {
	path := writeGIF(t, "anim.gif", 3)

	builders, err := FindBuilders("", path)
	if err != nil || len(builders) == 0 {
		t.Fatalf("FindBuilders = %v, %v", builders, err)
	}
	if builders[0].Format() != "gif" {
		t.Fatalf("Format = %q, want gif", builders[0].Format())
	}

	reader, err := builders[0].Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer reader.Close()

	if reader.Planes() != 3 {
		t.Errorf("Planes = %d, want 3", reader.Planes())
	}

	// Middle plane renders fine; out-of-range does not.
	if _, err := reader.Thumbnail(reader.Planes()/2, 0); err != nil {
		t.Errorf("middle plane Thumbnail failed: %v", err)
	}
	if _, err := reader.Thumbnail(3, 0); err == nil {
		t.Error("out-of-range plane should fail")
	}
}

func TestScaleThumbnailBoundsLongEdge(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 1024, 512))
	scaled := scaleThumbnail(big)
	if scaled.Bounds().Dx() != thumbnailMaxEdge {
		t.Errorf("long edge = %d, want %d", scaled.Bounds().Dx(), thumbnailMaxEdge)
	}
	if scaled.Bounds().Dy() != thumbnailMaxEdge/2 {
		t.Errorf("short edge = %d, want %d (aspect preserved)", scaled.Bounds().Dy(), thumbnailMaxEdge/2)
	}

	small := image.NewRGBA(image.Rect(0, 0, 100, 50))
	if got := scaleThumbnail(small); got != small {
		t.Error("images within bounds must pass through unscaled")
	}
}
