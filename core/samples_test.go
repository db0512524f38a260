package viola_test

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	viola "github.com/rhawk/viola/core"
)

func TestRgbToGrayscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for x := 0; x < 6; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{177, 177, 177, 255})
		}
	}

	gray := viola.RgbToGrayscale(img)
	if len(gray) != 6*4 {
		t.Fatalf("grayscale length: got %d, want %d", len(gray), 6*4)
	}
	for i, v := range gray {
		// Equal channels keep their value through the BT.601 weights.
		if v != 177 {
			t.Fatalf("pixel %d: got %d, want 177", i, v)
		}
	}
}

func TestSample_SubWindow(t *testing.T) {
	s := mustSample(t, quadrants, 4, 4)

	win, err := s.SubWindow(2, 0, 2, 2)
	if err != nil {
		t.Fatalf("SubWindow failed: %v", err)
	}
	for _, v := range win.Pixels {
		if v != 2 {
			t.Fatalf("top-right quadrant: got %v, want all 2s", win.Pixels)
		}
	}

	if _, err := s.SubWindow(3, 3, 2, 2); !errors.Is(err, viola.ErrOutOfBounds) {
		t.Fatalf("overflowing window: got %v, want ErrOutOfBounds", err)
	}
	if _, err := s.SubWindow(0, 0, 0, 2); !errors.Is(err, viola.ErrInvalidDimensions) {
		t.Fatalf("zero-width window: got %v, want ErrInvalidDimensions", err)
	}
}

func TestMirrorSamples(t *testing.T) {
	pixels := []uint8{
		10, 20, 30, 40,
		50, 60, 70, 80,
	}
	s := mustSample(t, pixels, 2, 4)

	mirrored, err := viola.MirrorSamples([]*viola.Sample{s})
	if err != nil {
		t.Fatalf("MirrorSamples failed: %v", err)
	}
	if len(mirrored) != 1 {
		t.Fatalf("mirrored count: got %d, want 1", len(mirrored))
	}

	want := []uint8{
		40, 30, 20, 10,
		80, 70, 60, 50,
	}
	for i, v := range mirrored[0].Pixels {
		if v != want[i] {
			t.Fatalf("mirrored pixels: got %v, want %v", mirrored[0].Pixels, want)
		}
	}

	// Mirroring twice restores the original.
	twice, err := viola.MirrorSamples(mirrored)
	if err != nil {
		t.Fatalf("MirrorSamples failed: %v", err)
	}
	for i, v := range twice[0].Pixels {
		if v != pixels[i] {
			t.Fatalf("double mirror: got %v, want %v", twice[0].Pixels, pixels)
		}
	}
}

func writeTestImage(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("cannot create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("cannot encode %s: %v", path, err)
	}
}

func TestLoadSamples(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, filepath.Join(dir, "a.png"), 32, 32, color.RGBA{200, 200, 200, 255})
	writeTestImage(t, filepath.Join(dir, "b.png"), 48, 16, color.RGBA{30, 30, 30, 255})

	samples, err := viola.LoadSamples(dir, 24, 24)
	if err != nil {
		t.Fatalf("LoadSamples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("sample count: got %d, want 2", len(samples))
	}
	for _, s := range samples {
		if s.Rows != 24 || s.Cols != 24 {
			t.Fatalf("sample size: got %dx%d, want 24x24", s.Cols, s.Rows)
		}
	}
}

func TestLoadSamples_EmptyDir(t *testing.T) {
	if _, err := viola.LoadSamples(t.TempDir(), 24, 24); !errors.Is(err, viola.ErrEmptyTrainingSet) {
		t.Fatalf("empty dir: got %v, want ErrEmptyTrainingSet", err)
	}
}
