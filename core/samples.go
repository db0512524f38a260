package viola

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// LoadSamples reads every jpg/jpeg/png file directly under dir, resizes
// each to cols x rows and converts it to a grayscale sample. Files are
// loaded in lexical order so training runs are reproducible. An empty
// or image-free directory yields ErrEmptyTrainingSet.
func LoadSamples(dir string, rows, cols int) ([]*Sample, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("viola: no images in %s: %w", dir, ErrEmptyTrainingSet)
	}

	samples := make([]*Sample, 0, len(names))
	for _, name := range names {
		img, err := imaging.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("viola: cannot load sample %s: %w", name, err)
		}
		resized := imaging.Resize(img, cols, rows, imaging.Lanczos)
		s, err := SampleFromImage(resized)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// MirrorSamples returns a horizontally flipped copy of each sample.
// Mirroring positives is a cheap augmentation for roughly symmetric
// targets such as frontal faces.
func MirrorSamples(samples []*Sample) ([]*Sample, error) {
	mirrored := make([]*Sample, 0, len(samples))
	for _, s := range samples {
		flipped := transform.FlipH(s.GrayImage())
		m, err := SampleFromImage(flipped)
		if err != nil {
			return nil, err
		}
		mirrored = append(mirrored, m)
	}
	return mirrored, nil
}
