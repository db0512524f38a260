package viola_test

import (
	"math/rand"
	"reflect"
	"testing"

	viola "github.com/rhawk/viola/core"
)

func TestOrigins_Boundary(t *testing.T) {
	// A 28x28 image scanned with a 24x24 window at stride 4 has
	// exactly four placements; the flush placements at offset 4 are
	// included, anything beyond never appears.
	org, err := viola.NewOrigins(28, 28, 24, 24, 4)
	if err != nil {
		t.Fatalf("NewOrigins failed: %v", err)
	}

	var got [][2]int
	for {
		x, y, ok := org.Next()
		if !ok {
			break
		}
		got = append(got, [2]int{x, y})
	}

	want := [][2]int{{0, 0}, {4, 0}, {0, 4}, {4, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("origins: got %v, want %v", got, want)
	}
}

func TestOrigins_Restartable(t *testing.T) {
	org, err := viola.NewOrigins(10, 10, 4, 4, 3)
	if err != nil {
		t.Fatalf("NewOrigins failed: %v", err)
	}

	var first [][2]int
	for {
		x, y, ok := org.Next()
		if !ok {
			break
		}
		first = append(first, [2]int{x, y})
	}

	org.Reset()
	var second [][2]int
	for {
		x, y, ok := org.Next()
		if !ok {
			break
		}
		second = append(second, [2]int{x, y})
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("restarted iteration differs: %v vs %v", first, second)
	}
}

func TestOrigins_WindowLargerThanImage(t *testing.T) {
	org, err := viola.NewOrigins(10, 10, 12, 12, 1)
	if err != nil {
		t.Fatalf("NewOrigins failed: %v", err)
	}
	if _, _, ok := org.Next(); ok {
		t.Fatal("oversized window should yield no origins")
	}
}

func randomImage(t *testing.T, rng *rand.Rand, rows, cols int) *viola.Sample {
	t.Helper()
	pixels := make([]uint8, rows*cols)
	for i := range pixels {
		pixels[i] = uint8(rng.Intn(256))
	}
	return mustSample(t, pixels, rows, cols)
}

// halfToneCascade builds a single-stage cascade accepting windows whose
// left half is notably brighter than the right half.
func halfToneCascade(t *testing.T, winW, winH int) *viola.Cascade {
	t.Helper()
	c, err := viola.NewCascade([]viola.Stage{{
		Classifiers: []viola.WeakClassifier{{
			Feature:   viola.Feature{Kind: viola.TwoRect, X: 0, Y: 0, Width: winW, Height: winH},
			Threshold: 100,
			Polarity:  -1, // predict 1 when the response exceeds 100
		}},
		Threshold: 1,
	}})
	if err != nil {
		t.Fatalf("NewCascade failed: %v", err)
	}
	return c
}

func TestScan_FindsBrightLeftRegion(t *testing.T) {
	// Dark image with one bright 4x4 block at (8, 4): only windows
	// whose left half covers the block respond strongly.
	pixels := make([]uint8, 16*16)
	for y := 4; y < 8; y++ {
		for x := 8; x < 12; x++ {
			pixels[y*16+x] = 250
		}
	}
	img := mustSample(t, pixels, 16, 16)

	dets, err := viola.Scan(img, halfToneCascade(t, 8, 8), 8, 8, 4)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(dets) == 0 {
		t.Fatal("expected at least one detection")
	}
	for _, d := range dets {
		if d.Width != 8 || d.Height != 8 {
			t.Fatalf("window size: got %dx%d, want 8x8", d.Width, d.Height)
		}
		// The bright block must fall into the window's left half.
		if d.X != 8 || d.Y > 4 || d.Y+8 < 8 {
			t.Fatalf("unexpected detection at (%d,%d)", d.X, d.Y)
		}
	}
}

func TestScanConcurrent_MatchesScan(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	img := randomImage(t, rng, 40, 40)
	c := halfToneCascade(t, 8, 8)

	seq, err := viola.Scan(img, c, 8, 8, 2)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	for _, workers := range []int{1, 2, 8, 1000} {
		conc, err := viola.ScanConcurrent(img, c, 8, 8, 2, workers)
		if err != nil {
			t.Fatalf("ScanConcurrent(%d workers) failed: %v", workers, err)
		}
		if !reflect.DeepEqual(seq, conc) {
			t.Fatalf("%d workers: concurrent result differs from sequential:\n%v\nvs\n%v",
				workers, conc, seq)
		}
	}
}

func TestClusterDetections(t *testing.T) {
	dets := []viola.DetectionWindow{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 2, Y: 2, Width: 10, Height: 10},
		{X: 40, Y: 40, Width: 10, Height: 10},
	}

	clusters := viola.ClusterDetections(dets, 0.2)
	if len(clusters) != 2 {
		t.Fatalf("clusters: got %d, want 2", len(clusters))
	}
	if clusters[0].X != 1 || clusters[0].Y != 1 {
		t.Fatalf("merged cluster at (%d,%d), want (1,1)", clusters[0].X, clusters[0].Y)
	}
	if clusters[1].X != 40 || clusters[1].Y != 40 {
		t.Fatalf("isolated window moved to (%d,%d)", clusters[1].X, clusters[1].Y)
	}
}

func BenchmarkScan(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	pixels := make([]uint8, 128*128)
	for i := range pixels {
		pixels[i] = uint8(rng.Intn(256))
	}
	img, err := viola.NewSample(pixels, 128, 128)
	if err != nil {
		b.Fatal(err)
	}

	c, err := viola.NewCascade([]viola.Stage{{
		Classifiers: []viola.WeakClassifier{{
			Feature:   viola.Feature{Kind: viola.TwoRect, X: 0, Y: 0, Width: 24, Height: 24},
			Threshold: 0,
			Polarity:  1,
		}},
		Threshold: 1,
	}})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := viola.Scan(img, c, 24, 24, 4); err != nil {
			b.Fatal(err)
		}
	}
}
