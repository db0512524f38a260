package viola_test

import (
	"math/rand"
	"testing"

	viola "github.com/rhawk/viola/core"
)

func TestPack_RoundTrip(t *testing.T) {
	original, err := viola.NewCascade([]viola.Stage{
		{
			Classifiers: []viola.WeakClassifier{
				{
					Feature:   viola.Feature{Kind: viola.TwoRect, X: 0, Y: 0, Width: 4, Height: 4},
					Threshold: -12.5,
					Polarity:  -1,
				},
				{
					Feature:   viola.Feature{Kind: viola.ThreeRect, X: 1, Y: 0, Width: 3, Height: 2},
					Threshold: 7,
					Polarity:  1,
				},
			},
			Threshold: 1,
		},
		{
			Classifiers: []viola.WeakClassifier{
				{
					Feature:   viola.Feature{Kind: viola.FourRect, X: 0, Y: 0, Width: 2, Height: 2},
					Threshold: 0.25,
					Polarity:  1,
				},
			},
			Threshold: 0,
		},
	})
	if err != nil {
		t.Fatalf("NewCascade failed: %v", err)
	}

	restored, err := viola.UnpackCascade(original.Pack())
	if err != nil {
		t.Fatalf("UnpackCascade failed: %v", err)
	}
	if restored.NumStages() != original.NumStages() {
		t.Fatalf("stage count: got %d, want %d", restored.NumStages(), original.NumStages())
	}

	// The restored cascade must behave identically.
	rng := rand.New(rand.NewSource(13))
	for trial := 0; trial < 50; trial++ {
		pixels := make([]uint8, 4*4)
		for i := range pixels {
			pixels[i] = uint8(rng.Intn(256))
		}
		s := mustSample(t, pixels, 4, 4)

		want, err := original.Detect(s)
		if err != nil {
			t.Fatalf("Detect failed: %v", err)
		}
		got, err := restored.Detect(s)
		if err != nil {
			t.Fatalf("Detect on restored cascade failed: %v", err)
		}
		if got != want {
			t.Fatalf("trial %d: restored cascade disagrees: got %v, want %v", trial, got, want)
		}
	}
}

func TestUnpackCascade_Invalid(t *testing.T) {
	if _, err := viola.UnpackCascade(nil); err == nil {
		t.Error("empty packet should fail")
	}
	if _, err := viola.UnpackCascade([]byte("NOPE")); err == nil {
		t.Error("wrong magic should fail")
	}
	if _, err := viola.UnpackCascade([]byte{'V', 'J', 'C', '1', 2, 0, 0, 0}); err == nil {
		t.Error("truncated packet should fail")
	}
}
