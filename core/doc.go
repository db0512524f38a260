/*
Package viola is a small pure Go Haar-cascade object detection library:
integral images, Haar-like rectangle features, threshold weak classifiers,
a boosting-style trainer and a cascaded sliding-window detector
(https://en.wikipedia.org/wiki/Viola%E2%80%93Jones_object_detection_framework).
It is platform agnostic and meant for teaching-scale experiments rather than
production accuracy.

Detection API example

Load a packed cascade, convert the image to grayscale mode and scan it with
a fixed-size window. The scanner reports every accepted window; cluster the
results when you want one window per object.

	data, err := os.ReadFile("/path/to/cascade/file")
	if err != nil {
		log.Fatalf("Error reading the cascade file: %v", err)
	}

	cascade, err := viola.UnpackCascade(data)
	if err != nil {
		log.Fatalf("Error parsing the cascade file: %v", err)
	}

	src, err := viola.GetImage("/path/to/image")
	if err != nil {
		log.Fatalf("Cannot open the image file: %v", err)
	}

	img, err := viola.SampleFromImage(src)
	if err != nil {
		log.Fatalf("Cannot convert the image: %v", err)
	}

	// Slide a 24x24 window over the image with a stride of 4 pixels.
	dets, err := viola.Scan(img, cascade, 24, 24, 4)
	if err != nil {
		log.Fatalf("Detection error: %v", err)
	}
	dets = viola.ClusterDetections(dets, 0.2)

Training API example

Training takes equally sized positive and negative grayscale samples and
produces a cascade of boosted stages which can be packed to disk.

	pos, err := viola.LoadSamples("/path/to/positives", 24, 24)
	if err != nil {
		log.Fatalf("Error loading the positive samples: %v", err)
	}
	neg, err := viola.LoadSamples("/path/to/negatives", 24, 24)
	if err != nil {
		log.Fatalf("Error loading the negative samples: %v", err)
	}

	pool := viola.FeaturePool(24, 24)
	cascade, err := viola.TrainCascade(pool, pos, neg, 3, 5, viola.DefaultThresholdRange())
	if err != nil {
		log.Fatalf("Training error: %v", err)
	}

	if err := os.WriteFile("cascade.bin", cascade.Pack(), 0644); err != nil {
		log.Fatalf("Cannot save the cascade: %v", err)
	}
*/
package viola
