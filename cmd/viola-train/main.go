package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	viola "github.com/rhawk/viola/core"
	"github.com/rhawk/viola/utils"
)

const banner = `
┬  ┬┬┌─┐┬  ┌─┐  ┌┬┐┬─┐┌─┐┬┌┐┌
└┐┌┘││ ││  ├─┤   │ ├┬┘├─┤││││
 └┘ ┴└─┘┴─┘┴ ┴   ┴ ┴└─┴ ┴┴┘└┘

Haar cascade training.
    Version: %s

`

// Version indicates the current build version.
var Version string

const (
	successColor = "\x1b[92m"
	errorColor   = "\x1b[31m"
	defaultColor = "\x1b[0m"
)

func main() {
	var (
		posDir    = flag.String("pos", "", "Directory with positive sample images")
		negDir    = flag.String("neg", "", "Directory with negative sample images")
		output    = flag.String("out", "cascade.bin", "Output cascade file")
		width     = flag.Int("w", 24, "Sample width in pixels")
		height    = flag.Int("h", 24, "Sample height in pixels")
		numStages = flag.Int("stages", 3, "Number of cascade stages")
		rounds    = flag.Int("rounds", 5, "Boosting rounds (classifiers) per stage")
		mirror    = flag.Bool("mirror", true, "Augment positives with mirrored copies")
		tmin      = flag.Float64("tmin", -1, "Minimum threshold candidate")
		tmax      = flag.Float64("tmax", 1, "Maximum threshold candidate")
		tsteps    = flag.Int("tsteps", 10, "Number of threshold candidates")
	)

	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, banner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*posDir) == 0 || len(*negDir) == 0 {
		log.Fatal("Usage: viola-train -pos positives/ -neg negatives/ -out cascade.bin")
	}

	start := time.Now()

	pos, err := viola.LoadSamples(*posDir, *height, *width)
	if err != nil {
		log.Fatalf("Error loading the positive samples: %s%v%s", errorColor, err, defaultColor)
	}
	neg, err := viola.LoadSamples(*negDir, *height, *width)
	if err != nil {
		log.Fatalf("Error loading the negative samples: %s%v%s", errorColor, err, defaultColor)
	}

	if *mirror {
		mirrored, err := viola.MirrorSamples(pos)
		if err != nil {
			log.Fatalf("Error mirroring the positive samples: %s%v%s", errorColor, err, defaultColor)
		}
		pos = append(pos, mirrored...)
	}

	log.Printf("Training on %s%d%s positive and %s%d%s negative samples",
		successColor, len(pos), defaultColor, successColor, len(neg), defaultColor)

	ind := utils.NewProgressIndicator("Training...", time.Millisecond*100)
	ind.Start()

	pool := viola.FeaturePool(*height, *width)
	rng := viola.ThresholdRange{Min: *tmin, Max: *tmax, Steps: *tsteps}

	cascade, err := viola.TrainCascade(pool, pos, neg, *numStages, *rounds, rng)
	if err != nil {
		ind.StopMsg = fmt.Sprintf("Training... %sfailed ✗%s", errorColor, defaultColor)
		ind.Stop()
		log.Fatalf("Training error: %s%v%s", errorColor, err, defaultColor)
	}

	if err := os.WriteFile(*output, cascade.Pack(), 0644); err != nil {
		ind.StopMsg = fmt.Sprintf("Training... %sfailed ✗%s", errorColor, defaultColor)
		ind.Stop()
		log.Fatalf("Cannot save the cascade: %s%v%s", errorColor, err, defaultColor)
	}

	ind.StopMsg = fmt.Sprintf("Training... %sfinished ✔%s", successColor, defaultColor)
	ind.Stop()

	log.Printf("\n%s%d%s stage(s) written to %s", successColor, cascade.NumStages(), defaultColor, *output)
	log.Printf("\nExecution time: %s%.2fs%s\n", successColor, time.Since(start).Seconds(), defaultColor)
}
