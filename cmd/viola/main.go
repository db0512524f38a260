package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/term"

	viola "github.com/rhawk/viola/core"
	"github.com/rhawk/viola/utils"
)

const banner = `
┬  ┬┬┌─┐┬  ┌─┐
└┐┌┘││ ││  ├─┤
 └┘ ┴└─┘┴─┘┴ ┴

Haar cascade object detection.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

const (
	// markerRectangle - use rectangle as detection marker
	markerRectangle string = "rect"
	// markerCircle - use circle as detection marker
	markerCircle string = "circle"

	// message colors
	successColor = "\x1b[92m"
	errorColor   = "\x1b[31m"
	defaultColor = "\x1b[0m"
)

// Version indicates the current build version.
var Version string

// detector bundles the scan settings parsed from the command line.
type detector struct {
	cascadeFile  string
	winWidth     int
	winHeight    int
	step         int
	workers      int
	iouThreshold float64
}

func main() {
	var (
		source       = flag.String("in", pipeName, "Source image")
		destination  = flag.String("out", pipeName, "Destination image")
		cascadeFile  = flag.String("cf", "", "Cascade binary file")
		winWidth     = flag.Int("ww", 24, "Detection window width")
		winHeight    = flag.Int("wh", 24, "Detection window height")
		step         = flag.Int("step", 4, "Detection window stride in pixels")
		workers      = flag.Int("workers", 1, "Number of concurrent scan workers")
		iouThreshold = flag.Float64("iou", 0.2, "Intersection over union (IoU) threshold, 0 disables clustering")
		marker       = flag.String("marker", "rect", "Detection marker: rect|circle")
		jsonf        = flag.String("json", "", "Output the detection coordinates into a json file")
	)

	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, banner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*source) == 0 || len(*cascadeFile) == 0 {
		log.Fatal("Usage: viola -in input.jpg -out out.png -cf cascade.bin")
	}

	start := time.Now()

	ind := utils.NewProgressIndicator("Scanning...", time.Millisecond*100)
	ind.Start()

	det := &detector{
		cascadeFile:  *cascadeFile,
		winWidth:     *winWidth,
		winHeight:    *winHeight,
		step:         *step,
		workers:      *workers,
		iouThreshold: *iouThreshold,
	}

	var dst io.Writer
	if *destination != "empty" {
		if *destination == pipeName {
			if term.IsTerminal(int(os.Stdout.Fd())) {
				log.Fatalln("`-` should be used with a pipe for stdout")
			}
			dst = os.Stdout
		} else {
			ext := filepath.Ext(*destination)
			if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
				log.Fatalf("Output file type not supported: %v", ext)
			}
			fn, err := os.OpenFile(*destination, os.O_CREATE|os.O_WRONLY, 0755)
			if err != nil {
				log.Fatalf("Unable to open output file: %v", err)
			}
			defer fn.Close()
			dst = fn
		}
	}

	dets, dc, err := det.detect(*source)
	if err != nil {
		ind.StopMsg = fmt.Sprintf("Scanning... %sfailed ✗%s", errorColor, defaultColor)
		ind.Stop()
		log.Fatalf("Detection error: %s%v%s", errorColor, err, defaultColor)
	}

	drawDetections(dc, dets, *marker)

	if *destination != "empty" {
		if err := encodeImage(dc, dst, filepath.Ext(*destination)); err != nil {
			log.Fatalf("Error encoding the output image: %v", err)
		}
	}

	ind.StopMsg = fmt.Sprintf("Scanning... %sfinished ✔%s", successColor, defaultColor)
	ind.Stop()

	if len(dets) > 0 {
		log.Printf("\n%s%d%s detection(s)", successColor, len(dets), defaultColor)
	} else {
		log.Printf("\n%sno detections!%s", errorColor, defaultColor)
	}

	if *jsonf != "" {
		var out io.Writer
		if *jsonf == pipeName {
			out = os.Stdout
		} else {
			f, err := os.Create(*jsonf)
			if err != nil {
				log.Fatalf("Could not create the json file: %v", err)
			}
			defer f.Close()
			out = f
		}
		if err := json.NewEncoder(out).Encode(dets); err != nil {
			log.Fatalf("Error encoding the json file: %v", err)
		}
	}

	log.Printf("\nExecution time: %s%.2fs%s\n", successColor, time.Since(start).Seconds(), defaultColor)
}

// detect loads the cascade and the source image and runs the
// sliding-window scan over it.
func (d *detector) detect(source string) ([]viola.DetectionWindow, *gg.Context, error) {
	var srcFile io.Reader
	if source == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			log.Fatalln("`-` should be used with a pipe for stdin")
		}
		srcFile = os.Stdin
	} else {
		file, err := os.Open(source)
		if err != nil {
			return nil, nil, err
		}
		defer file.Close()
		srcFile = file
	}

	src, err := viola.DecodeImage(srcFile)
	if err != nil {
		return nil, nil, err
	}

	img, err := viola.SampleFromImage(src)
	if err != nil {
		return nil, nil, err
	}

	dc := gg.NewContext(img.Cols, img.Rows)
	dc.DrawImage(src, 0, 0)

	data, err := os.ReadFile(d.cascadeFile)
	if err != nil {
		return nil, nil, err
	}
	cascade, err := viola.UnpackCascade(data)
	if err != nil {
		return nil, nil, err
	}

	var dets []viola.DetectionWindow
	if d.workers > 1 {
		dets, err = viola.ScanConcurrent(img, cascade, d.winWidth, d.winHeight, d.step, d.workers)
	} else {
		dets, err = viola.Scan(img, cascade, d.winWidth, d.winHeight, d.step)
	}
	if err != nil {
		return nil, nil, err
	}

	if d.iouThreshold > 0 {
		dets = viola.ClusterDetections(dets, d.iouThreshold)
	}
	return dets, dc, nil
}

// drawDetections marks the detected windows with the requested marker type.
func drawDetections(dc *gg.Context, dets []viola.DetectionWindow, marker string) {
	for _, det := range dets {
		switch marker {
		case markerCircle:
			dc.DrawCircle(
				float64(det.X)+float64(det.Width)/2,
				float64(det.Y)+float64(det.Height)/2,
				float64(det.Width)/2,
			)
		default:
			dc.DrawRectangle(
				float64(det.X),
				float64(det.Y),
				float64(det.Width),
				float64(det.Height),
			)
		}
		dc.SetLineWidth(2.0)
		dc.SetRGB255(255, 0, 0)
		dc.Stroke()
	}
}

// encodeImage writes the annotated image in the format matching the
// destination extension; piped output defaults to png.
func encodeImage(dc *gg.Context, dst io.Writer, ext string) error {
	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Encode(dst, dc.Image(), &jpeg.Options{Quality: 100})
	default:
		return png.Encode(dst, dc.Image())
	}
}
