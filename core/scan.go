package viola

import "sync"

// DetectionWindow holds the coordinates of an accepted sub-region of
// the scanned image.
type DetectionWindow struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origins generates sliding-window origin coordinates in row-major
// order over a regular grid with the given step. The bounds are
// inclusive against rows-winH and cols-winW, so a window flush with
// the image edge is a valid placement. Earlier revisions used an
// exclusive bound which silently dropped the final row and column of
// placements; that off-by-one is fixed here.
type Origins struct {
	rows int
	cols int
	winW int
	winH int
	step int
	x    int
	y    int
}

// NewOrigins validates the scan geometry and positions the iterator at
// the first origin. A window larger than the image yields an empty
// sequence rather than an error.
func NewOrigins(rows, cols, winW, winH, step int) (*Origins, error) {
	if rows <= 0 || cols <= 0 || winW <= 0 || winH <= 0 {
		return nil, ErrInvalidDimensions
	}
	if step <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Origins{rows: rows, cols: cols, winW: winW, winH: winH, step: step}, nil
}

// Next returns the current origin and advances the iterator. The third
// return value is false once the sequence is exhausted.
func (o *Origins) Next() (int, int, bool) {
	if o.cols < o.winW || o.y > o.rows-o.winH {
		return 0, 0, false
	}
	x, y := o.x, o.y
	o.x += o.step
	if o.x > o.cols-o.winW {
		o.x = 0
		o.y += o.step
	}
	return x, y, true
}

// Reset rewinds the iterator to the first origin.
func (o *Origins) Reset() {
	o.x, o.y = 0, 0
}

// collect drains the remaining origins into a slice.
func (o *Origins) collect() [][2]int {
	var pts [][2]int
	for {
		x, y, ok := o.Next()
		if !ok {
			return pts
		}
		pts = append(pts, [2]int{x, y})
	}
}

// Scan slides a winW x winH window over the image with the given step
// and records every sub-window the cascade accepts. The scanner applies
// no overlap suppression; see ClusterDetections for an external merge.
func Scan(img *Sample, c *Cascade, winW, winH, step int) ([]DetectionWindow, error) {
	org, err := NewOrigins(img.Rows, img.Cols, winW, winH, step)
	if err != nil {
		return nil, err
	}

	var dets []DetectionWindow
	for {
		x, y, ok := org.Next()
		if !ok {
			break
		}
		win, err := img.SubWindow(x, y, winW, winH)
		if err != nil {
			return nil, err
		}
		accept, err := c.Detect(win)
		if err != nil {
			return nil, err
		}
		if accept {
			dets = append(dets, DetectionWindow{X: x, Y: y, Width: winW, Height: winH})
		}
	}
	return dets, nil
}

// ScanConcurrent is Scan with the window evaluations spread over a
// bounded worker pool. Every origin is an independent pure evaluation,
// so only the aggregation order matters: results are collected in the
// same row-major order Scan produces.
func ScanConcurrent(img *Sample, c *Cascade, winW, winH, step, workers int) ([]DetectionWindow, error) {
	org, err := NewOrigins(img.Rows, img.Cols, winW, winH, step)
	if err != nil {
		return nil, err
	}
	origins := org.collect()
	if len(origins) == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(origins) {
		workers = len(origins)
	}

	accepts := make([]bool, len(origins))
	errs := make([]error, len(origins))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				win, err := img.SubWindow(origins[i][0], origins[i][1], winW, winH)
				if err != nil {
					errs[i] = err
					continue
				}
				accepts[i], errs[i] = c.Detect(win)
			}
		}()
	}
	for i := range origins {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var dets []DetectionWindow
	for i, pt := range origins {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if accepts[i] {
			dets = append(dets, DetectionWindow{X: pt[0], Y: pt[1], Width: winW, Height: winH})
		}
	}
	return dets, nil
}
