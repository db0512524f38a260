package viola

// FeatureKind selects the rectangle layout of a Haar-like feature.
type FeatureKind int

const (
	// TwoRect splits the feature box into equal left/right halves and
	// subtracts the right half's pixel sum from the left half's.
	TwoRect FeatureKind = iota
	// ThreeRect splits the feature box into three equal vertical strips
	// and subtracts the middle strip's sum from the two outer strips'.
	ThreeRect
	// FourRect splits the feature box into four quadrants with
	// checkerboard signs: (top-left + bottom-right) - (top-right + bottom-left).
	FourRect
)

// Feature describes a rectangular intensity-contrast pattern positioned
// inside a sample's coordinate space. It is a pure value descriptor;
// the same feature can be evaluated against any integral image large
// enough to contain its box.
type Feature struct {
	Kind   FeatureKind
	X      int
	Y      int
	Width  int
	Height int
}

// Compute evaluates the feature's scalar response against an integral
// image. The response is the signed difference of the sub-rectangle
// sums dictated by the feature kind. The sub-rectangles must tile the
// feature box evenly: two-rect widths must be even, three-rect widths
// divisible by three and four-rect widths and heights even; uneven
// boxes are rejected with ErrInvalidDimensions.
func (f Feature) Compute(ii *IntegralImage) (float64, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return 0, ErrInvalidDimensions
	}
	switch f.Kind {
	case TwoRect:
		if f.Width%2 != 0 {
			return 0, ErrInvalidDimensions
		}
	case ThreeRect:
		if f.Width%3 != 0 {
			return 0, ErrInvalidDimensions
		}
	case FourRect:
		if f.Width%2 != 0 || f.Height%2 != 0 {
			return 0, ErrInvalidDimensions
		}
	}
	if f.X < 0 || f.Y < 0 || f.X+f.Width > ii.cols || f.Y+f.Height > ii.rows {
		return 0, ErrOutOfBounds
	}

	y0, y1 := f.Y, f.Y+f.Height

	switch f.Kind {
	case TwoRect:
		mid := f.X + f.Width/2
		left := ii.sumRect(f.X, y0, mid, y1)
		right := ii.sumRect(mid, y0, f.X+f.Width, y1)
		return float64(left) - float64(right), nil

	case ThreeRect:
		third := f.Width / 3
		x1 := f.X + third
		x2 := f.X + 2*third
		outer := ii.sumRect(f.X, y0, x1, y1) + ii.sumRect(x2, y0, f.X+f.Width, y1)
		middle := ii.sumRect(x1, y0, x2, y1)
		return float64(outer) - float64(middle), nil

	case FourRect:
		mx := f.X + f.Width/2
		my := f.Y + f.Height/2
		pos := ii.sumRect(f.X, y0, mx, my) + ii.sumRect(mx, my, f.X+f.Width, y1)
		neg := ii.sumRect(mx, y0, f.X+f.Width, my) + ii.sumRect(f.X, my, mx, y1)
		return float64(pos) - float64(neg), nil
	}
	return 0, nil
}

// FeaturePool enumerates every well-formed feature over a rows x cols
// window: two-rect features with even widths, three-rect features with
// widths divisible by three and four-rect features with even widths and
// heights. The enumeration order is deterministic, which the trainer
// relies on for reproducible tie-breaking.
func FeaturePool(rows, cols int) []Feature {
	var pool []Feature

	for w := 2; w <= cols; w += 2 {
		for h := 1; h <= rows; h++ {
			for y := 0; y <= rows-h; y++ {
				for x := 0; x <= cols-w; x++ {
					pool = append(pool, Feature{TwoRect, x, y, w, h})
				}
			}
		}
	}
	for w := 3; w <= cols; w += 3 {
		for h := 1; h <= rows; h++ {
			for y := 0; y <= rows-h; y++ {
				for x := 0; x <= cols-w; x++ {
					pool = append(pool, Feature{ThreeRect, x, y, w, h})
				}
			}
		}
	}
	for w := 2; w <= cols; w += 2 {
		for h := 2; h <= rows; h += 2 {
			for y := 0; y <= rows-h; y++ {
				for x := 0; x <= cols-w; x++ {
					pool = append(pool, Feature{FourRect, x, y, w, h})
				}
			}
		}
	}
	return pool
}
