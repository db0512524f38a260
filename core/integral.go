package viola

// IntegralImage is a prefix-sum table over a sample's pixel data.
// Each entry holds the sum of all pixels above and to the left of it,
// inclusive, which makes the sum of any axis-aligned rectangle a
// four-lookup operation.
type IntegralImage struct {
	sums []uint64
	rows int
	cols int
}

// NewIntegralImage builds the prefix-sum table of the sample in a single
// O(rows*cols) pass using the recurrence
// I(x,y) = P(x,y) + I(x-1,y) + I(x,y-1) - I(x-1,y-1),
// where indices below zero read as zero.
func NewIntegralImage(s *Sample) (*IntegralImage, error) {
	if s == nil || s.Rows <= 0 || s.Cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(s.Pixels) < s.Rows*s.Dim {
		return nil, ErrInvalidDimensions
	}

	ii := &IntegralImage{
		sums: make([]uint64, s.Rows*s.Cols),
		rows: s.Rows,
		cols: s.Cols,
	}
	for y := 0; y < s.Rows; y++ {
		var rowSum uint64
		for x := 0; x < s.Cols; x++ {
			rowSum += uint64(s.Pixels[y*s.Dim+x])
			ii.sums[y*s.Cols+x] = rowSum
			if y > 0 {
				ii.sums[y*s.Cols+x] += ii.sums[(y-1)*s.Cols+x]
			}
		}
	}
	return ii, nil
}

// Rows returns the number of table rows.
func (ii *IntegralImage) Rows() int { return ii.rows }

// Cols returns the number of table columns.
func (ii *IntegralImage) Cols() int { return ii.cols }

// at reads the table value at (x, y), treating indices below zero as zero.
func (ii *IntegralImage) at(x, y int) uint64 {
	if x < 0 || y < 0 {
		return 0
	}
	return ii.sums[y*ii.cols+x]
}

// SumRect returns the pixel sum over the half-open rectangle
// [x0,x1) x [y0,y1) via the four-corner inclusion-exclusion formula.
func (ii *IntegralImage) SumRect(x0, y0, x1, y1 int) (uint64, error) {
	if x0 < 0 || y0 < 0 || x1 > ii.cols || y1 > ii.rows || x0 > x1 || y0 > y1 {
		return 0, ErrOutOfBounds
	}
	return ii.sumRect(x0, y0, x1, y1), nil
}

// sumRect is the unchecked variant of SumRect, used on rectangles
// already validated against the table extent.
func (ii *IntegralImage) sumRect(x0, y0, x1, y1 int) uint64 {
	return ii.at(x1-1, y1-1) + ii.at(x0-1, y0-1) -
		ii.at(x0-1, y1-1) - ii.at(x1-1, y0-1)
}
