package viola

// Sample holds the grayscale converted pixel data of an image patch.
// Pixels: the flat, row-major pixel buffer.
// Rows: the number of pixel rows.
// Cols: the number of pixel columns.
// Dim: the row stride of the pixel buffer.
type Sample struct {
	Pixels []uint8
	Rows   int
	Cols   int
	Dim    int
}

// NewSample wraps a row-major pixel buffer into a sample.
// The buffer length must match rows*cols exactly.
func NewSample(pixels []uint8, rows, cols int) (*Sample, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(pixels) != rows*cols {
		return nil, ErrInvalidDimensions
	}
	return &Sample{
		Pixels: pixels,
		Rows:   rows,
		Cols:   cols,
		Dim:    cols,
	}, nil
}

// SubWindow copies the w x h region whose top-left corner is at (x, y)
// into a new sample with its own pixel buffer.
func (s *Sample) SubWindow(x, y, w, h int) (*Sample, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	if x < 0 || y < 0 || x+w > s.Cols || y+h > s.Rows {
		return nil, ErrOutOfBounds
	}

	pixels := make([]uint8, w*h)
	for row := 0; row < h; row++ {
		src := (y+row)*s.Dim + x
		copy(pixels[row*w:(row+1)*w], s.Pixels[src:src+w])
	}
	return &Sample{
		Pixels: pixels,
		Rows:   h,
		Cols:   w,
		Dim:    w,
	}, nil
}
