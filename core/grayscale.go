package viola

import (
	"image"
)

// RgbToGrayscale flattens an image into the row-major luma buffer the
// sample and integral-image types operate on, weighting the channels
// per ITU-R BT.601.
func RgbToGrayscale(src image.Image) []uint8 {
	bounds := src.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()
	gray := make([]uint8, rows*cols)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			gray[i] = uint8(lum / 256)
			i++
		}
	}
	return gray
}

// SampleFromImage converts the image to grayscale and wraps the pixel
// data into a sample.
func SampleFromImage(src image.Image) (*Sample, error) {
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()
	return NewSample(RgbToGrayscale(src), rows, cols)
}

// GrayImage renders the sample back into a stdlib grayscale image.
func (s *Sample) GrayImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.Cols, s.Rows))
	for y := 0; y < s.Rows; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+s.Cols], s.Pixels[y*s.Dim:y*s.Dim+s.Cols])
	}
	return img
}
