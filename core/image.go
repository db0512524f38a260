package viola

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// DecodeImage decodes the image obtained as a reader and returns it as
// an NRGBA image.
func DecodeImage(r io.Reader) (*image.NRGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	img := image.NewNRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img, nil
}

// GetImage retrieves and decodes the image file from the given path.
func GetImage(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return DecodeImage(file)
}
