package inkcost

import (
	"fmt"
	"image"
	_ "image/jpeg" // scans given to `inkcost analyze`
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// LoadImage decodes a PNG, JPEG, TIFF or BMP file into an RGB raster.
func LoadImage(path string) (Raster, error) {
	f, err := os.Open(path) // #nosec G304 -- path is user-provided or produced by pdftoppm
	if err != nil {
		if os.IsNotExist(err) {
			return Raster{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Raster{}, fmt.Errorf("opening image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return Raster{}, fmt.Errorf("%w: decoding %s: %v", ErrInvalidFormat, path, err)
	}

	r, err := FromImage(img)
	if err != nil {
		return Raster{}, fmt.Errorf("converting %s image: %w", format, err)
	}
	return r, nil
}
