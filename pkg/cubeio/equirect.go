/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package cubeio

/*****************************************************************************************************************/

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

/*****************************************************************************************************************/

// LoadEquirect decodes an equirectangular panorama (PNG, BMP or TIFF,
// selected by extension) into an interleaved RGB float32 buffer suitable
// for pkg/lightextract, converting sRGB input to linear light.
func LoadEquirect(path string) (pixels []float32, width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("cubeio: opening %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(f)
	case ".bmp":
		img, err = bmp.Decode(f)
	case ".tif", ".tiff":
		img, err = tiff.Decode(f)
	default:
		return nil, 0, 0, fmt.Errorf("cubeio: unsupported equirect extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, 0, 0, fmt.Errorf("cubeio: decoding %s: %w", path, err)
	}

	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()

	pixels = make([]float32, width*height*3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			idx := (y*width + x) * 3
			pixels[idx+0] = float32(srgbToLinear(float64(r) / 65535.0))
			pixels[idx+1] = float32(srgbToLinear(float64(g) / 65535.0))
			pixels[idx+2] = float32(srgbToLinear(float64(b) / 65535.0))
		}
	}

	return pixels, width, height, nil
}

/*****************************************************************************************************************/
