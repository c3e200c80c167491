/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package cubeio implements the miplevel.Source/Sink contract against
// PNG-encoded six-face cubemap images on disk, plus the mip-pyramid
// directory convention used to load a full prefiltered specular pyramid
// back in for inspection or further processing.
package cubeio

/*****************************************************************************************************************/

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/lumenforge/envprobe/pkg/cubeface"
	"github.com/lumenforge/envprobe/pkg/miplevel"
	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

// faceSuffixes names the on-disk suffix for each cube face, in Face
// iteration order.
var faceSuffixes = [cubeface.NumFaces]string{"posx", "negx", "posy", "negy", "posz", "negz"}

/*****************************************************************************************************************/

// DirectorySource loads a single MipLevel from six PNG files named
// "<Prefix>_<face>.png" inside Dir.
type DirectorySource struct {
	Dir    string
	Prefix string
}

/*****************************************************************************************************************/

// Decode implements miplevel.Source.
func (s DirectorySource) Decode() (*miplevel.MipLevel, error) {
	var size int
	var level *miplevel.MipLevel

	for face := cubeface.Face(0); face < cubeface.NumFaces; face++ {
		path := fmt.Sprintf("%s/%s_%s.png", s.Dir, s.Prefix, faceSuffixes[face])

		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cubeio: opening %s: %w", path, err)
		}

		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cubeio: decoding %s: %w", path, err)
		}

		bounds := img.Bounds()
		if bounds.Dx() != bounds.Dy() {
			return nil, miplevel.ErrDimensionMismatch
		}

		if level == nil {
			size = bounds.Dx()
			var err error
			level, err = miplevel.New(size, 3)
			if err != nil {
				return nil, fmt.Errorf("cubeio: %w", err)
			}
		} else if bounds.Dx() != size {
			return nil, miplevel.ErrDimensionMismatch
		}

		writeFaceFromImage(level, face, img)
	}

	return level, nil
}

/*****************************************************************************************************************/

func writeFaceFromImage(level *miplevel.MipLevel, face cubeface.Face, img image.Image) {
	bounds := img.Bounds()

	for j := 0; j < level.Size; j++ {
		for i := 0; i < level.Size; i++ {
			r, g, b, _ := img.At(bounds.Min.X+i, bounds.Min.Y+j).RGBA()

			colour := vec.V3(
				srgbToLinear(float64(r)/65535.0),
				srgbToLinear(float64(g)/65535.0),
				srgbToLinear(float64(b)/65535.0),
			)

			level.SetTexel(face, i, j, colour)
		}
	}
}

/*****************************************************************************************************************/

// DirectorySink writes a MipLevel to six PNG files inside Dir, tone-mapped
// from linear HDR down to 8-bit sRGB with a simple clamp.
type DirectorySink struct {
	Dir    string
	Prefix string
}

/*****************************************************************************************************************/

// Encode implements miplevel.Sink.
func (s DirectorySink) Encode(level *miplevel.MipLevel) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("cubeio: creating %s: %w", s.Dir, err)
	}

	for face := cubeface.Face(0); face < cubeface.NumFaces; face++ {
		img := image.NewRGBA(image.Rect(0, 0, level.Size, level.Size))

		stride := level.SamplesPerPixel
		data := level.Faces[face]

		for j := 0; j < level.Size; j++ {
			for i := 0; i < level.Size; i++ {
				idx := (j*level.Size + i) * stride

				r := linearToSRGB8(float64(data[idx+0]))
				g := linearToSRGB8(float64(data[idx+1]))
				b := linearToSRGB8(float64(data[idx+2]))

				img.SetRGBA(i, j, rgba8(r, g, b))
			}
		}

		path := fmt.Sprintf("%s/%s_%s.png", s.Dir, s.Prefix, faceSuffixes[face])

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("cubeio: creating %s: %w", path, err)
		}

		err = png.Encode(f, img)
		f.Close()
		if err != nil {
			return fmt.Errorf("cubeio: encoding %s: %w", path, err)
		}
	}

	return nil
}

/*****************************************************************************************************************/

// LoadMipPyramid loads a full mip pyramid from a sequence of directories
// named by the %d-substituted pattern (e.g. "out/level%d"), stopping at
// the first missing level. At least one level must load successfully.
func LoadMipPyramid(dirPattern, prefix string) ([]*miplevel.MipLevel, error) {
	var levels []*miplevel.MipLevel

	for i := 0; ; i++ {
		dir := fmt.Sprintf(dirPattern, i)

		if _, err := os.Stat(dir); err != nil {
			break
		}

		level, err := (DirectorySource{Dir: dir, Prefix: prefix}).Decode()
		if err != nil {
			return nil, fmt.Errorf("cubeio: loading level %d: %w", i, err)
		}

		levels = append(levels, level)
	}

	if len(levels) == 0 {
		return nil, fmt.Errorf("cubeio: no mip levels found matching %q", dirPattern)
	}

	return levels, nil
}

/*****************************************************************************************************************/

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

/*****************************************************************************************************************/

func rgba8(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

/*****************************************************************************************************************/

func linearToSRGB8(c float64) uint8 {
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}

	var s float64
	if c <= 0.0031308 {
		s = c * 12.92
	} else {
		s = 1.055*math.Pow(c, 1/2.4) - 0.055
	}

	return uint8(math.Round(s * 255))
}

/*****************************************************************************************************************/
