/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package lightextract segments an equirectangular HDR panorama into a
// small set of directional point lights: a summed-area table over the
// image, a recursive rectangular region split, promotion of each region
// into a Light, and two merge passes that collapse neighbouring lights
// into compact representatives.
package lightextract

/*****************************************************************************************************************/

import (
	"math"

	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

// SummedAreaTable holds the inclusive prefix sum of R, G, B and luminance
// over a W×H image, so the sum over any axis-aligned rectangle can be
// read in constant time.
type SummedAreaTable struct {
	Width, Height      int
	sumR               []float64
	sumG               []float64
	sumB               []float64
	sumLum             []float64
	weightAccumulation float64
}

/*****************************************************************************************************************/

// BuildSAT constructs a SummedAreaTable from an interleaved RGB(A) float
// buffer of the given dimensions and channel stride.
func BuildSAT(pixels []float32, width, height, stride int) *SummedAreaTable {
	sat := &SummedAreaTable{
		Width:  width,
		Height: height,
		sumR:   make([]float64, width*height),
		sumG:   make([]float64, width*height),
		sumB:   make([]float64, width*height),
		sumLum: make([]float64, width*height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * stride
			r := float64(pixels[idx+0])
			g := float64(pixels[idx+1])
			b := float64(pixels[idx+2])
			lum := vec.Luminance(r, g, b)

			out := y*width + x

			left, up, upLeft := 0.0, 0.0, 0.0
			if x > 0 {
				left = 1
			}
			if y > 0 {
				up = 1
			}
			if x > 0 && y > 0 {
				upLeft = 1
			}

			var lR, lG, lB, lL float64
			var uR, uG, uB, uL float64
			var ulR, ulG, ulB, ulL float64

			if left == 1 {
				lR, lG, lB, lL = sat.sumR[out-1], sat.sumG[out-1], sat.sumB[out-1], sat.sumLum[out-1]
			}
			if up == 1 {
				uR, uG, uB, uL = sat.sumR[out-width], sat.sumG[out-width], sat.sumB[out-width], sat.sumLum[out-width]
			}
			if upLeft == 1 {
				ulR, ulG, ulB, ulL = sat.sumR[out-width-1], sat.sumG[out-width-1], sat.sumB[out-width-1], sat.sumLum[out-width-1]
			}

			sat.sumR[out] = r + lR + uR - ulR
			sat.sumG[out] = g + lG + uG - ulG
			sat.sumB[out] = b + lB + uB - ulB
			sat.sumLum[out] = lum + lL + uL - ulL
		}
	}

	normalization := 4 * math.Pi / (float64(width) * float64(height))

	weightAccum := 0.0
	for y := 0; y < height; y++ {
		weightAccum += RowSolidAngle(y, height) * normalization * float64(width)
	}
	sat.weightAccumulation = weightAccum

	return sat
}

/*****************************************************************************************************************/

// WeightAccumulation returns the sum of the fully-normalised per-pixel
// solid-angle weight (RowSolidAngle scaled by 4π/(W·H)) across the whole
// image, so dividing a region's weighted luminance sum by this value and
// multiplying by 4π recovers the image's true solid-angle total: a
// full image of uniform unit luminance sums to exactly 4π (spec §4.6
// step 3).
func (s *SummedAreaTable) WeightAccumulation() float64 {
	return s.weightAccumulation
}

/*****************************************************************************************************************/

// at reads the inclusive prefix sum at (x,y), returning 0 for a negative
// coordinate and clamping one past the last column or row to that edge.
func (s *SummedAreaTable) at(table []float64, x, y int) float64 {
	if x < 0 || y < 0 {
		return 0
	}
	if x >= s.Width {
		x = s.Width - 1
	}
	if y >= s.Height {
		y = s.Height - 1
	}
	return table[y*s.Width+x]
}

/*****************************************************************************************************************/

// RegionSum returns the (R, G, B, luminance) sums over the half-open
// rectangle [x, x+w) × [y, y+h).
func (s *SummedAreaTable) RegionSum(x, y, w, h int) (r, g, b, lum float64) {
	x1, y1 := x+w-1, y+h-1

	sum := func(table []float64) float64 {
		return s.at(table, x1, y1) - s.at(table, x-1, y1) - s.at(table, x1, y-1) + s.at(table, x-1, y-1)
	}

	return sum(s.sumR), sum(s.sumG), sum(s.sumB), sum(s.sumLum)
}

/*****************************************************************************************************************/

// TotalLuminance returns the luminance sum over the whole image.
func (s *SummedAreaTable) TotalLuminance() float64 {
	_, _, _, lum := s.RegionSum(0, 0, s.Width, s.Height)
	return lum
}

/*****************************************************************************************************************/

// RowSolidAngle returns the solid-angle weight assigned to every pixel of
// row y in a W×H equirectangular image (spec §4.6 step 3).
func RowSolidAngle(y, height int) float64 {
	posY := (float64(y) + 1.0) / float64(height+1)
	return math.Cos(math.Pi * (posY - 0.5))
}

/*****************************************************************************************************************/
