/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package lightextract

/*****************************************************************************************************************/

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

// Params configures a full light-extraction run.
type Params struct {
	MaxLights     int
	MaxLuminance  float64
	AreaSizeMax   float64
	LengthSizeMax float64
	DegreeMerge   float64
	SplitParams   SplitParams
}

/*****************************************************************************************************************/

// Extract runs the whole pipeline (spec §4.6) over an interleaved
// RGB(A) equirectangular buffer: SAT construction, recursive region
// split, region-to-light promotion, coarse merge, select/shrink, and
// final sort-and-truncate.
func Extract(pixels []float32, width, height, stride int, params Params) ([]Light, error) {
	if stride < 3 {
		return nil, ErrInvalidChannelCount
	}

	sat := BuildSAT(pixels, width, height, stride)

	lum := make([]float32, width*height)
	for i := 0; i < width*height; i++ {
		idx := i * stride
		lum[i] = float32(vec.Luminance(float64(pixels[idx]), float64(pixels[idx+1]), float64(pixels[idx+2])))
	}

	regions := SplitRegions(sat, lum, params.SplitParams)

	lights := CreateLightsFromRegions(regions, pixels, width, height, stride, sat, params.MaxLuminance)

	merged := CoarseMerge(lights, params.AreaSizeMax, params.LengthSizeMax, params.DegreeMerge)
	selected := SelectShrink(merged, params.DegreeMerge)

	sort.Sort(byCriteriaDescending(selected))

	if params.MaxLights > 0 && len(selected) > params.MaxLights {
		selected = selected[:params.MaxLights]
	}

	return selected, nil
}

/*****************************************************************************************************************/

// CreateLightsFromRegions promotes every region into a Light, computing
// its solid-angle-weighted sum and spectral averages directly from the
// pixel buffer (spec §4.6 step 3; the SAT is used only for the region
// split, not the final sum, to avoid the precision loss a table
// subtraction introduces over a small number of high-dynamic-range
// pixels).
func CreateLightsFromRegions(regions []Region, pixels []float32, width, height, stride int, sat *SummedAreaTable, maxLuminance float64) []Light {
	weightAccum := sat.WeightAccumulation()

	normalization := (4 * math.Pi) / (float64(width) * float64(height))

	lights := make([]Light, 0, len(regions))

	for _, r := range regions {
		if r.W <= 0 || r.H <= 0 {
			continue
		}

		l := Light{
			X: float64(r.X), Y: float64(r.Y), W: float64(r.W), H: float64(r.H),
			AreaSize: r.AreaSize(),
		}

		l.CentroidX = float64(r.X) + float64(r.W)/2
		l.CentroidY = float64(r.Y) + float64(r.H)/2

		cy := int(l.CentroidY)
		cx := int(l.CentroidX)
		if cy >= height {
			cy = height - 1
		}
		if cx >= width {
			cx = width - 1
		}
		ci := (cy*width + cx) * stride
		l.LuminancePixel = vec.Luminance(float64(pixels[ci]), float64(pixels[ci+1]), float64(pixels[ci+2])) *
			RowSolidAngle(cy, height) * normalization

		var rSum, gSum, bSum, lumSum float64

		pixelCount := r.W * r.H
		lumSamples := make([]float64, 0, pixelCount)
		weightSamples := make([]float64, 0, pixelCount)

		for y1 := r.Y; y1 < r.Y+r.H; y1++ {
			solidAngle := RowSolidAngle(y1, height) * normalization

			for x1 := r.X; x1 < r.X+r.W; x1++ {
				idx := (y1*width + x1) * stride
				rr := float64(pixels[idx])
				gg := float64(pixels[idx+1])
				bb := float64(pixels[idx+2])

				lum := vec.Luminance(rr, gg, bb)

				lumSum += lum * solidAngle
				rSum += rr
				gSum += gg
				bSum += bb

				lumSamples = append(lumSamples, lum)
				weightSamples = append(weightSamples, solidAngle)
			}
		}

		if weightAccum > 0 {
			lumSum *= (4 * math.Pi) / weightAccum
		}

		l.Sum = lumSum

		if l.AreaSize > 0 {
			l.RAverage = rSum / l.AreaSize
			l.GAverage = gSum / l.AreaSize
			l.BAverage = bSum / l.AreaSize
			l.LumAverage = lumSum / l.AreaSize

			// Solid-angle-weighted variance of per-pixel luminance within the
			// region, rather than the reference tool's E[x]² computed from
			// the region sum (which conflates the sum's square with a sum of
			// squares and produces a nonsensical, often negative, value).
			_, l.Variance = stat.MeanVariance(lumSamples, weightSamples)
		}

		// normalise geometry into [0,1]:
		l.X /= float64(width)
		l.Y /= float64(height)
		l.W /= float64(width)
		l.H /= float64(height)
		l.CentroidX /= float64(width)
		l.CentroidY /= float64(height)
		l.AreaSize = l.W * l.H

		l.Error = l.Sum > maxLuminance
		l.SortCriteria = l.AreaSize

		lights = append(lights, l)
	}

	return lights
}

/*****************************************************************************************************************/
