/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package lightextract

/*****************************************************************************************************************/

import (
	stats "github.com/observerly/iris/pkg/statistics"
)

/*****************************************************************************************************************/

// Region is an axis-aligned rectangle of the source image in integer pixel
// coordinates.
type Region struct {
	X, Y, W, H int
}

/*****************************************************************************************************************/

// AreaSize returns the region's pixel area.
func (r Region) AreaSize() float64 {
	return float64(r.W) * float64(r.H)
}

/*****************************************************************************************************************/

// SplitParams bounds the recursive region split.
type SplitParams struct {
	MinRegionSize int
	MaxDepth      int
}

/*****************************************************************************************************************/

// SplitRegions recursively halves the image into rectangular regions of
// comparable summed luminance, using a robust noise floor computed over
// the whole luminance buffer to decide when a region is flat enough to
// stop subdividing (an envprobe-specific reuse of the reference solver's
// sigma-clipped statistics pass, substituting the luminance buffer for
// pixel ADU counts).
func SplitRegions(sat *SummedAreaTable, lum []float32, params SplitParams) []Region {
	if params.MinRegionSize < 1 {
		params.MinRegionSize = 1
	}
	if params.MaxDepth < 1 {
		params.MaxDepth = 1
	}

	_, noiseFloor := stats.NewStats(lum, 16, sat.Width).FastApproxSigmaClippedMedianAndQn()

	var regions []Region

	var split func(r Region, depth int)
	split = func(r Region, depth int) {
		if r.W <= 0 || r.H <= 0 {
			return
		}

		area := r.W * r.H
		if depth >= params.MaxDepth || area <= params.MinRegionSize {
			regions = append(regions, r)
			return
		}

		_, _, _, lumSum := sat.RegionSum(r.X, r.Y, r.W, r.H)
		mean := lumSum / float64(area)

		// A region whose total content is within noise of a flat field
		// contributes negligible light; stop subdividing it.
		if noiseFloor > 0 && mean <= noiseFloor {
			regions = append(regions, r)
			return
		}

		if r.W >= r.H {
			mid := splitPoint(sat, r, true)
			if mid <= r.X || mid >= r.X+r.W {
				regions = append(regions, r)
				return
			}
			split(Region{r.X, r.Y, mid - r.X, r.H}, depth+1)
			split(Region{mid, r.Y, r.X + r.W - mid, r.H}, depth+1)
		} else {
			mid := splitPoint(sat, r, false)
			if mid <= r.Y || mid >= r.Y+r.H {
				regions = append(regions, r)
				return
			}
			split(Region{r.X, r.Y, r.W, mid - r.Y}, depth+1)
			split(Region{r.X, mid, r.W, r.Y + r.H - mid}, depth+1)
		}
	}

	split(Region{0, 0, sat.Width, sat.Height}, 0)

	return regions
}

/*****************************************************************************************************************/

// splitPoint finds the coordinate along the region's longer axis that
// divides its summed luminance as evenly as possible.
func splitPoint(sat *SummedAreaTable, r Region, horizontal bool) int {
	_, _, _, total := sat.RegionSum(r.X, r.Y, r.W, r.H)
	half := total / 2

	if horizontal {
		best := r.X + r.W/2
		for x := r.X + 1; x < r.X+r.W; x++ {
			_, _, _, lum := sat.RegionSum(r.X, r.Y, x-r.X, r.H)
			if lum >= half {
				best = x
				break
			}
		}
		return best
	}

	best := r.Y + r.H/2
	for y := r.Y + 1; y < r.Y+r.H; y++ {
		_, _, _, lum := sat.RegionSum(r.X, r.Y, r.W, y-r.Y)
		if lum >= half {
			best = y
			break
		}
	}
	return best
}

/*****************************************************************************************************************/
