/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package lightextract

/*****************************************************************************************************************/

import (
	"math"
	"testing"
)

/*****************************************************************************************************************/

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

/*****************************************************************************************************************/

func makeFlatImage(width, height int, r, g, b float32) []float32 {
	pixels := make([]float32, width*height*3)
	for i := 0; i < width*height; i++ {
		pixels[i*3+0] = r
		pixels[i*3+1] = g
		pixels[i*3+2] = b
	}
	return pixels
}

/*****************************************************************************************************************/

func TestBuildSATRegionSumMatchesDirectSum(t *testing.T) {
	width, height := 8, 6
	pixels := makeFlatImage(width, height, 0.2, 0.3, 0.4)

	// inject a bright spot:
	idx := (2*width + 3) * 3
	pixels[idx] = 5
	pixels[idx+1] = 5
	pixels[idx+2] = 5

	sat := BuildSAT(pixels, width, height, 3)

	r, g, b, _ := sat.RegionSum(2, 1, 3, 3)

	var wantR, wantG, wantB float64
	for y := 1; y < 4; y++ {
		for x := 2; x < 5; x++ {
			i := (y*width + x) * 3
			wantR += float64(pixels[i])
			wantG += float64(pixels[i+1])
			wantB += float64(pixels[i+2])
		}
	}

	if !almostEqual(r, wantR, 1e-6) || !almostEqual(g, wantG, 1e-6) || !almostEqual(b, wantB, 1e-6) {
		t.Errorf("RegionSum = (%f,%f,%f); want (%f,%f,%f)", r, g, b, wantR, wantG, wantB)
	}
}

/*****************************************************************************************************************/

func TestRowSolidAngleSymmetricAboutEquator(t *testing.T) {
	height := 64

	top := RowSolidAngle(0, height)
	bottom := RowSolidAngle(height-1, height)

	if !almostEqual(top, bottom, 1e-9) {
		t.Errorf("RowSolidAngle(0) = %f, RowSolidAngle(last) = %f; want equal by symmetry", top, bottom)
	}

	equator := RowSolidAngle(height/2-1, height)
	if equator < top {
		t.Errorf("equator weight %f < pole weight %f; want equator to dominate", equator, top)
	}
}

/*****************************************************************************************************************/

func TestExtractOnUniformImageProducesLowVarianceLights(t *testing.T) {
	width, height := 16, 8
	pixels := makeFlatImage(width, height, 0.5, 0.5, 0.5)

	lights, err := Extract(pixels, width, height, 3, Params{
		MaxLights:     4,
		MaxLuminance:  100,
		LengthSizeMax: 1.0,
		DegreeMerge:   5,
		SplitParams:   SplitParams{MinRegionSize: 8, MaxDepth: 3},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, l := range lights {
		if l.Sum < 0 {
			t.Errorf("light sum = %f; want >= 0", l.Sum)
		}
		if l.X < 0 || l.X > 1 || l.Y < 0 || l.Y > 1 {
			t.Errorf("light position (%f,%f) out of [0,1]", l.X, l.Y)
		}
		if !almostEqual(l.Variance, 0, 1e-9) {
			t.Errorf("light variance = %g; want ~0 on a uniform image", l.Variance)
		}
	}
}

/*****************************************************************************************************************/

func TestExtractRejectsNarrowChannelBuffer(t *testing.T) {
	_, err := Extract(make([]float32, 10), 5, 2, 1, Params{})
	if err != ErrInvalidChannelCount {
		t.Fatalf("err = %v; want ErrInvalidChannelCount", err)
	}
}

/*****************************************************************************************************************/

func TestExtractRespectsMaxLightsCount(t *testing.T) {
	width, height := 32, 16
	pixels := makeFlatImage(width, height, 0.1, 0.1, 0.1)

	// scatter a few bright spots to guarantee multiple distinct regions:
	for _, pos := range [][2]int{{2, 2}, {20, 4}, {8, 12}, {28, 10}} {
		idx := (pos[1]*width + pos[0]) * 3
		pixels[idx], pixels[idx+1], pixels[idx+2] = 8, 8, 8
	}

	lights, err := Extract(pixels, width, height, 3, Params{
		MaxLights:     2,
		MaxLuminance:  1000,
		LengthSizeMax: 1.0,
		DegreeMerge:   2,
		SplitParams:   SplitParams{MinRegionSize: 16, MaxDepth: 4},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(lights) > 2 {
		t.Errorf("len(lights) = %d; want <= 2", len(lights))
	}
}

/*****************************************************************************************************************/
