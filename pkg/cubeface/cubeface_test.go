/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package cubeface

/*****************************************************************************************************************/

import (
	"math"
	"testing"
)

/*****************************************************************************************************************/

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

/*****************************************************************************************************************/

func TestTexelCoordToDirectionIsUnit(t *testing.T) {
	size := 32

	for face := PositiveX; face <= NegativeZ; face++ {
		for u := 0; u < size; u++ {
			for v := 0; v < size; v++ {
				d := TexelCoordToDirection(face, float64(u), float64(v), size, false)

				if !almostEqual(d.Length(), 1.0, 1e-6) {
					t.Fatalf("face %d (%d,%d): length = %f; want 1.0", face, u, v, d.Length())
				}
			}
		}
	}
}

/*****************************************************************************************************************/

func TestFaceCentreDirections(t *testing.T) {
	size := 4

	cases := []struct {
		face Face
		want [3]float64
	}{
		{PositiveX, [3]float64{1, 0, 0}},
		{NegativeX, [3]float64{-1, 0, 0}},
		{PositiveY, [3]float64{0, 1, 0}},
		{NegativeY, [3]float64{0, -1, 0}},
		{PositiveZ, [3]float64{0, 0, 1}},
		{NegativeZ, [3]float64{0, 0, -1}},
	}

	// The centre of the face falls exactly between texel centres for an
	// even-sized face; the continuous coordinate size/2-0.5 lands on it:
	for _, c := range cases {
		mid := float64(size)/2 - 0.5

		d := TexelCoordToDirection(c.face, mid, mid, size, false)

		if !almostEqual(d.X, c.want[0], 0.3) || !almostEqual(d.Y, c.want[1], 0.3) || !almostEqual(d.Z, c.want[2], 0.3) {
			t.Errorf("face %d centre = %+v; want close to %+v", c.face, d, c.want)
		}
	}
}

/*****************************************************************************************************************/

func TestTexelSolidAngleSumsToFourPi(t *testing.T) {
	for _, size := range []int{8, 16, 64} {
		sum := 0.0

		for face := 0; face < NumFaces; face++ {
			for v := 0; v < size; v++ {
				for u := 0; u < size; u++ {
					sum += TexelSolidAngle(float64(u), float64(v), size)
				}
			}
		}

		want := 4 * math.Pi
		if math.Abs(sum-want)/want > 1e-4 {
			t.Errorf("size=%d: sum of solid angles = %f; want %f ± 1e-4 relative", size, sum, want)
		}
	}
}

/*****************************************************************************************************************/

func TestDirectionToTexelRoundTrip(t *testing.T) {
	size := 64

	for face := PositiveX; face <= NegativeZ; face++ {
		for _, coord := range [][2]float64{{3, 7}, {31, 31}, {0, 0}, {63, 20}} {
			d := TexelCoordToDirection(face, coord[0], coord[1], size, false)

			gotFace, u, v := DirectionToTexel(d, size)

			if gotFace != face {
				t.Fatalf("DirectionToTexel face = %d; want %d (input u=%.1f v=%.1f)", gotFace, face, coord[0], coord[1])
			}

			d2 := TexelCoordToDirection(gotFace, u-0.5, v-0.5, size, false)

			if d2.Sub(d).Length() > 2.0/float64(size) {
				t.Errorf("round trip drifted: got direction %+v, reconstructed %+v", d, d2)
			}
		}
	}
}

/*****************************************************************************************************************/

func TestEdgeFixupCornersAreDiagonal(t *testing.T) {
	size := 16
	inv := 1.0 / math.Sqrt(3)

	for face := PositiveX; face <= NegativeZ; face++ {
		corners := [][2]float64{{0, 0}, {float64(size - 1), 0}, {0, float64(size - 1)}, {float64(size - 1), float64(size - 1)}}

		for _, c := range corners {
			d := TexelCoordToDirection(face, c[0], c[1], size, true)

			if !almostEqual(math.Abs(d.X), inv, 1e-6) || !almostEqual(math.Abs(d.Y), inv, 1e-6) || !almostEqual(math.Abs(d.Z), inv, 1e-6) {
				t.Errorf("face %d corner %v = %+v; want components ±1/sqrt(3)", face, c, d)
			}
		}
	}
}

/*****************************************************************************************************************/
