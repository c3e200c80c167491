/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package vec

/*****************************************************************************************************************/

import (
	"math"
	"testing"
)

/*****************************************************************************************************************/

// Helper function to compare floating-point numbers with tolerance
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

/*****************************************************************************************************************/

func TestNormalizeUnitLength(t *testing.T) {
	v := V3(3, 4, 0).Normalize()

	if !almostEqual(v.Length(), 1.0, 1e-12) {
		t.Errorf("Normalize() length = %f; want 1.0", v.Length())
	}
}

/*****************************************************************************************************************/

func TestCrossOrthogonal(t *testing.T) {
	x := V3(1, 0, 0)
	y := V3(0, 1, 0)

	z := x.Cross(y)

	if !almostEqual(z.Z, 1.0, 1e-12) || !almostEqual(z.X, 0, 1e-12) || !almostEqual(z.Y, 0, 1e-12) {
		t.Errorf("Cross(x,y) = %+v; want (0,0,1)", z)
	}
}

/*****************************************************************************************************************/

func TestRotateAroundZPreservesLength(t *testing.T) {
	v := V3(0.6, 0.2, 0.77)

	r := v.RotateAroundZ(1.234)

	lenBefore := math.Hypot(v.X, v.Y)
	lenAfter := math.Hypot(r.X, r.Y)

	if !almostEqual(lenBefore, lenAfter, 1e-9) {
		t.Errorf("RotateAroundZ changed the in-plane length: %f != %f", lenBefore, lenAfter)
	}

	if !almostEqual(r.Z, v.Z, 1e-12) {
		t.Errorf("RotateAroundZ changed Z: %f != %f", r.Z, v.Z)
	}
}

/*****************************************************************************************************************/

func TestRadicalInverseBase2Endpoints(t *testing.T) {
	if v := RadicalInverseBase2(0); v != 0 {
		t.Errorf("RadicalInverseBase2(0) = %f; want 0", v)
	}

	// 1 reversed across 32 bits is 0.5:
	if v := RadicalInverseBase2(1); !almostEqual(v, 0.5, 1e-12) {
		t.Errorf("RadicalInverseBase2(1) = %f; want 0.5", v)
	}
}

/*****************************************************************************************************************/

func TestHammersleyFirstCoordinate(t *testing.T) {
	x, _ := Hammersley(3, 8)

	if !almostEqual(x, 3.0/8.0, 1e-12) {
		t.Errorf("Hammersley(3,8).x = %f; want %f", x, 3.0/8.0)
	}
}

/*****************************************************************************************************************/

func TestLuminanceOfWhite(t *testing.T) {
	l := Luminance(1, 1, 1)

	if !almostEqual(l, 1.0, 1e-9) {
		t.Errorf("Luminance(1,1,1) = %f; want 1.0", l)
	}
}

/*****************************************************************************************************************/
