/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package miplevel

/*****************************************************************************************************************/

import (
	"testing"

	"github.com/lumenforge/envprobe/pkg/cubeface"
	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

func TestNewRejectsTooFewChannels(t *testing.T) {
	if _, err := New(4, 2); err == nil {
		t.Fatal("New(4, 2) should reject samplesPerPixel < 3")
	}
}

/*****************************************************************************************************************/

func TestFillAndNearestSample(t *testing.T) {
	m, err := New(8, 4)
	if err != nil {
		t.Fatal(err)
	}

	m.Fill(vec.V4(0.5, 0.25, 0.1, 1))

	d := cubeface.TexelCoordToDirection(cubeface.PositiveZ, 3, 3, 8, false)

	c := m.NearestSample(d)

	// Texels are stored as float32, so 0.1 reads back as float32(0.1):
	if c.X != 0.5 || c.Y != 0.25 || c.Z != float64(float32(0.1)) {
		t.Errorf("NearestSample after Fill = %+v; want (0.5, 0.25, 0.1)", c)
	}
}

/*****************************************************************************************************************/

func TestSetTexelThenNearestSample(t *testing.T) {
	m, err := New(4, 3)
	if err != nil {
		t.Fatal(err)
	}

	m.SetTexel(cubeface.PositiveX, 2, 1, vec.V3(1, 2, 3))

	d := cubeface.TexelCoordToDirection(cubeface.PositiveX, 2, 1, 4, false)

	got := m.NearestSample(d)

	if got.X != 1 || got.Y != 2 || got.Z != 3 {
		t.Errorf("NearestSample = %+v; want (1,2,3)", got)
	}
}

/*****************************************************************************************************************/
