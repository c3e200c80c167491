/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package cubeio

/*****************************************************************************************************************/

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/lumenforge/envprobe/pkg/miplevel"
	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

/*****************************************************************************************************************/

func TestEncodeDecodeRoundTripsWithinToneMapTolerance(t *testing.T) {
	dir := t.TempDir()

	level, err := miplevel.New(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	level.Fill(vec.V4(0.5, 0.25, 0.75, 1))

	sink := DirectorySink{Dir: dir, Prefix: "test"}
	if err := sink.Encode(level); err != nil {
		t.Fatal(err)
	}

	source := DirectorySource{Dir: dir, Prefix: "test"}
	decoded, err := source.Decode()
	if err != nil {
		t.Fatal(err)
	}

	c := decoded.NearestSample(vec.V3(0, 0, 1))
	if !almostEqual(c.X, 0.5, 0.02) || !almostEqual(c.Y, 0.25, 0.02) || !almostEqual(c.Z, 0.75, 0.02) {
		t.Errorf("round-tripped colour = %+v; want close to (0.5,0.25,0.75)", c)
	}
}

/*****************************************************************************************************************/

func TestLoadMipPyramidStopsAtFirstMissingLevel(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 3; i++ {
		levelDir := filepath.Join(dir, "level"+string(rune('0'+i)))
		level, err := miplevel.New(2, 3)
		if err != nil {
			t.Fatal(err)
		}
		level.Fill(vec.V4(0.1, 0.1, 0.1, 1))

		sink := DirectorySink{Dir: levelDir, Prefix: "m"}
		if err := sink.Encode(level); err != nil {
			t.Fatal(err)
		}
	}

	pattern := filepath.Join(dir, "level%d")
	levels, err := LoadMipPyramid(pattern, "m")
	if err != nil {
		t.Fatal(err)
	}

	if len(levels) != 3 {
		t.Errorf("len(levels) = %d; want 3", len(levels))
	}
}

/*****************************************************************************************************************/

func TestLoadMipPyramidErrorsWhenNoLevelsExist(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMipPyramid(filepath.Join(dir, "missing%d"), "m")
	if err == nil {
		t.Fatal("expected error for empty pyramid directory")
	}
}

/*****************************************************************************************************************/
