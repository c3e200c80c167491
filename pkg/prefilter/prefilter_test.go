/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package prefilter

/*****************************************************************************************************************/

import (
	"math"
	"testing"

	"github.com/lumenforge/envprobe/pkg/cubeface"
	"github.com/lumenforge/envprobe/pkg/cubemap"
	"github.com/lumenforge/envprobe/pkg/miplevel"
	"github.com/lumenforge/envprobe/pkg/samplecache"
	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

/*****************************************************************************************************************/

func TestScheduleLevelZeroIsZeroRoughness(t *testing.T) {
	schedule := Schedule(64, 4)

	if schedule[0].RoughnessLinear != 0 {
		t.Errorf("level 0 RoughnessLinear = %f; want 0", schedule[0].RoughnessLinear)
	}
	if !schedule[0].Meaningful {
		t.Errorf("level 0 Meaningful = false; want true")
	}
}

/*****************************************************************************************************************/

func TestScheduleMarksLevelsBeyondEndSizeNotMeaningful(t *testing.T) {
	schedule := Schedule(64, 16)

	totalMipMap := int(math.Log2(64))
	endMipMap := totalMipMap - int(math.Log2(16))

	for _, lv := range schedule {
		want := lv.Index <= endMipMap
		if lv.Meaningful != want {
			t.Errorf("level %d Meaningful = %v; want %v", lv.Index, lv.Meaningful, want)
		}
	}

	last := schedule[len(schedule)-1]
	if last.Size != 1 {
		t.Errorf("last level Size = %d; want 1", last.Size)
	}
}

/*****************************************************************************************************************/

func TestScheduleRoughnessIncreasesMonotonically(t *testing.T) {
	schedule := Schedule(64, 4)

	prev := -1.0
	for _, lv := range schedule {
		if !lv.Meaningful {
			continue
		}
		if lv.RoughnessLinear < prev {
			t.Errorf("level %d RoughnessLinear = %f; want >= previous %f", lv.Index, lv.RoughnessLinear, prev)
		}
		prev = lv.RoughnessLinear
	}
}

/*****************************************************************************************************************/

func TestCopyLevelReproducesSource(t *testing.T) {
	source, err := cubemap.NewSingleLevel(8, 3)
	if err != nil {
		t.Fatal(err)
	}
	source.Fill(vec.V4(0.25, 0.5, 0.75, 1))

	dst, err := miplevel.New(8, 3)
	if err != nil {
		t.Fatal(err)
	}

	if err := CopyLevel(dst, source, false); err != nil {
		t.Fatal(err)
	}

	for face := cubeface.Face(0); face < cubeface.NumFaces; face++ {
		n := cubeface.TexelCoordToDirection(face, 3, 4, 8, false)
		c := dst.NearestSample(n)

		if !almostEqual(c.X, 0.25, 1e-3) || !almostEqual(c.Y, 0.5, 1e-3) || !almostEqual(c.Z, 0.75, 1e-3) {
			t.Errorf("face %d copy sample = %+v; want (0.25,0.5,0.75)", face, c)
		}
	}
}

/*****************************************************************************************************************/

func TestIntegrateGGXOnConstantEnvironmentPreservesMean(t *testing.T) {
	source, err := cubemap.NewSingleLevel(16, 3)
	if err != nil {
		t.Fatal(err)
	}
	source.Fill(vec.V4(1, 1, 1, 1))

	set := samplecache.BuildGGXSet(256, 0.5, 16, 0)

	n := vec.V3(0, 0, 1)
	c := IntegrateGGX(source, set, n, 4)

	if !almostEqual(c.X, 1, 0.05) || !almostEqual(c.Y, 1, 0.05) || !almostEqual(c.Z, 1, 0.05) {
		t.Errorf("constant-environment integral = %+v; want close to (1,1,1)", c)
	}
}

/*****************************************************************************************************************/

func TestRotationOffsetIsBoundedByStep(t *testing.T) {
	rad := 2 * math.Pi / 4

	for _, n := range []vec.Vector3{vec.V3(0, 0, 1), vec.V3(1, 0, 0), vec.V3(0.5, 0.5, 0.707)} {
		off := rotationOffset(n, 4)
		if off < 0 || off > rad {
			t.Errorf("rotationOffset(%+v) = %f; want within [0, %f]", n, off, rad)
		}
	}
}

/*****************************************************************************************************************/

func TestTangentBasisIsOrthonormal(t *testing.T) {
	for _, n := range []vec.Vector3{vec.V3(0, 0, 1), vec.V3(0, 0, -1), vec.V3(1, 0, 0), vec.V3(0.577, 0.577, 0.577)} {
		tangent, bitangent := tangentBasis(n)

		if !almostEqual(tangent.Dot(n), 0, 1e-6) {
			t.Errorf("tangent·n = %f; want 0 for n=%+v", tangent.Dot(n), n)
		}
		if !almostEqual(bitangent.Dot(n), 0, 1e-6) {
			t.Errorf("bitangent·n = %f; want 0 for n=%+v", bitangent.Dot(n), n)
		}
		if !almostEqual(tangent.Dot(bitangent), 0, 1e-6) {
			t.Errorf("tangent·bitangent = %f; want 0 for n=%+v", tangent.Dot(bitangent), n)
		}
		if !almostEqual(tangent.Length(), 1, 1e-6) {
			t.Errorf("|tangent| = %f; want 1 for n=%+v", tangent.Length(), n)
		}
	}
}

/*****************************************************************************************************************/

func TestPrefilterPyramidFillsSentinelBeyondEndSize(t *testing.T) {
	source, err := cubemap.NewSingleLevel(8, 3)
	if err != nil {
		t.Fatal(err)
	}
	source.Fill(vec.V4(0.1, 0.2, 0.3, 1))

	outputs, err := PrefilterPyramid(source, Params{StartSize: 8, EndSize: 4, NumSamples: 16, NumRotations: 2})
	if err != nil {
		t.Fatal(err)
	}

	schedule := Schedule(8, 4)

	for _, lv := range schedule {
		if lv.Meaningful {
			continue
		}
		lvl := outputs[lv.Index]
		c := lvl.NearestSample(vec.V3(0, 0, 1))

		if !almostEqual(c.X, SentinelColour.X, 1e-3) || !almostEqual(c.Y, SentinelColour.Y, 1e-3) {
			t.Errorf("level %d sentinel sample = %+v; want %+v", lv.Index, c, SentinelColour)
		}
	}
}

/*****************************************************************************************************************/
