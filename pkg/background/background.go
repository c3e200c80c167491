/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package background implements the wide-cone background blur used to
// produce a low-frequency backdrop cubemap: uniform cone sampling with a
// Gaussian falloff weight, no cosine term, and no mip-LOD selection (it
// always reads the source's base level).
package background

/*****************************************************************************************************************/

import (
	"math"

	"github.com/lumenforge/envprobe/pkg/cubeface"
	"github.com/lumenforge/envprobe/pkg/cubemap"
	"github.com/lumenforge/envprobe/pkg/miplevel"
	"github.com/lumenforge/envprobe/pkg/parallel"
	"github.com/lumenforge/envprobe/pkg/samplecache"
	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

// tangentBasis builds the orthonormal (T,B) basis used to carry
// tangent-space cone samples into world space, identical in construction
// to the prefilter engine's basis.
func tangentBasis(n vec.Vector3) (t, b vec.Vector3) {
	up := vec.V3(0, 0, 1)
	if math.Abs(n.Z) >= 0.999 {
		up = vec.V3(1, 0, 0)
	}

	t = up.Cross(n).Normalize()
	b = n.Cross(t)

	return t, b
}

/*****************************************************************************************************************/

// Integrate evaluates the background-blur estimate at direction n: the
// rotation offset is fixed at zero (the reference implementation computes
// one and then discards it), and every rotation accumulates a plain
// colour average rather than an N·L-weighted one.
func Integrate(source *cubemap.Cubemap, set samplecache.ConeSet, n vec.Vector3, numRotations int) vec.Vector3 {
	t, b := tangentBasis(n)

	rad := 2 * math.Pi / float64(numRotations)

	accum := vec.V3(0, 0, 0)

	for _, s := range set.Samples {
		sum := vec.V3(0, 0, 0)

		for r := 0; r < numRotations; r++ {
			hRot := s.H
			if r > 0 {
				hRot = s.H.RotateAroundZ(float64(r) * rad)
			}

			world := t.Scale(hRot.X).Add(b.Scale(hRot.Y)).Add(n.Scale(hRot.Z))
			sum = sum.Add(source.Sample(world))
		}

		accum = accum.Add(sum.Scale(s.Weight))
	}

	denom := set.WeightSum * float64(numRotations)
	if denom == 0 {
		return vec.V3(0, 0, 0)
	}

	return accum.Scale(1.0 / denom)
}

/*****************************************************************************************************************/

// Params configures a background-blur pass.
type Params struct {
	Size         int
	NumSamples   int
	NumRotations int
	Radius       float64
	Fixup        bool
}

/*****************************************************************************************************************/

// Render produces a single-level blurred cubemap of the requested size
// from source. A radius of zero (or a sample count of one or less) falls
// back to a direct copy at matching resolution, mirroring the reference tool's shortcut
// for the degenerate case.
func Render(source *cubemap.Cubemap, params Params) (*miplevel.MipLevel, error) {
	dst, err := miplevel.New(params.Size, 3)
	if err != nil {
		return nil, err
	}

	radius := clamp(params.Radius, 0, 1)

	if radius == 0 || params.NumSamples <= 1 {
		nativeIdx := source.NativeLevelForSize(params.Size)
		if nativeIdx < 0 {
			nativeIdx = 0
		}
		native := source.Levels[nativeIdx]

		return dst, forEachFace(params.Size, params.Fixup, func(face cubeface.Face, n vec.Vector3, i, j int) {
			dst.SetTexel(face, i, j, native.NearestSample(n))
		})
	}

	set := samplecache.BuildConeSet(params.NumSamples, radius)

	numRotations := params.NumRotations
	if numRotations < 1 {
		numRotations = 1
	}

	err = forEachFace(params.Size, params.Fixup, func(face cubeface.Face, n vec.Vector3, i, j int) {
		dst.SetTexel(face, i, j, Integrate(source, set, n, numRotations))
	})

	return dst, err
}

/*****************************************************************************************************************/

func forEachFace(size int, fixup bool, fn func(face cubeface.Face, n vec.Vector3, i, j int)) error {
	for face := cubeface.Face(0); face < cubeface.NumFaces; face++ {
		face := face

		err := parallel.ForRows(size, func(rows parallel.RowRange) error {
			for j := rows.Start; j < rows.End; j++ {
				for i := 0; i < size; i++ {
					n := cubeface.TexelCoordToDirection(face, float64(i), float64(j), size, fixup)
					fn(face, n, i, j)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

/*****************************************************************************************************************/

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

/*****************************************************************************************************************/
