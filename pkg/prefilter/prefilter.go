/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package prefilter implements the specular pre-filter engine: the
// per-level roughness schedule, the importance-sampled GGX integration of
// a single output texel, and the parallel per-face dispatch across the
// mip pyramid.
package prefilter

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

// SentinelColour fills mip levels beyond the physically meaningful
// roughness range (levels above endMipMap), matching the original
// magenta debug colour used to make the cutoff visually obvious.
var SentinelColour = vec.V4(1, 0, 1, 1)

/*****************************************************************************************************************/

// LevelSpec describes a single output mip level of the prefiltered
// pyramid.
type LevelSpec struct {
	Index           int
	Size            int
	RoughnessLinear float64
	Meaningful      bool
}

/*****************************************************************************************************************/

// Schedule computes the level-by-level size/roughness schedule for a
// pyramid running from startSize down to endSize (spec §4.3). endSize
// must be a power of two no greater than startSize.
func Schedule(startSize, endSize int) []LevelSpec {
	totalMipMap := int(math.Log2(float64(startSize)))
	endMipMap := totalMipMap - int(math.Log2(float64(endSize)))

	levels := make([]LevelSpec, 0, totalMipMap+1)

	for i := 0; i <= totalMipMap; i++ {
		size := startSize >> i

		meaningful := i <= endMipMap

		var roughness float64
		if meaningful && endMipMap > 0 {
			r := float64(i) / float64(endMipMap)
			roughness = r * r
		}

		levels = append(levels, LevelSpec{
			Index:           i,
			Size:            size,
			RoughnessLinear: clamp(roughness, 0, 1),
			Meaningful:      meaningful,
		})
	}

	return levels
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

// tangentBasis builds the orthonormal (T,B,N) basis used to transform
// tangent-space samples into world space, following spec §4.3.
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

// rotationOffset computes the per-pixel rotation offset used to break
// sampling-pattern artefacts (spec §4.3 step 2).
func rotationOffset(n vec.Vector3, numRotations int) float64 {
	rad := 2 * math.Pi / float64(numRotations)
	gi := math.Abs(n.Z+n.X) * 128.0
	return rad * (0.5*math.Cos(math.Mod(gi, 2*math.Pi)) + 0.5)
}

/*****************************************************************************************************************/

// IntegrateGGX evaluates the specular prefilter estimate at direction n
// using the given precomputed GGX sample cache, reading from source
// (which may carry a mip pyramid for LOD-aware sampling).
func IntegrateGGX(source *cubemap.Cubemap, set samplecache.GGXSet, n vec.Vector3, numRotations int) vec.Vector3 {
	t, b := tangentBasis(n)

	useLOD := len(source.Levels) > 1

	rad := 2 * math.Pi / float64(numRotations)
	offset := rotationOffset(n, numRotations)

	accum := vec.V3(0, 0, 0)

	for _, s := range set.Samples {
		noL := s.L.Z

		for r := 0; r < numRotations; r++ {
			angle := offset + float64(r)*rad

			lRot := s.L
			if r > 0 {
				lRot = s.L.RotateAroundZ(angle)
			}

			world := t.Scale(lRot.X).Add(b.Scale(lRot.Y)).Add(n.Scale(lRot.Z))

			var colour vec.Vector3
			if useLOD {
				colour = source.SampleLOD(world, s.LOD)
			} else {
				colour = source.Sample(world)
			}

			accum = accum.Add(colour.Scale(noL))
		}
	}

	denom := set.WeightSum * float64(numRotations)
	if denom == 0 {
		return vec.V3(0, 0, 0)
	}

	return accum.Scale(1.0 / denom)
}

/*****************************************************************************************************************/

// PrefilterLevel fills a single output mip level by GGX-integrating
// every texel of every face against source, in parallel row ranges per
// face (spec §5).
func PrefilterLevel(dst *miplevel.MipLevel, source *cubemap.Cubemap, set samplecache.GGXSet, numRotations int, fixup bool) error {
	size := dst.Size

	for face := cubeface.Face(0); face < cubeface.NumFaces; face++ {
		face := face

		err := parallel.ForRows(size, func(rows parallel.RowRange) error {
			for j := rows.Start; j < rows.End; j++ {
				for i := 0; i < size; i++ {
					n := cubeface.TexelCoordToDirection(face, float64(i), float64(j), size, fixup)
					colour := IntegrateGGX(source, set, n, numRotations)
					dst.SetTexel(face, i, j, colour)
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

// CopyLevel fills dst by direct nearest-neighbour sampling of source at
// matching resolution (the roughness=0 case, which must reproduce the
// source bit-exactly).
func CopyLevel(dst *miplevel.MipLevel, source *cubemap.Cubemap, fixup bool) error {
	size := dst.Size

	nativeIdx := source.NativeLevelForSize(size)
	if nativeIdx < 0 {
		nativeIdx = 0
	}
	native := source.Levels[nativeIdx]

	for face := cubeface.Face(0); face < cubeface.NumFaces; face++ {
		face := face

		err := parallel.ForRows(size, func(rows parallel.RowRange) error {
			for j := rows.Start; j < rows.End; j++ {
				for i := 0; i < size; i++ {
					n := cubeface.TexelCoordToDirection(face, float64(i), float64(j), size, fixup)
					dst.SetTexel(face, i, j, native.NearestSample(n))
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

// Params configures a full prefilter pyramid run.
type Params struct {
	StartSize    int
	EndSize      int
	NumSamples   int
	NumRotations int
	Fixup        bool
}

/*****************************************************************************************************************/

// PrefilterPyramid builds the full pyramid of output cubemaps described
// by Schedule(params.StartSize, params.EndSize), one MipLevel per level,
// returned lowest-index-first (highest resolution first).
func PrefilterPyramid(source *cubemap.Cubemap, params Params) ([]*miplevel.MipLevel, error) {
	if params.NumRotations < 1 {
		params.NumRotations = 1
	}

	schedule := Schedule(params.StartSize, params.EndSize)

	outputs := make([]*miplevel.MipLevel, len(schedule))

	for _, lv := range schedule {
		dst, err := miplevel.New(lv.Size, 3)
		if err != nil {
			return nil, err
		}

		switch {
		case !lv.Meaningful:
			dst.Fill(SentinelColour)

		case lv.Index == 0 || lv.RoughnessLinear == 0:
			if err := CopyLevel(dst, source, params.Fixup); err != nil {
				return nil, err
			}

		default:
			numSamples := params.NumSamples
			if numSamples < 1 {
				numSamples = 1
			}

			maxLOD := float64(len(source.Levels) - 1)
			set := samplecache.BuildGGXSet(numSamples, lv.RoughnessLinear, source.Size(), maxLOD)

			if err := PrefilterLevel(dst, source, set, params.NumRotations, params.Fixup); err != nil {
				return nil, err
			}
		}

		outputs[lv.Index] = dst
	}

	return outputs, nil
}

/*****************************************************************************************************************/
