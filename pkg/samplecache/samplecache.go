/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package samplecache precomputes the two importance-sampling tables used
// by the prefilter/background engines: a GGX half-vector sample set for
// the specular lobe, and a uniform sample set over a cone for the
// background blur. Both are plain values rebuilt once per roughness
// level and threaded explicitly into the integrator rather than kept as
// process-wide state (see DESIGN.md's note on the source's globals).
package samplecache

/*****************************************************************************************************************/

import (
	"math"

	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

// GGXSample is one precomputed tangent-space reflected-light sample plus
// the mip-level selector it should read from.
type GGXSample struct {
	L   vec.Vector3
	LOD float64
}

/*****************************************************************************************************************/

// GGXSet is the precomputed GGX sample table for a single roughness
// level, keyed only by (numSamples, roughnessLinear, sourceSize).
type GGXSet struct {
	Samples   []GGXSample
	WeightSum float64
}

/*****************************************************************************************************************/

// ggxDistribution evaluates the Trowbridge-Reitz (GGX) normal
// distribution function at the given half-vector cosine, for shape
// parameter alpha = roughnessLinear².
func ggxDistribution(alpha, cosTheta float64) float64 {
	d := cosTheta*cosTheta*(alpha*alpha-1) + 1
	return (alpha * alpha) / (math.Pi * d * d)
}

/*****************************************************************************************************************/

// BuildGGXSet constructs the GGX sample cache for roughnessLinear ∈
// [0,1], importance-sampling numSamples half-vectors via the Hammersley
// sequence and solving the GGX half-vector equation (spec §4.3). maxLOD
// is the highest valid mip index of the source cubemap the prefilter will
// read from.
func BuildGGXSet(numSamples int, roughnessLinear float64, sourceSize int, maxLOD float64) GGXSet {
	alpha := roughnessLinear * roughnessLinear

	samples := make([]GGXSample, 0, numSamples)
	weightSum := 0.0

	omegaP := 4 * math.Pi / (6 * float64(sourceSize) * float64(sourceSize))

	for i := 0; i < numSamples; i++ {
		xi0, xi1 := vec.Hammersley(uint32(i), uint32(numSamples))

		phi := 2 * math.Pi * xi0
		cosTheta := math.Sqrt((1 - xi1) / (1 + (alpha*alpha-1)*xi1))
		sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

		sp, cp := math.Sincos(phi)
		h := vec.V3(sinTheta*cp, sinTheta*sp, cosTheta)

		// L = reflect(Z, H) = 2*(H·Z)*H - Z, with Z = (0,0,1):
		l := h.Scale(2 * h.Z).Sub(vec.V3(0, 0, 1))

		pdfH := ggxDistribution(alpha, cosTheta) * cosTheta
		hDotZ := h.Z
		if hDotZ < 1e-7 {
			hDotZ = 1e-7
		}
		pdfL := pdfH / (4 * hDotZ)

		var lod float64
		if pdfL > 0 {
			omegaS := 1.0 / (float64(numSamples) * pdfL)
			lod = 0.5 * math.Log2(omegaS/omegaP)
		}

		lod = clamp(lod, 0, maxLOD)

		samples = append(samples, GGXSample{L: l, LOD: lod})
		weightSum += l.Z
	}

	return GGXSet{Samples: samples, WeightSum: weightSum}
}

/*****************************************************************************************************************/

// ConeSample is one precomputed tangent-space cone sample and its
// Gaussian-falloff weight.
type ConeSample struct {
	H      vec.Vector3
	Weight float64
}

/*****************************************************************************************************************/

// ConeSet is the precomputed cone sample table for a single blur radius.
type ConeSet struct {
	Samples   []ConeSample
	WeightSum float64
}

/*****************************************************************************************************************/

// BuildConeSet constructs the cone sample cache for half-angle radius ∈
// [0,1] (interpreted as a fraction of the hemisphere), importance
// sampling numSamples directions uniformly over the cone and weighting
// each by a Gaussian falloff with sigma = radius/3.
func BuildConeSet(numSamples int, radius float64) ConeSet {
	sigma := radius / 3.0
	sigmaSqr := sigma * sigma

	samples := make([]ConeSample, 0, numSamples)
	weightSum := 0.0

	cosRadius := math.Cos(radius * math.Pi / 2)

	for i := 0; i < numSamples; i++ {
		xi0, xi1 := vec.Hammersley(uint32(i), uint32(numSamples))

		phi := 2 * math.Pi * xi0
		cosTheta := 1 - xi1*(1-cosRadius)
		sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

		theta := math.Acos(cosTheta)

		sp, cp := math.Sincos(phi)
		h := vec.V3(sinTheta*cp, sinTheta*sp, cosTheta)

		var w float64
		if sigmaSqr > 0 {
			w = math.Exp(-(theta * theta) / (2 * sigmaSqr))
		} else {
			w = 1
		}

		samples = append(samples, ConeSample{H: h, Weight: w})
		weightSum += w
	}

	return ConeSet{Samples: samples, WeightSum: weightSum}
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
