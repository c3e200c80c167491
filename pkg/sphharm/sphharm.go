/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package sphharm projects an environment cubemap onto a fifth-order real
// spherical harmonic basis (25 coefficients) and reconstructs a diffuse
// irradiance cubemap back from those coefficients.
package sphharm

/*****************************************************************************************************************/

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/lumenforge/envprobe/pkg/cubeface"
	"github.com/lumenforge/envprobe/pkg/cubemap"
	"github.com/lumenforge/envprobe/pkg/parallel"
	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

// Order is the number of spherical harmonic bands evaluated (bands 0..4).
const Order = 5

// NumCoefficients is the number of real SH coefficients for Order bands
// (Order²).
const NumCoefficients = Order * Order

/*****************************************************************************************************************/

// bandFactor holds the Sloan re-scaling factor applied to each
// coefficient at reconstruction time: band 0 is unscaled, band 1 is
// scaled by 2/3, band 2 by 1/4, band 3 (indices 9..15) is zeroed out
// entirely, and band 4 is scaled by -1/24.
var bandFactor = [NumCoefficients]float64{
	1.0, 2.0 / 3.0, 2.0 / 3.0, 2.0 / 3.0, 1.0 / 4.0,
	1.0 / 4.0, 1.0 / 4.0, 1.0 / 4.0, 1.0 / 4.0, 0.0,
	0.0, 0.0, 0.0, 0.0, 0.0,
	0.0,
	-1.0 / 24.0, -1.0 / 24.0, -1.0 / 24.0, -1.0 / 24.0, -1.0 / 24.0,
	-1.0 / 24.0, -1.0 / 24.0, -1.0 / 24.0, -1.0 / 24.0,
}

/*****************************************************************************************************************/

// EvalBasis evaluates all NumCoefficients real SH basis functions at the
// given unit direction.
func EvalBasis(dir vec.Vector3) [NumCoefficients]float64 {
	var res [NumCoefficients]float64

	sqrtPi := math.Sqrt(math.Pi)

	xx, yy, zz := dir.X, dir.Y, dir.Z

	var x, y, z [Order + 1]float64
	x[0], y[0], z[0] = 1, 1, 1
	for i := 1; i < Order+1; i++ {
		x[i] = xx * x[i-1]
		y[i] = yy * y[i-1]
		z[i] = zz * z[i-1]
	}

	res[0] = 1 / (2 * sqrtPi)

	res[1] = -(math.Sqrt(3/math.Pi) * yy) / 2
	res[2] = (math.Sqrt(3/math.Pi) * zz) / 2
	res[3] = -(math.Sqrt(3/math.Pi) * xx) / 2

	res[4] = (math.Sqrt(15/math.Pi) * xx * yy) / 2
	res[5] = -(math.Sqrt(15/math.Pi) * yy * zz) / 2
	res[6] = (math.Sqrt(5/math.Pi) * (-1 + 3*z[2])) / 4
	res[7] = -(math.Sqrt(15/math.Pi) * xx * zz) / 2
	res[8] = math.Sqrt(15/math.Pi) * (x[2] - y[2]) / 4

	res[9] = (math.Sqrt(35/(2*math.Pi)) * (-3*x[2]*yy + y[3])) / 4
	res[10] = (math.Sqrt(105/math.Pi) * xx * yy * zz) / 2
	res[11] = -(math.Sqrt(21/(2*math.Pi)) * yy * (-1 + 5*z[2])) / 4
	res[12] = (math.Sqrt(7/math.Pi) * zz * (-3 + 5*z[2])) / 4
	res[13] = -(math.Sqrt(21/(2*math.Pi)) * xx * (-1 + 5*z[2])) / 4
	res[14] = (math.Sqrt(105/math.Pi) * (x[2] - y[2]) * zz) / 4
	res[15] = -(math.Sqrt(35/(2*math.Pi)) * (x[3] - 3*xx*y[2])) / 4

	res[16] = (3 * math.Sqrt(35/math.Pi) * xx * yy * (x[2] - y[2])) / 4
	res[17] = (-3 * math.Sqrt(35/(2*math.Pi)) * (3*x[2]*yy - y[3]) * zz) / 4
	res[18] = (3 * math.Sqrt(5/math.Pi) * xx * yy * (-1 + 7*z[2])) / 4
	res[19] = (-3 * math.Sqrt(5/(2*math.Pi)) * yy * zz * (-3 + 7*z[2])) / 4
	res[20] = (3 * (3 - 30*z[2] + 35*z[4])) / (16 * sqrtPi)
	res[21] = (-3 * math.Sqrt(5/(2*math.Pi)) * xx * zz * (-3 + 7*z[2])) / 4
	res[22] = (3 * math.Sqrt(5/math.Pi) * (x[2] - y[2]) * (-1 + 7*z[2])) / 8
	res[23] = (-3 * math.Sqrt(35/(2*math.Pi)) * (x[3] - 3*xx*y[2]) * zz) / 4
	res[24] = (3 * math.Sqrt(35/math.Pi) * (x[4] - 6*x[2]*y[2] + y[4])) / 16

	return res
}

/*****************************************************************************************************************/

// Coefficients holds the raw (un-band-scaled) projection coefficients for
// each colour channel, accumulated in 64-bit precision.
type Coefficients struct {
	R, G, B [NumCoefficients]float64
}

/*****************************************************************************************************************/

// Scaled returns the per-channel coefficients with the Sloan band factor
// already folded in, the form used for the emitted coefficient listing.
// Reconstruct takes raw coefficients and applies the same factors itself.
func (c Coefficients) Scaled() Coefficients {
	var out Coefficients
	for i := 0; i < NumCoefficients; i++ {
		out.R[i] = c.R[i] * bandFactor[i]
		out.G[i] = c.G[i] * bandFactor[i]
		out.B[i] = c.B[i] * bandFactor[i]
	}
	return out
}

/*****************************************************************************************************************/

// Project integrates source (its base level) against the SH basis,
// solid-angle-weighted when useSolidAngleWeighting is set, otherwise
// weighting every texel equally (spec §4.4). Each face's rows are
// partitioned across workers via pkg/parallel; every worker reduces its
// own row range with floats.Sum before folding its partial into the
// shared total under a mutex, in the order the workers finish.
func Project(source *cubemap.Cubemap, useSolidAngleWeighting, fixup bool) (Coefficients, error) {
	size := source.Size()

	normalizer, err := cubemap.BuildNormalizerSolidAngleCubemap(size, fixup)
	if err != nil {
		return Coefficients{}, fmt.Errorf("sphharm: %w", err)
	}

	level := source.Levels[0]
	stride := level.SamplesPerPixel

	var mu sync.Mutex
	var coeffs Coefficients
	var weightAccum float64

	for face := cubeface.Face(0); face < cubeface.NumFaces; face++ {
		data := level.Faces[face]

		err := parallel.ForRows(size, func(rows parallel.RowRange) error {
			rowCount := rows.End - rows.Start

			var rTerms, gTerms, bTerms [NumCoefficients][]float64
			for i := range rTerms {
				rTerms[i] = make([]float64, 0, rowCount*size)
				gTerms[i] = make([]float64, 0, rowCount*size)
				bTerms[i] = make([]float64, 0, rowCount*size)
			}
			localWeights := make([]float64, 0, rowCount*size)

			for v := rows.Start; v < rows.End; v++ {
				for u := 0; u < size; u++ {
					dir, solidAngle := normalizer.DirectionAndSolidAngle(face, u, v)

					weight := 1.0
					if useSolidAngleWeighting {
						weight = solidAngle
					}

					basis := EvalBasis(dir)

					idx := (v*size + u) * stride
					r := float64(data[idx+0])
					g := float64(data[idx+1])
					b := float64(data[idx+2])

					for i := 0; i < NumCoefficients; i++ {
						rTerms[i] = append(rTerms[i], r*basis[i]*weight)
						gTerms[i] = append(gTerms[i], g*basis[i]*weight)
						bTerms[i] = append(bTerms[i], b*basis[i]*weight)
					}

					localWeights = append(localWeights, weight)
				}
			}

			var partial Coefficients
			for i := 0; i < NumCoefficients; i++ {
				partial.R[i] = floats.Sum(rTerms[i])
				partial.G[i] = floats.Sum(gTerms[i])
				partial.B[i] = floats.Sum(bTerms[i])
			}
			partialWeight := floats.Sum(localWeights)

			mu.Lock()
			for i := 0; i < NumCoefficients; i++ {
				coeffs.R[i] += partial.R[i]
				coeffs.G[i] += partial.G[i]
				coeffs.B[i] += partial.B[i]
			}
			weightAccum += partialWeight
			mu.Unlock()

			return nil
		})
		if err != nil {
			return Coefficients{}, fmt.Errorf("sphharm: %w", err)
		}
	}

	if weightAccum > 0 {
		normalization := 4 * math.Pi / weightAccum
		for i := 0; i < NumCoefficients; i++ {
			coeffs.R[i] *= normalization
			coeffs.G[i] *= normalization
			coeffs.B[i] *= normalization
		}
	}

	return coeffs, nil
}

/*****************************************************************************************************************/

// Reconstruct evaluates the irradiance encoded by coeffs at direction dir.
func Reconstruct(coeffs Coefficients, dir vec.Vector3) vec.Vector3 {
	basis := EvalBasis(dir)

	var r, g, b float64
	for i := 0; i < NumCoefficients; i++ {
		r += coeffs.R[i] * basis[i] * bandFactor[i]
		g += coeffs.G[i] * basis[i] * bandFactor[i]
		b += coeffs.B[i] * basis[i] * bandFactor[i]
	}

	return vec.V3(r, g, b)
}

/*****************************************************************************************************************/

// ReconstructCubemap fills every texel of a single-level cubemap of the
// given size by reconstructing coeffs at that texel's direction.
func ReconstructCubemap(coeffs Coefficients, size int, fixup bool) (*cubemap.Cubemap, error) {
	out, err := cubemap.NewSingleLevel(size, 3)
	if err != nil {
		return nil, fmt.Errorf("sphharm: %w", err)
	}

	level := out.Levels[0]

	for face := cubeface.Face(0); face < cubeface.NumFaces; face++ {
		for v := 0; v < size; v++ {
			for u := 0; u < size; u++ {
				dir := cubeface.TexelCoordToDirection(face, float64(u), float64(v), size, fixup)
				colour := Reconstruct(coeffs, dir)
				level.SetTexel(face, u, v, colour)
			}
		}
	}

	return out, nil
}

/*****************************************************************************************************************/

// FormatReport renders the shR/shG/shB/shCoef coefficient listing in the
// same shape as the reference tool's console dump, each channel's band
// factors folded in. Unlike the reference dump this formats all three
// channels with the same index range starting at 1 after the seed value,
// rather than re-emitting coefficient 0 twice for the blue channel.
func FormatReport(coeffs Coefficients) string {
	scaled := coeffs.Scaled()

	var b strings.Builder

	writeChannel := func(name string, values [NumCoefficients]float64) {
		fmt.Fprintf(&b, "sh%s: [ %g", name, values[0])
		for i := 1; i < NumCoefficients; i++ {
			fmt.Fprintf(&b, ", %g", values[i])
		}
		b.WriteString(" ]\n")
	}

	writeChannel("R", scaled.R)
	writeChannel("G", scaled.G)
	writeChannel("B", scaled.B)

	b.WriteString("\nshCoef: [ ")
	fmt.Fprintf(&b, "%g, %g, %g", scaled.R[0], scaled.G[0], scaled.B[0])
	for i := 1; i < NumCoefficients; i++ {
		fmt.Fprintf(&b, ", %g, %g, %g", scaled.R[i], scaled.G[i], scaled.B[i])
	}
	b.WriteString(" ]\n")

	return b.String()
}

/*****************************************************************************************************************/
