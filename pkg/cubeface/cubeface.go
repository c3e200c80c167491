/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package cubeface implements the direction/texel mapping for the six
// faces of a cube: the fixed per-face orthonormal axis table, conversion
// between a unit direction and a (face, u, v) texel coordinate, and the
// exact per-texel solid-angle weight used throughout the pipeline.
package cubeface

/*****************************************************************************************************************/

import (
	"math"

	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

// Face identifies one of the six axis-aligned cube faces.
type Face int

/*****************************************************************************************************************/

const (
	PositiveX Face = iota
	NegativeX
	PositiveY
	NegativeY
	PositiveZ
	NegativeZ
)

/*****************************************************************************************************************/

// NumFaces is the number of faces on a cube.
const NumFaces = 6

/*****************************************************************************************************************/

// axes holds the fixed (uAxis, vAxis, faceAxis) basis for each face. The
// exact values are part of the external interface and must be preserved
// bit-for-bit: downstream consumers (mip pyramids on disk, baked lookup
// tables) depend on this ordering.
var axes = [NumFaces]struct {
	U, V, N vec.Vector3
}{
	PositiveX: {vec.V3(0, 0, -1), vec.V3(0, -1, 0), vec.V3(1, 0, 0)},
	NegativeX: {vec.V3(0, 0, 1), vec.V3(0, -1, 0), vec.V3(-1, 0, 0)},
	PositiveY: {vec.V3(1, 0, 0), vec.V3(0, 0, 1), vec.V3(0, 1, 0)},
	NegativeY: {vec.V3(1, 0, 0), vec.V3(0, 0, -1), vec.V3(0, -1, 0)},
	PositiveZ: {vec.V3(1, 0, 0), vec.V3(0, -1, 0), vec.V3(0, 0, 1)},
	NegativeZ: {vec.V3(-1, 0, 0), vec.V3(0, -1, 0), vec.V3(0, 0, -1)},
}

/*****************************************************************************************************************/

// UAxis returns the face's u-axis basis vector.
func (f Face) UAxis() vec.Vector3 { return axes[f].U }

/*****************************************************************************************************************/

// VAxis returns the face's v-axis basis vector.
func (f Face) VAxis() vec.Vector3 { return axes[f].V }

/*****************************************************************************************************************/

// Axis returns the face's fixed normal axis vector.
func (f Face) Axis() vec.Vector3 { return axes[f].N }

/*****************************************************************************************************************/

// TexelCoordToDirection maps continuous texel coordinates (ui,vi) ∈
// [0,size) on the given face to a unit direction. When fixup is true, the
// "stretch" remapping snaps the outermost texel centres to ±1 so that
// adjacent faces meet exactly on the seam (see spec §4.1).
func TexelCoordToDirection(face Face, ui, vi float64, size int, fixup bool) vec.Vector3 {
	var u, v float64

	if fixup {
		u = 2.0*ui/(float64(size)-1.0) - 1.0
		v = 2.0*vi/(float64(size)-1.0) - 1.0
	} else {
		u = 2.0*(ui+0.5)/float64(size) - 1.0
		v = 2.0*(vi+0.5)/float64(size) - 1.0
	}

	a := axes[face]
	dir := a.U.Scale(u).Add(a.V.Scale(v)).Add(a.N)

	return dir.Normalize()
}

/*****************************************************************************************************************/

// DirectionToTexel maps a unit direction to the (face, u, v) pixel
// coordinate it lands on in a size×size cubemap. Face selection breaks
// ties in the order +X, -X, +Y, -Y, +Z, -Z.
func DirectionToTexel(d vec.Vector3, size int) (face Face, u, v float64) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	var major float64
	switch {
	case ax >= ay && ax >= az:
		if d.X > 0 {
			face = PositiveX
		} else {
			face = NegativeX
		}
		major = ax
	case ay >= az:
		if d.Y > 0 {
			face = PositiveY
		} else {
			face = NegativeY
		}
		major = ay
	default:
		if d.Z > 0 {
			face = PositiveZ
		} else {
			face = NegativeZ
		}
		major = az
	}

	a := axes[face]

	// Project the direction onto the face's (u,v) axes, normalized by the
	// dominant component, to recover the original [-1,1] face-local
	// coordinates:
	su := d.Dot(a.U) / (a.U.Dot(a.U) * major)
	sv := d.Dot(a.V) / (a.V.Dot(a.V) * major)

	u = (su + 1) * float64(size) / 2
	v = (sv + 1) * float64(size) / 2

	return face, u, v
}

/*****************************************************************************************************************/

// solidAngleAtan evaluates the identity Ω(x,y) = atan2(xy, √(x²+y²+1)),
// the building block TexelSolidAngle combines across the four corners of
// a texel per Manne Öhrström's thesis (via Ignacio Castaño's formulation).
func solidAngleAtan(x, y float64) float64 {
	return math.Atan2(x*y, math.Sqrt(x*x+y*y+1))
}

/*****************************************************************************************************************/

// TexelSolidAngle computes the exact spherical area subtended by the
// texel at continuous coordinates (u,v) ∈ [0,size) on a size×size face.
// Summed over all 6·size² texels the result converges to 4π.
func TexelSolidAngle(u, v float64, size int) float64 {
	px := 2.0 / float64(size)

	// Map (u,v) texel indices to the [-1,1] face-local centre, then take
	// the half-pixel-extent corners:
	cu := 2.0*(u+0.5)/float64(size) - 1.0
	cv := 2.0*(v+0.5)/float64(size) - 1.0

	x0, x1 := cu-px/2, cu+px/2
	y0, y1 := cv-px/2, cv+px/2

	return solidAngleAtan(x1, y1) - solidAngleAtan(x1, y0) - solidAngleAtan(x0, y1) + solidAngleAtan(x0, y0)
}

/*****************************************************************************************************************/
