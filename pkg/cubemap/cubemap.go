/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package cubemap implements the ordered mip pyramid container on top of
// pkg/miplevel: continuous-LOD sampling across levels and the
// normaliser-cubemap construction used by the SH projector's
// solid-angle weighting.
package cubemap

/*****************************************************************************************************************/

import (
	"errors"
	"fmt"

	"github.com/lumenforge/envprobe/pkg/cubeface"
	"github.com/lumenforge/envprobe/pkg/miplevel"
	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

// Cubemap is a non-empty ordered sequence of mip levels. Levels[0] is the
// highest resolution; when len(Levels) > 1 each subsequent level is half
// the edge length of the previous one, down to 1.
type Cubemap struct {
	Levels []*miplevel.MipLevel
}

/*****************************************************************************************************************/

// ErrEmptyCubemap is returned by operations that require at least one
// mip level.
var ErrEmptyCubemap = errors.New("cubemap: cubemap has no mip levels")

/*****************************************************************************************************************/

// NewSingleLevel builds a Cubemap with a single mip level of the given
// size and channel count.
func NewSingleLevel(size, samplesPerPixel int) (*Cubemap, error) {
	lvl, err := miplevel.New(size, samplesPerPixel)
	if err != nil {
		return nil, err
	}

	return &Cubemap{Levels: []*miplevel.MipLevel{lvl}}, nil
}

/*****************************************************************************************************************/

// FromLevels wraps an already-decoded mip pyramid (lowest index highest
// resolution) as a Cubemap.
func FromLevels(levels []*miplevel.MipLevel) (*Cubemap, error) {
	if len(levels) == 0 {
		return nil, ErrEmptyCubemap
	}

	return &Cubemap{Levels: levels}, nil
}

/*****************************************************************************************************************/

// Size returns the edge length of level 0.
func (c *Cubemap) Size() int {
	return c.Levels[0].Size
}

/*****************************************************************************************************************/

// SamplesPerPixel returns the channel count of level 0.
func (c *Cubemap) SamplesPerPixel() int {
	return c.Levels[0].SamplesPerPixel
}

/*****************************************************************************************************************/

// Fill overwrites every texel of level 0 with the given colour.
func (c *Cubemap) Fill(colour vec.Vector4) {
	c.Levels[0].Fill(colour)
}

/*****************************************************************************************************************/

// Sample returns the nearest-neighbour RGB sample from level 0.
func (c *Cubemap) Sample(direction vec.Vector3) vec.Vector3 {
	return c.Levels[0].NearestSample(direction)
}

/*****************************************************************************************************************/

// SampleLOD returns a trilinearly-interpolated-across-levels (but
// nearest-neighbour-per-face) RGB sample at continuous LOD lambda. Out of
// range lambda is clamped to [0, len(Levels)-1] before interpolation.
func (c *Cubemap) SampleLOD(direction vec.Vector3, lambda float64) vec.Vector3 {
	maxLevel := float64(len(c.Levels) - 1)

	if lambda < 0 {
		lambda = 0
	}
	if lambda > maxLevel {
		lambda = maxLevel
	}

	l0 := int(lambda)
	l1 := l0
	if float64(l0) < lambda {
		l1 = l0 + 1
	}
	if l1 > int(maxLevel) {
		l1 = int(maxLevel)
	}

	r := lambda - float64(l0)

	c0 := c.Levels[l0].NearestSample(direction)
	if l1 == l0 {
		return c0
	}

	c1 := c.Levels[l1].NearestSample(direction)

	return c0.Lerp(c1, r)
}

/*****************************************************************************************************************/

// NativeLevelForSize returns the index of the mip level whose edge length
// matches size, or -1 if none does.
func (c *Cubemap) NativeLevelForSize(size int) int {
	for i, lvl := range c.Levels {
		if lvl.Size == size {
			return i
		}
	}
	return -1
}

/*****************************************************************************************************************/

// BuildNormalizerSolidAngleCubemap constructs a 4-channel helper cubemap
// at the given size where channels 0..2 hold the per-texel unit direction
// and channel 3 holds its solid angle, using the same fixup convention as
// whichever cubemap this normaliser will weight.
func BuildNormalizerSolidAngleCubemap(size int, fixup bool) (*Cubemap, error) {
	level, err := miplevel.New(size, 4)
	if err != nil {
		return nil, fmt.Errorf("cubemap: building normalizer: %w", err)
	}

	for face := cubeface.Face(0); face < cubeface.NumFaces; face++ {
		for v := 0; v < size; v++ {
			for u := 0; u < size; u++ {
				dir := cubeface.TexelCoordToDirection(face, float64(u), float64(v), size, fixup)
				sa := cubeface.TexelSolidAngle(float64(u), float64(v), size)

				level.SetTexel(face, u, v, dir)
				stride := level.SamplesPerPixel
				idx := (v*size+u)*stride + 3
				level.Faces[face][idx] = float32(sa)
			}
		}
	}

	return &Cubemap{Levels: []*miplevel.MipLevel{level}}, nil
}

/*****************************************************************************************************************/

// DirectionAndSolidAngle reads back the direction and solid angle stored
// by BuildNormalizerSolidAngleCubemap at the given integer texel.
func (c *Cubemap) DirectionAndSolidAngle(face cubeface.Face, u, v int) (vec.Vector3, float64) {
	level := c.Levels[0]
	stride := level.SamplesPerPixel
	idx := (v*level.Size + u) * stride

	data := level.Faces[face]

	return vec.V3(float64(data[idx]), float64(data[idx+1]), float64(data[idx+2])), float64(data[idx+3])
}

/*****************************************************************************************************************/
