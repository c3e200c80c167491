/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package miplevel implements a single six-face floating-point cubemap
// image: storage, nearest-neighbour sampling, and the Source/Sink
// interfaces that the (externally-supplied) image codec implements.
package miplevel

/*****************************************************************************************************************/

import (
	"errors"
	"fmt"
	"math"

	"github.com/lumenforge/envprobe/pkg/cubeface"
	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

// MinSamplesPerPixel is the minimum channel count a MipLevel may carry.
// Fewer than 3 channels cannot represent RGB radiance.
const MinSamplesPerPixel = 3

/*****************************************************************************************************************/

// MipLevel is a single six-face image: one contiguous row-major float32
// buffer per face, each of length Size*Size*SamplesPerPixel.
type MipLevel struct {
	Size            int
	SamplesPerPixel int
	Faces           [cubeface.NumFaces][]float32
}

/*****************************************************************************************************************/

// New allocates a zero-filled MipLevel with the given edge length and
// channel count. samplesPerPixel must be at least MinSamplesPerPixel.
func New(size, samplesPerPixel int) (*MipLevel, error) {
	if size <= 0 {
		return nil, fmt.Errorf("miplevel: size must be positive, got %d", size)
	}

	if samplesPerPixel < MinSamplesPerPixel {
		return nil, fmt.Errorf("miplevel: samplesPerPixel must be >= %d, got %d", MinSamplesPerPixel, samplesPerPixel)
	}

	m := &MipLevel{Size: size, SamplesPerPixel: samplesPerPixel}

	for i := range m.Faces {
		m.Faces[i] = make([]float32, size*size*samplesPerPixel)
	}

	return m, nil
}

/*****************************************************************************************************************/

// Fill overwrites every texel on every face with the given colour. Alpha
// (colour.W) is written only when SamplesPerPixel > 3.
func (m *MipLevel) Fill(colour vec.Vector4) {
	stride := m.SamplesPerPixel

	for f := range m.Faces {
		data := m.Faces[f]

		for i := 0; i < len(data); i += stride {
			data[i+0] = float32(colour.X)
			data[i+1] = float32(colour.Y)
			data[i+2] = float32(colour.Z)

			if stride > 3 {
				data[i+3] = float32(colour.W)
			}
		}
	}
}

/*****************************************************************************************************************/

// NearestSample returns the RGB value of the texel nearest to the given
// unit direction. Alpha, if present, is ignored.
func (m *MipLevel) NearestSample(direction vec.Vector3) vec.Vector3 {
	face, u, v := cubeface.DirectionToTexel(direction, m.Size)

	// DirectionToTexel puts texel i's centre at i+0.5:
	i := clampRound(u-0.5, m.Size)
	j := clampRound(v-0.5, m.Size)

	stride := m.SamplesPerPixel
	idx := (j*m.Size + i) * stride

	data := m.Faces[face]

	return vec.V3(float64(data[idx]), float64(data[idx+1]), float64(data[idx+2]))
}

/*****************************************************************************************************************/

func clampRound(x float64, size int) int {
	i := int(math.Round(x))

	if i < 0 {
		return 0
	}

	if i > size-1 {
		return size - 1
	}

	return i
}

/*****************************************************************************************************************/

// SetTexel writes an RGB value at the given integer texel coordinate
// on the given face; an alpha channel, if present, is left unchanged. Intended for use by the parallel integrators, which
// own an exclusive row range of a single face.
func (m *MipLevel) SetTexel(face cubeface.Face, i, j int, colour vec.Vector3) {
	stride := m.SamplesPerPixel
	idx := (j*m.Size + i) * stride

	data := m.Faces[face]
	data[idx+0] = float32(colour.X)
	data[idx+1] = float32(colour.Y)
	data[idx+2] = float32(colour.Z)
}

/*****************************************************************************************************************/

// Source is the read side of the external image codec contract: a
// decoded six-face image plus whatever validation the codec performed.
type Source interface {
	Decode() (*MipLevel, error)
}

/*****************************************************************************************************************/

// Sink is the write side of the external image codec contract.
type Sink interface {
	Encode(level *MipLevel) error
}

/*****************************************************************************************************************/

// ErrInvalidChannelCount is returned by codecs when a decoded image has
// fewer than MinSamplesPerPixel channels.
var ErrInvalidChannelCount = errors.New("miplevel: subimage channel count must be at least 3")

/*****************************************************************************************************************/

// ErrDimensionMismatch is returned by codecs when the six subimages of a
// cubemap file do not share identical square dimensions.
var ErrDimensionMismatch = errors.New("miplevel: cubemap subimages must be square and identically sized")

/*****************************************************************************************************************/
