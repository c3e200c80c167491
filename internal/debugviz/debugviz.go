/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

// Package debugviz renders a light-extraction debug overlay: a
// luminance-greyscale backdrop with the split regions and each extracted
// light's bounding box and centroid cross, the first three lights
// highlighted, drawn with fogleman/gg.
package debugviz

/*****************************************************************************************************************/

import (
	"fmt"
	"image/color"
	"image/png"
	"os"

	"github.com/fogleman/gg"

	"github.com/lumenforge/envprobe/pkg/lightextract"
	"github.com/lumenforge/envprobe/pkg/vec"
)

/*****************************************************************************************************************/

var (
	regionColour = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	topColour    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	restColour   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

/*****************************************************************************************************************/

// Render draws the luminance backdrop plus every region outline and the
// extracted lights (the top three in red, the rest in blue, matching the
// reference tool's three-tier colour coding) and writes the result to
// path as a PNG.
func Render(pixels []float32, width, height, stride int, regions []lightextract.Region, lights []lightextract.Light, path string) error {
	dc := gg.NewContext(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * stride
			r := float64(pixels[idx+0])
			g := float64(pixels[idx+1])
			b := float64(pixels[idx+2])

			gray := clamp01(vec.Luminance(r, g, b))

			dc.SetRGB(gray, gray, gray)
			dc.SetPixel(x, y)
		}
	}

	dc.SetColor(regionColour)
	dc.SetLineWidth(1)
	for _, r := range regions {
		dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
		dc.Stroke()
	}

	topN := 3
	if topN > len(lights) {
		topN = len(lights)
	}

	for i, l := range lights {
		colour := restColour
		if i < topN {
			colour = topColour
		}

		drawLight(dc, width, height, l, colour)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("debugviz: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, dc.Image()); err != nil {
		return fmt.Errorf("debugviz: encoding %s: %w", path, err)
	}

	return nil
}

/*****************************************************************************************************************/

// drawLight outlines a light's bounding rectangle and marks its centroid
// with a cross, in pixel coordinates derived from its normalised [0,1]
// geometry.
func drawLight(dc *gg.Context, width, height int, l lightextract.Light, colour color.Color) {
	x := l.X * float64(width)
	y := l.Y * float64(height)
	w := l.W * float64(width)
	h := l.H * float64(height)

	cx := l.CentroidX * float64(width)
	cy := l.CentroidY * float64(height)

	dc.SetColor(colour)
	dc.SetLineWidth(2)

	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()

	const crossArm = 6.0
	dc.DrawLine(cx-crossArm, cy, cx+crossArm, cy)
	dc.Stroke()
	dc.DrawLine(cx, cy-crossArm, cx, cy+crossArm)
	dc.Stroke()
}

/*****************************************************************************************************************/

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

/*****************************************************************************************************************/
