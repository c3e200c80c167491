/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package lightextract

/*****************************************************************************************************************/

import "math"

/*****************************************************************************************************************/

// Light is a rectangular directional light promoted from a region of the
// source equirectangular image, in normalised [0,1]² coordinates.
type Light struct {
	X, Y, W, H           float64
	CentroidX, CentroidY float64
	AreaSize             float64
	Sum                  float64
	Variance             float64
	LumAverage           float64
	RAverage             float64
	GAverage             float64
	BAverage             float64
	LuminancePixel       float64
	Error                bool

	Merged       bool
	MergedNum    int
	Children     []Light
	SortCriteria float64
}

/*****************************************************************************************************************/

// byCriteriaDescending sorts lights by SortCriteria, highest first.
type byCriteriaDescending []Light

func (s byCriteriaDescending) Len() int           { return len(s) }
func (s byCriteriaDescending) Less(i, j int) bool { return s[i].SortCriteria > s[j].SortCriteria }
func (s byCriteriaDescending) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

/*****************************************************************************************************************/

// mergeLight absorbs child into parent in place: child is flagged merged,
// parent's bounds grow to the union, and spectral averages combine as an
// area-weighted mean (spec §4.6 step 5).
func mergeLight(parent *Light, child *Light) {
	child.Merged = true
	child.SortCriteria = child.Sum

	x, y, w, h := parent.X, parent.Y, parent.W, parent.H

	parent.X = math.Min(x, child.X)
	parent.Y = math.Min(y, child.Y)
	parent.W = math.Max(x+w, child.X+child.W) - parent.X
	parent.H = math.Max(y+h, child.Y+child.H) - parent.Y

	parent.Children = append(parent.Children, *child)
	parent.MergedNum++

	parent.Sum += child.Sum

	newArea := parent.AreaSize + child.AreaSize
	if newArea > 0 {
		ratioParent := parent.AreaSize / newArea
		ratioChild := child.AreaSize / newArea

		parent.RAverage = parent.RAverage*ratioParent + child.RAverage*ratioChild
		parent.GAverage = parent.GAverage*ratioParent + child.GAverage*ratioChild
		parent.BAverage = parent.BAverage*ratioParent + child.BAverage*ratioChild
	}

	parent.AreaSize = newArea
	if newArea > 0 {
		parent.LumAverage = parent.Sum / newArea
	}
}

/*****************************************************************************************************************/

// bounds returns the light's bounding rectangle inflated by border on
// every side.
func (l Light) bounds(border float64) (x1, y1, x2, y2 float64) {
	x1 = l.X - border
	y1 = l.Y - border
	x2 = l.X + l.W + border
	y2 = l.Y + l.H + border
	return
}

/*****************************************************************************************************************/

// intersects reports whether l's inflated bounding rectangle overlaps
// other's bounding rectangle (spec §4.6's 2D interval-overlap test).
func (l Light) intersects(other Light, border float64) bool {
	x1, y1, x2, y2 := l.bounds(border)
	return !(other.Y > y2 || other.Y+other.H < y1 || other.X > x2 || other.X+other.W < x1)
}

/*****************************************************************************************************************/
