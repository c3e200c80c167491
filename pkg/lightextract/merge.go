/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package lightextract

/*****************************************************************************************************************/

import (
	"math"
	"sort"
)

/*****************************************************************************************************************/

// CoarseMerge repeatedly absorbs each unmerged light's intersecting
// neighbours into a growing envelope, bounded by lengthSizeMax per side
// and areaSizeMax in area, emitting every light that absorbed at least
// one child, followed by every light that was neither absorbed nor
// absorbed anything, unchanged (spec §4.6 step 5, coarse merge).
func CoarseMerge(lights []Light, areaSizeMax, lengthSizeMax, degreeMerge float64) []Light {
	border := degreeMerge * math.Pi / 360.0

	sorted := make([]Light, len(lights))
	copy(sorted, lights)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].AreaSize < sorted[j].AreaSize })

	merged := make([]Light, len(sorted))
	copy(merged, sorted)

	var newLights []Light

	for i := range merged {
		if merged[i].Merged {
			continue
		}

		current := merged[i]

		for {
			numMergedThisPass := 0

			for j := range merged {
				if j == i || merged[j].Merged {
					continue
				}

				newX := math.Min(current.X, merged[j].X)
				newY := math.Min(current.Y, merged[j].Y)
				newW := math.Max(current.X+current.W, merged[j].X+merged[j].W) - newX
				if lengthSizeMax > 0 && newW > lengthSizeMax {
					continue
				}
				newH := math.Max(current.Y+current.H, merged[j].Y+merged[j].H) - newY
				if lengthSizeMax > 0 && newH > lengthSizeMax {
					continue
				}
				if areaSizeMax > 0 && newW*newH > areaSizeMax {
					continue
				}

				if !current.intersects(merged[j], border) {
					continue
				}

				mergeLight(&current, &merged[j])
				numMergedThisPass++
			}

			if numMergedThisPass == 0 {
				break
			}
		}

		if current.MergedNum > 0 {
			current.SortCriteria = current.Sum
			newLights = append(newLights, current)
			merged[i].Merged = true
		}
	}

	// Lights never pulled into any envelope pass through unchanged (spec's
	// "if(1)" branch, which in the reference is an unconditional pass):
	for i := range merged {
		if !merged[i].Merged && merged[i].MergedNum == 0 {
			l := merged[i]
			if l.AreaSize > 0 {
				l.LumAverage = l.Sum / l.AreaSize
			}
			l.SortCriteria = l.Sum
			newLights = append(newLights, l)
		}
	}

	return newLights
}

/*****************************************************************************************************************/

// SelectShrink re-merges each coarse-merged light's children under a
// stricter non-overlap constraint, starting from the highest-sum child,
// producing a compact representative per merged group (spec §4.6 step 5,
// select/shrink).
func SelectShrink(lights []Light, degreeMerge float64) []Light {
	border := degreeMerge * math.Pi / 360.0

	result := make([]Light, 0, len(lights))

	for _, light := range lights {
		if light.MergedNum == 0 {
			light.SortCriteria = light.Sum
			result = append(result, light)
			continue
		}

		children := make([]Light, len(light.Children))
		copy(children, light.Children)
		sort.Sort(byCriteriaDescending(children))

		current := children[0]
		for i := 1; i < len(children); i++ {
			children[i].Merged = false
		}

		for {
			numMergedThisPass := 0

			for i := 1; i < len(children); i++ {
				if children[i].Merged {
					continue
				}

				if current.intersects(children[i], border) && !intersectsAny(current.Children, children[i], border) {
					mergeLight(&current, &children[i])
					numMergedThisPass++
				}
			}

			if numMergedThisPass == 0 {
				break
			}
		}

		current.SortCriteria = current.Sum
		result = append(result, current)
	}

	return result
}

/*****************************************************************************************************************/

// intersectsAny reports whether candidate's inflated bounds overlap any
// light already absorbed into group.
func intersectsAny(group []Light, candidate Light, border float64) bool {
	for _, g := range group {
		if g.intersects(candidate, border) {
			return true
		}
	}
	return false
}

/*****************************************************************************************************************/
