package palette

import (
	"github.com/Fepozopo/thermview/pkg/canvas"
	"github.com/Fepozopo/thermview/pkg/therr"
)

// IgnoreErrors tells Determine to never fail on pixels matching zero
// palettes; pass any non-negative budget to fail once that many
// zero-match pixels have been seen.
const IgnoreErrors = -1

// Determine scans every pixel of ir (skipping exact black and exact white,
// reserved crosshair colors), tallying per-palette hits via a fresh Cache
// per palette, and returns the unique palette with the most hits. It fails
// with ImageShape if no palette ever matches, if two palettes tie for the
// maximum, or if maxErrors is exhausted by zero-match pixels.
func Determine(ir *canvas.Canvas, maxErrors int) (Index, error) {
	if ir == nil {
		return Unknown, therr.New(therr.NullInput, therr.Palettes, "determine on nil canvas")
	}
	palettes := All()
	caches := make([]*Cache, len(palettes))
	hits := make([]int, len(palettes))
	for i, p := range palettes {
		caches[i] = NewCache(p)
	}

	errBudget := maxErrors
	for _, col := range ir.Pixels {
		if col.IsBlack() || col.IsWhite() {
			continue
		}
		matched := false
		for i, c := range caches {
			if _, ok := c.FindColor(col); ok {
				hits[i]++
				matched = true
			}
		}
		if !matched && errBudget != IgnoreErrors {
			errBudget--
			if errBudget <= 0 {
				return Unknown, therr.New(therr.ImageShape, therr.Palettes, "too many unmatched pixels")
			}
		}
	}

	best := -1
	bestHits := 0
	tie := false
	for i, h := range hits {
		if h > bestHits {
			bestHits = h
			best = i
			tie = false
		} else if h == bestHits && h > 0 {
			tie = true
		}
	}
	if best < 0 || bestHits == 0 || tie {
		return Unknown, therr.New(therr.ImageShape, therr.Palettes, "no unique palette match")
	}
	return palettes[best].Index, nil
}
