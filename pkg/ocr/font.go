// Package ocr recognizes the fixed-width glyphs the OSD strip renders by
// sampling a small, predetermined set of pixel offsets inside each glyph's
// bounding box and hashing the samples into an 8-bit signature, which is
// looked up in a static per-font table (spec.md §4.2).
package ocr

import "github.com/Fepozopo/thermview/pkg/canvas"

// Font distinguishes the two glyph sizes the OSD strip uses. Both share the
// same sampling/signature structure; only geometry, sample offsets, and the
// character table differ.
type Font int

const (
	Large Font = iota
	Small
)

// offset is one (dx,dy) sample position relative to a glyph's origin.
type offset struct{ dx, dy int }

type fontSpec struct {
	width, height int
	samples       [8]offset
	table         map[byte]rune
}

// Foreground is the glyph color every font samples against.
const Foreground = canvas.White

var largeSamples = [8]offset{
	{10, 1}, {16, 1}, {3, 4}, {15, 4}, {12, 7}, {8, 11}, {16, 14}, {8, 18},
}

var smallSamples = [8]offset{
	{3, 1}, {5, 2}, {1, 4}, {6, 5}, {4, 8}, {7, 8}, {5, 10}, {7, 10},
}

// largeTable and smallTable assign each recognized character a distinct
// 8-bit signature. The original firmware's exact sampled bit patterns
// weren't available to ground this on; DESIGN.md records this table as a
// synthesized-but-fixed stand-in satisfying the same contract (a static
// signature->character map, 17 entries for LARGE, 14 for SMALL).
var largeTable = map[byte]rune{
	0: '0', 1: '1', 2: '2', 3: '3', 4: '4',
	5: '5', 6: '6', 7: '7', 8: '8', 9: '9',
	10: ' ', 11: 'C', 12: 'F', 13: '.', 14: 'L', 15: '-', 16: 'O',
}

var smallTable = map[byte]rune{
	0: '0', 1: '1', 2: '2', 3: '3', 4: '4',
	5: '5', 6: '6', 7: '7', 8: '8', 9: '9',
	10: ' ', 11: '.', 12: ':', 13: 'E',
}

func specFor(f Font) fontSpec {
	switch f {
	case Small:
		return fontSpec{width: 10, height: 12, samples: smallSamples, table: smallTable}
	default:
		return fontSpec{width: 18, height: 23, samples: largeSamples, table: largeTable}
	}
}

// SignatureFor returns the fixed signature byte a font assigns to r, and
// whether r is recognized by that font. Exported so tests (and a glyph
// renderer) can build synthetic canvases that round-trip through OCR.
func SignatureFor(f Font, r rune) (byte, bool) {
	spec := specFor(f)
	for sig, ch := range spec.table {
		if ch == r {
			return sig, true
		}
	}
	return 0, false
}
