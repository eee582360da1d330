package locator

import "github.com/Fepozopo/thermview/pkg/canvas"

// scanState is the eight-state crosshair-row scanner from spec.md §4.1,
// modeled as an explicit transition table per the teacher's small
// state-machine style (the teacher has none directly, but the pack's
// locator-shaped examples — e.g. the FLIR Lepton driver's frame-sync state
// handling — motivate an explicit enum plus a single step function over a
// switch, rather than scattered booleans).
type scanState int

const (
	stStart scanState = iota
	stBorder1
	stFill1
	stBorder2
	stEye
	stBorder3
	stFill2
	stBorder4
)

type pixelClass int

const (
	pxBorder pixelClass = iota // exact black
	pxFill                     // exact white
	pxOther                    // anything else (candidate eye color)
)

func classifyPixel(c canvas.Color) pixelClass {
	switch {
	case c.IsBlack():
		return pxBorder
	case c.IsWhite():
		return pxFill
	default:
		return pxOther
	}
}

// matchState tracks the crosshair-row state machine's counters alongside
// the current state.
type matchState struct {
	state      scanState
	borderRank int // which border segment (1..4) was most recently entered
	fillCount  int // cumulative fill pixels across both fill runs
	eyeCount   int // cumulative pixels in the eye run
}

// rowMatch is a confirmed (fill,eye) pair identifying the model, plus the
// column at which the fourth border was seen (the cross-section's right
// edge).
type rowMatch struct {
	model  Model
	endCol int
}

// step advances the state machine by one pixel, returning the match found
// at this pixel (if the fourth border just closed a valid sequence) or
// false.
func (m *matchState) step(class pixelClass) (rowMatch, bool) {
	switch m.state {
	case stStart:
		if class == pxBorder {
			m.reset(stBorder1, 1)
		}

	case stBorder1:
		switch class {
		case pxFill:
			m.state = stFill1
			m.fillCount = 1
		case pxBorder:
			m.reset(stBorder1, 1)
		default:
			m.toStart()
		}

	case stFill1:
		switch class {
		case pxFill:
			m.fillCount++
		case pxBorder:
			if m.fillCount == geomA.FillWidth || m.fillCount == geomB.FillWidth {
				m.state = stBorder2
				m.borderRank = 2
			} else {
				m.reset(stBorder1, 1)
			}
		default:
			m.toStart()
		}

	case stBorder2:
		switch class {
		case pxOther:
			m.state = stEye
			m.eyeCount = 1
		case pxBorder:
			m.reset(stBorder1, 1)
		default:
			m.toStart()
		}

	case stEye:
		switch class {
		case pxOther:
			m.eyeCount++
		case pxBorder:
			if m.borderRank == 2 && (m.eyeCount == geomA.EyeSize || m.eyeCount == geomB.EyeSize) {
				m.state = stBorder3
				m.borderRank = 3
			} else {
				m.reset(stBorder1, 1)
			}
		default:
			m.toStart()
		}

	case stBorder3:
		switch class {
		case pxFill:
			m.state = stFill2
			m.fillCount++
		case pxBorder:
			m.reset(stBorder1, 1)
		default:
			m.toStart()
		}

	case stFill2:
		switch class {
		case pxFill:
			m.fillCount++
		case pxBorder:
			if m.borderRank == 3 && (m.fillCount == 2*geomA.FillWidth || m.fillCount == 2*geomB.FillWidth) {
				model, ok := finalMatch(m.fillCount, m.eyeCount)
				m.toStart()
				if ok {
					return rowMatch{model: model}, true
				}
			} else {
				m.reset(stBorder1, 1)
			}
		default:
			m.toStart()
		}
	}
	return rowMatch{}, false
}

func (m *matchState) reset(s scanState, borderRank int) {
	m.state = s
	m.borderRank = borderRank
	m.fillCount = 0
	m.eyeCount = 0
}

func (m *matchState) toStart() {
	m.state = stStart
	m.borderRank = 0
	m.fillCount = 0
	m.eyeCount = 0
}

// finalMatch applies spec.md §4.1's "first match wins" tuple check once
// border_count has reached 4.
func finalMatch(fillCount, eyeCount int) (Model, bool) {
	if fillCount == 2*geomA.FillWidth && eyeCount == geomA.EyeSize {
		return ModelA, true
	}
	if fillCount == 2*geomB.FillWidth && eyeCount == geomB.EyeSize {
		return ModelB, true
	}
	return ModelUnknown, false
}

// coarseRowFilter reports whether row y of c has enough black and white
// pixels to be worth running the full state machine over (spec.md §4.1
// step B phase 1): at least 4 border pixels and at least 2*min(F) fill
// pixels, where min(F) = min(FillWidth_A, FillWidth_B).
func coarseRowFilter(c *canvas.Canvas, y int) bool {
	minFill := 2 * minInt(geomA.FillWidth, geomB.FillWidth)
	black, white := 0, 0
	for x := 0; x < c.Width; x++ {
		px, _ := c.Get(x, y)
		switch classifyPixel(px) {
		case pxBorder:
			black++
		case pxFill:
			white++
		}
	}
	return black >= 4 && white >= minFill
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// scanRow runs the full state machine across row y left to right, returning
// the first confirmed match and the column index of the pixel that closed
// it (the cross-section's ending x, i.e. the row's 4th border position).
func scanRow(c *canvas.Canvas, y int) (rowMatch, bool) {
	var m matchState
	for x := 0; x < c.Width; x++ {
		px, _ := c.Get(x, y)
		class := classifyPixel(px)
		if match, ok := m.step(class); ok {
			match.endCol = x
			return match, true
		}
	}
	return rowMatch{}, false
}
