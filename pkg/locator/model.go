package locator

// Model identifies which camera variant produced the screenshot, detected
// solely from the crosshair's geometric signature (spec.md §4.1/GLOSSARY).
type Model int

const (
	ModelUnknown Model = iota
	ModelA
	ModelB
)

func (m Model) String() string {
	switch m {
	case ModelA:
		return "MODEL_A"
	case ModelB:
		return "MODEL_B"
	default:
		return "MODEL_UNKNOWN"
	}
}

// geometry holds the per-model constants from spec.md §6: crosshair height,
// fill width, eye size, eye offset within the crosshair, and the row (from
// the crosshair's top) on which the eye's horizontal cross-section lies.
// Width is derived: 4 border px + 2*FillWidth + EyeSize.
type geometry struct {
	Height    int
	FillWidth int
	EyeSize   int
	EyeOffX   int
	EyeOffY   int
	TargetRow int
}

func (g geometry) Width() int { return 4 + 2*g.FillWidth + g.EyeSize }

var geomA = geometry{Height: 23, FillWidth: 7, EyeSize: 5, EyeOffX: 9, EyeOffY: 9, TargetRow: 11}
var geomB = geometry{Height: 47, FillWidth: 14, EyeSize: 17, EyeOffX: 16, EyeOffY: 15, TargetRow: 23}

func geometryFor(m Model) (geometry, bool) {
	switch m {
	case ModelA:
		return geomA, true
	case ModelB:
		return geomB, true
	default:
		return geometry{}, false
	}
}

// apertureRect returns the aperture rectangle for model m: the eye
// rectangle, placed at the per-model eye offset from the crosshair's own
// origin (spec.md §4.1: "Aperture rectangle = crosshair rectangle offset
// by per-model constants").
func apertureRect(m Model, crosshair Rect) Rect {
	g, ok := geometryFor(m)
	if !ok {
		return Rect{}
	}
	return Rect{
		X: crosshair.X + g.EyeOffX,
		Y: crosshair.Y + g.EyeOffY,
		W: g.EyeSize,
		H: g.EyeSize,
	}
}
