// Package locator splits a raw screenshot canvas into its text and IR
// sub-canvases, finds the device crosshair overlay by scanning for its
// border-fill-eye-fill-border horizontal cross-section, and classifies
// every IR pixel as belonging to the crosshair or the underlying image.
// Grounded on spec.md §4.1; state-machine structure mirrors scan.go.
package locator

import (
	"github.com/Fepozopo/thermview/pkg/canvas"
	"github.com/Fepozopo/thermview/pkg/therr"
)

// Input screenshot geometry (spec.md §6), fixed.
const (
	ShotWidth  = 174
	ShotHeight = 220

	textOriginX, textOriginY, textW, textH = 2, 1, 170, 23
	irOriginX, irOriginY, irW, irH         = 12, 25, 150, 175
)

// Result is the locator's output: the two owned sub-canvases, the detected
// model, and the crosshair/aperture geometry. Text and IR transfer
// ownership to thermal.Create; after that call Text and IR are nil here
// (spec.md §3/§5 move semantics).
type Result struct {
	Text      *canvas.Canvas
	IR        *canvas.Canvas
	Model     Model
	Crosshair Rect
	Aperture  Rect
}

// Process partitions shot into text/IR sub-canvases and locates the
// crosshair. shot must be exactly ShotWidth x ShotHeight; anything else is
// an ImageShape error. If no row's horizontal cross-section matches either
// model's signature, Process still succeeds with Model == ModelUnknown —
// the image remains valid for palette work (spec.md §4.1).
func Process(shot *canvas.Canvas) (*Result, error) {
	if shot == nil {
		return nil, therr.New(therr.NullInput, therr.Locator, "process nil screenshot")
	}
	if shot.Width != ShotWidth || shot.Height != ShotHeight {
		return nil, therr.New(therr.ImageShape, therr.Locator, "screenshot must be 174x220")
	}

	text, err := shot.Copy(textOriginX, textOriginY, textW, textH)
	if err != nil {
		return nil, therr.Wrap(err, therr.CalleeFail, therr.Locator, "copy text strip")
	}
	ir, err := shot.Copy(irOriginX, irOriginY, irW, irH)
	if err != nil {
		text.Close()
		return nil, therr.Wrap(err, therr.CalleeFail, therr.Locator, "copy ir strip")
	}

	result := &Result{Text: text, IR: ir, Model: ModelUnknown}

	for y := 0; y < ir.Height; y++ {
		if !coarseRowFilter(ir, y) {
			continue
		}
		match, ok := scanRow(ir, y)
		if !ok {
			continue
		}
		g, _ := geometryFor(match.model)
		width := g.Width()
		crosshair := Rect{
			X: match.endCol - width + 1,
			Y: y - g.TargetRow,
			W: width,
			H: g.Height,
		}
		result.Model = match.model
		result.Crosshair = crosshair
		result.Aperture = apertureRect(match.model, crosshair)
		break
	}

	return result, nil
}

// Detect classifies the pixel at (x,y) in IR-canvas coordinates.
//
// With ModelUnknown every in-bounds pixel is IMAGE. Otherwise a pixel
// outside the IR canvas is OUT_OF_BOUNDS; inside the crosshair's bounding
// box it is CROSSHAIR if it falls in the crosshair's horizontal or vertical
// opaque band (the border+fill+eye "+" shape spec.md §4.1 describes as
// eight axis-aligned rectangles — see DESIGN.md for why this is
// implemented as two bands rather than a literal eight-rectangle list);
// everywhere else in-bounds is IMAGE.
func (r *Result) Detect(x, y int) Class {
	if r == nil {
		return Fail
	}
	w, h := irW, irH
	if r.IR != nil {
		w, h = r.IR.Width, r.IR.Height
	}
	if x < 0 || y < 0 || x >= w || y >= h {
		return OutOfBounds
	}
	if r.Model == ModelUnknown {
		return Image
	}
	g, ok := geometryFor(r.Model)
	if !ok {
		return Fail
	}
	if !r.Crosshair.Contains(x, y) {
		return Image
	}
	lx := x - r.Crosshair.X
	ly := y - r.Crosshair.Y
	inHorizontalBand := ly >= g.EyeOffY && ly < g.EyeOffY+g.EyeSize
	inVerticalBand := lx >= g.EyeOffX && lx < g.EyeOffX+g.EyeSize
	if inHorizontalBand || inVerticalBand {
		return Crosshair
	}
	return Image
}
