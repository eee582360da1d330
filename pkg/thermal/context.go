// Package thermal composes canvas, locator, ocr, and palette into the
// thermal-recovery pipeline: mask construction, OCR of the spot reading,
// two-pass palette inversion with crosshair interpolation, and re-rendering
// with an optional restamped crosshair. Grounded on spec.md §4.4; the
// ownership-transfer and two-pass-algorithm shape has no direct teacher
// analogue, so its state-machine and pass structure follow locator.scan.go's
// explicit-transition-table style rather than inventing ad-hoc control flow.
package thermal

import (
	"github.com/Fepozopo/thermview/pkg/canvas"
	"github.com/Fepozopo/thermview/pkg/locator"
	"github.com/Fepozopo/thermview/pkg/palette"
	"github.com/Fepozopo/thermview/pkg/therr"
)

// Context owns every image and derived value produced after a screenshot has
// been located: the IR and text sub-canvases (moved from the locator), the
// per-pixel mask, the recovered intensity image (nil until Process runs),
// and the parsed spot temperature/emissivity.
type Context struct {
	VisibleImage *canvas.Canvas // IR sub-canvas, owned
	TextImage    *canvas.Canvas // OSD text sub-canvas, owned
	Intensity    *IntensityImage

	Mask       []locator.Class
	MaskWidth  int
	MaskHeight int

	Model    locator.Model
	Aperture locator.Rect

	PaletteIndex palette.Index

	TemperatureSpot int // tenths of a degree Celsius
	Emissivity      int // percent, 1..99

	ValueMin, ValueMax, ValueMedian int
}

// Create validates loc, builds the classification mask by calling Detect at
// every IR coordinate, and takes ownership of loc's two sub-canvases — after
// Create returns successfully, loc.Text and loc.IR are nil (spec.md §5's
// move semantics for thermal_create).
func Create(loc *locator.Result) (*Context, error) {
	if loc == nil {
		return nil, therr.New(therr.NullInput, therr.Thermal, "create from nil locator result")
	}
	switch loc.Model {
	case locator.ModelUnknown, locator.ModelA, locator.ModelB:
	default:
		return nil, therr.New(therr.AssertFail, therr.Thermal, "invalid model enum")
	}
	if loc.IR == nil {
		return nil, therr.New(therr.NullInput, therr.Thermal, "create from locator with no IR canvas")
	}

	w, h := loc.IR.Width, loc.IR.Height
	mask := make([]locator.Class, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			class := loc.Detect(x, y)
			if class == locator.Fail {
				return nil, therr.New(therr.AssertFail, therr.Thermal, "classification failed during mask build")
			}
			mask[y*w+x] = class
		}
	}

	ctx := &Context{
		VisibleImage: loc.IR,
		TextImage:    loc.Text,
		Mask:         mask,
		MaskWidth:    w,
		MaskHeight:   h,
		Model:        loc.Model,
		Aperture:     loc.Aperture,
	}
	loc.IR = nil
	loc.Text = nil
	return ctx, nil
}

// Close releases every image the context owns.
func (ctx *Context) Close() {
	if ctx == nil {
		return
	}
	ctx.VisibleImage.Close()
	ctx.TextImage.Close()
	ctx.Intensity = nil
	ctx.VisibleImage = nil
	ctx.TextImage = nil
	ctx.Mask = nil
}

func (ctx *Context) maskAt(x, y int) locator.Class {
	return ctx.Mask[y*ctx.MaskWidth+x]
}

func (ctx *Context) setMaskAt(x, y int, class locator.Class) {
	ctx.Mask[y*ctx.MaskWidth+x] = class
}
