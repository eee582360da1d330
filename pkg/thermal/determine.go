package thermal

import (
	"github.com/Fepozopo/thermview/pkg/palette"
	"github.com/Fepozopo/thermview/pkg/therr"
)

// Determine runs palette.Determine over ctx.VisibleImage and records the
// result on ctx.PaletteIndex. It must run before Process, which needs to
// know which palette to invert.
func Determine(ctx *Context, maxErrors int) error {
	if ctx == nil || ctx.VisibleImage == nil {
		return therr.New(therr.NullInput, therr.Thermal, "determine on context with no IR image")
	}
	idx, err := palette.Determine(ctx.VisibleImage, maxErrors)
	if err != nil {
		return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "determine palette")
	}
	ctx.PaletteIndex = idx
	return nil
}
