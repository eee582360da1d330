package thermal

import (
	"github.com/Fepozopo/thermview/pkg/canvas"
	"github.com/Fepozopo/thermview/pkg/locator"
	"github.com/Fepozopo/thermview/pkg/therr"
)

// restampState is the three-state machine spec.md §4.4/§9 calls for driving
// both the horizontal and vertical restamp passes.
type restampState int

const (
	rsNone restampState = iota
	rsBorder
	rsFill
)

// Stamp restamps a crosshair onto out using ctx.Mask's CROSSHAIR pixels,
// painting border_color at the crosshair's edges and fill_color in its
// interior. The horizontal pass paints both border and fill; the vertical
// pass paints only the top/bottom border caps, since the interior was
// already filled horizontally — spec.md §9 calls this asymmetry intentional
// and instructs preserving it rather than "fixing" it into a symmetric pass.
func Stamp(ctx *Context, borderColor, fillColor canvas.Color, out *canvas.Canvas) error {
	if ctx == nil || ctx.Mask == nil {
		return therr.New(therr.NullInput, therr.Thermal, "stamp with no mask")
	}
	if out == nil {
		return therr.New(therr.NullInput, therr.Thermal, "stamp onto nil canvas")
	}
	w, h := ctx.MaskWidth, ctx.MaskHeight

	for y := 0; y < h; y++ {
		state := rsNone
		streak := 0
		lastX := -1
		for x := 0; x < w; x++ {
			if ctx.maskAt(x, y) == locator.Crosshair {
				switch state {
				case rsNone:
					if err := out.Set(x, y, borderColor); err != nil {
						return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "paint horizontal border")
					}
					state = rsBorder
					streak = 1
				default:
					if err := out.Set(x, y, fillColor); err != nil {
						return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "paint horizontal fill")
					}
					state = rsFill
					streak++
				}
				lastX = x
				continue
			}
			if state != rsNone && streak > 1 {
				if err := out.Set(lastX, y, borderColor); err != nil {
					return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "cap horizontal right edge")
				}
			}
			state = rsNone
			streak = 0
		}
		if state != rsNone && streak > 1 {
			if err := out.Set(lastX, y, borderColor); err != nil {
				return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "cap horizontal right edge at row end")
			}
		}
	}

	for x := 0; x < w; x++ {
		state := rsNone
		streak := 0
		lastY := -1
		for y := 0; y < h; y++ {
			if ctx.maskAt(x, y) == locator.Crosshair {
				if state == rsNone {
					if err := out.Set(x, y, borderColor); err != nil {
						return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "paint vertical top cap")
					}
					state = rsBorder
					streak = 1
				} else {
					state = rsFill
					streak++
				}
				lastY = y
				continue
			}
			if state != rsNone && streak > 1 {
				if err := out.Set(x, lastY, borderColor); err != nil {
					return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "cap vertical bottom edge")
				}
			}
			state = rsNone
			streak = 0
		}
		if state != rsNone && streak > 1 {
			if err := out.Set(x, lastY, borderColor); err != nil {
				return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "cap vertical bottom edge at column end")
			}
		}
	}

	return nil
}
