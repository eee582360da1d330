package thermal

import (
	"github.com/Fepozopo/thermview/pkg/canvas"
	"github.com/Fepozopo/thermview/pkg/palette"
	"github.com/Fepozopo/thermview/pkg/therr"
)

// Export renders ctx.Intensity through the given palette into a freshly
// allocated canvas the caller owns. Every point must resolve against the
// palette; a point whose value falls in a gap the palette doesn't cover is
// an ImageShape error (spec.md §4.4's export operation).
func Export(ctx *Context, idx palette.Index) (*canvas.Canvas, error) {
	if ctx == nil || ctx.Intensity == nil {
		return nil, therr.New(therr.NullInput, therr.Thermal, "export with no intensity image")
	}
	pal := palette.ByIndex(idx)
	if pal == nil {
		return nil, therr.New(therr.ImageShape, therr.Thermal, "export requires a known palette")
	}

	img := ctx.Intensity
	out, err := canvas.New(img.Width, img.Height)
	if err != nil {
		return nil, therr.Wrap(err, therr.AllocFail, therr.Thermal, "allocate export canvas")
	}

	cache := palette.NewCache(pal)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.at(x, y)
			entry, ok := cache.FindValue(p.Value)
			if !ok {
				out.Close()
				return nil, therr.New(therr.ImageShape, therr.Thermal, "intensity value not covered by palette")
			}
			if err := out.Set(x, y, entry.Color); err != nil {
				out.Close()
				return nil, therr.Wrap(err, therr.CalleeFail, therr.Thermal, "write export pixel")
			}
		}
	}
	return out, nil
}
