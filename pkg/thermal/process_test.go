package thermal

import (
	"testing"

	"github.com/Fepozopo/thermview/pkg/canvas"
	"github.com/Fepozopo/thermview/pkg/locator"
	"github.com/Fepozopo/thermview/pkg/palette"
)

func makeFlatContext(t *testing.T, w, h int, fill func(x, y int) (canvas.Color, locator.Class)) *Context {
	t.Helper()
	c, err := canvas.New(w, h)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}
	mask := make([]locator.Class, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col, class := fill(x, y)
			if err := c.Set(x, y, col); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			mask[y*w+x] = class
		}
	}
	return &Context{VisibleImage: c, Mask: mask, MaskWidth: w, MaskHeight: h, PaletteIndex: palette.Iron}
}

// TestProcessFloorRoundTrip covers scenario 1 of spec.md §8: every palette
// entry's color, when inverted with FLOOR, recovers exactly entry.Base.
func TestProcessFloorRoundTrip(t *testing.T) {
	entries := palette.IRON.Entries
	ctx := makeFlatContext(t, len(entries), 1, func(x, y int) (canvas.Color, locator.Class) {
		return entries[x].Color, locator.Image
	})
	if err := Process(ctx, Zero, Floor); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	for i, e := range entries {
		p := ctx.Intensity.at(i, 0)
		if p.Value != e.Base || p.Uncertainty != e.Width {
			t.Fatalf("entry %d: expected (%d,%d), got (%d,%d)", i, e.Base, e.Width, p.Value, p.Uncertainty)
		}
	}

	out, err := Export(ctx, palette.Iron)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	for i, e := range entries {
		col, err := out.Get(i, 0)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if col != e.Color {
			t.Fatalf("entry %d: expected color %#04x, got %#04x", i, e.Color, col)
		}
	}
}

// TestProcessExactRejectsWideEntry documents that EXACT quantization only
// accepts width-1 palette entries; our synthesized palettes bucket the full
// 0..255 range into equal-width bands, so every entry has width > 1 and
// EXACT always fails loudly rather than silently truncating.
func TestProcessExactRejectsWideEntry(t *testing.T) {
	entries := palette.IRON.Entries
	if entries[0].Width == 1 {
		t.Skip("synthesized palette unexpectedly has a width-1 entry")
	}
	ctx := makeFlatContext(t, 1, 1, func(x, y int) (canvas.Color, locator.Class) {
		return entries[0].Color, locator.Image
	})
	if err := Process(ctx, Zero, Exact); err == nil {
		t.Fatalf("expected AssertFail for EXACT over a width>1 entry")
	}
}

// TestProcessCrosshairSquareSmall covers scenario 2 of spec.md §8: a 5x5
// canvas solid in the color of the entry covering intensity 100, except a
// CROSSHAIR center pixel, interpolates the center back to that entry's FLOOR
// value (its Base) with uncertainty 1 under SQUARE_SMALL.
func TestProcessCrosshairSquareSmall(t *testing.T) {
	entries := palette.IRON.Entries
	var solid palette.Entry
	for _, e := range entries {
		if e.Contains(100) {
			solid = e
			break
		}
	}
	ctx := makeFlatContext(t, 5, 5, func(x, y int) (canvas.Color, locator.Class) {
		if x == 2 && y == 2 {
			return canvas.Color(0x1234), locator.Crosshair
		}
		return solid.Color, locator.Image
	})
	if err := Process(ctx, SquareSmall, Floor); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	p := ctx.Intensity.at(2, 2)
	if p.Value != solid.Base {
		t.Fatalf("expected interpolated value %d, got %d", solid.Base, p.Value)
	}
	if p.Uncertainty != 1 {
		t.Fatalf("expected uncertainty 1 for interpolated pixel, got %d", p.Uncertainty)
	}
}

// TestProcessZeroInterpolationSkipsPass2 covers scenario 6: with ZERO
// interpolation, every CROSSHAIR pixel ends at value 0, uncertainty 1, and
// skip accounting still reaches zero.
func TestProcessZeroInterpolationSkipsPass2(t *testing.T) {
	entries := palette.IRON.Entries
	ctx := makeFlatContext(t, 3, 3, func(x, y int) (canvas.Color, locator.Class) {
		if x == 1 && y == 1 {
			return canvas.Color(0x4321), locator.Crosshair
		}
		return entries[0].Color, locator.Image
	})
	if err := Process(ctx, Zero, Floor); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	p := ctx.Intensity.at(1, 1)
	if p.Value != 0 || p.Uncertainty != 1 {
		t.Fatalf("expected zero-filled (0,1), got (%d,%d)", p.Value, p.Uncertainty)
	}
	for i, class := range ctx.Mask {
		if class != locator.Image && !(i == 4) {
			t.Fatalf("expected all non-center pixels to remain IMAGE, index %d is %v", i, class)
		}
	}
}

func TestProcessRejectsDoubleRun(t *testing.T) {
	entries := palette.IRON.Entries
	ctx := makeFlatContext(t, 1, 1, func(x, y int) (canvas.Color, locator.Class) {
		return entries[0].Color, locator.Image
	})
	if err := Process(ctx, Zero, Floor); err != nil {
		t.Fatalf("first Process failed: %v", err)
	}
	if err := Process(ctx, Zero, Floor); err == nil {
		t.Fatalf("expected error re-running Process on a context with an existing intensity image")
	}
}
