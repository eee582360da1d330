// Package canvas implements the fixed-size RGB565 pixel buffer that every
// other thermview component reads and writes. It is deliberately thin: get
// and set with bounds checking, a bounds-checked region copy, and a clipping
// region merge, the way the teacher's stdimg package stays a thin wrapper
// over image.NRGBA (pkg/stdimg/imgutils.go) rather than growing its own
// abstraction.
package canvas

import "github.com/Fepozopo/thermview/pkg/therr"

// Canvas is a row-major width x height array of 16-bit colors. The zero
// value is not usable; construct with New.
type Canvas struct {
	Width  int
	Height int
	Pixels []Color
}

// New allocates a width x height canvas of black pixels. Width and height
// must each be >= 1.
func New(width, height int) (*Canvas, error) {
	if width < 1 || height < 1 {
		return nil, therr.New(therr.OutOfRange, therr.Canvas, "canvas dimensions must be >= 1")
	}
	return &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}, nil
}

// Close releases the backing buffer. Canvas has no destructor in the C
// sense, but Close nils the slice so a reused descriptor fails loudly
// instead of silently aliasing freed memory, matching spec.md §5's "every
// destructor frees and zeros its descriptor".
func (c *Canvas) Close() {
	if c == nil {
		return
	}
	c.Pixels = nil
	c.Width = 0
	c.Height = 0
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

func (c *Canvas) index(x, y int) int { return y*c.Width + x }

// Get returns the pixel at (x,y).
func (c *Canvas) Get(x, y int) (Color, error) {
	if c == nil || c.Pixels == nil {
		return 0, therr.New(therr.NullInput, therr.Canvas, "get on nil canvas")
	}
	if !c.inBounds(x, y) {
		return 0, therr.New(therr.OutOfRange, therr.Canvas, "get out of bounds")
	}
	return c.Pixels[c.index(x, y)], nil
}

// Set writes the pixel at (x,y).
func (c *Canvas) Set(x, y int, col Color) error {
	if c == nil || c.Pixels == nil {
		return therr.New(therr.NullInput, therr.Canvas, "set on nil canvas")
	}
	if !c.inBounds(x, y) {
		return therr.New(therr.OutOfRange, therr.Canvas, "set out of bounds")
	}
	c.Pixels[c.index(x, y)] = col
	return nil
}

// Copy extracts a w x h region at (ox,oy) into a newly allocated canvas.
// The source region must lie entirely within c.
func (c *Canvas) Copy(ox, oy, w, h int) (*Canvas, error) {
	if c == nil {
		return nil, therr.New(therr.NullInput, therr.Canvas, "copy from nil canvas")
	}
	if ox < 0 || oy < 0 || w < 1 || h < 1 || ox+w > c.Width || oy+h > c.Height {
		return nil, therr.New(therr.OutOfRange, therr.Canvas, "copy region out of bounds")
	}
	out, err := New(w, h)
	if err != nil {
		return nil, therr.Wrap(err, therr.AllocFail, therr.Canvas, "copy alloc")
	}
	for y := 0; y < h; y++ {
		srcRow := (oy + y) * c.Width
		dstRow := y * w
		copy(out.Pixels[dstRow:dstRow+w], c.Pixels[srcRow+ox:srcRow+ox+w])
	}
	return out, nil
}

// Merge blits a w x h region of src at (sox,soy) onto dst at (tox,toy),
// silently clipping any pixels that fall outside either canvas (the same
// clipping contract as spec.md §4.5's Canvas.merge).
func Merge(src *Canvas, sox, soy, tox, toy, w, h int, dst *Canvas) error {
	if src == nil || dst == nil {
		return therr.New(therr.NullInput, therr.Canvas, "merge with nil canvas")
	}
	for y := 0; y < h; y++ {
		sy := soy + y
		ty := toy + y
		if sy < 0 || sy >= src.Height || ty < 0 || ty >= dst.Height {
			continue
		}
		for x := 0; x < w; x++ {
			sx := sox + x
			tx := tox + x
			if sx < 0 || sx >= src.Width || tx < 0 || tx >= dst.Width {
				continue
			}
			dst.Pixels[dst.index(tx, ty)] = src.Pixels[src.index(sx, sy)]
		}
	}
	return nil
}
