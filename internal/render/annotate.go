// Package render draws text onto a decoded image for the CLI's optional
// --annotate flag, adapted from the teacher's stdimg.Annotate
// (pkg/stdimg/annotate.go) but narrowed to the basic built-in font —
// thermview has no use for the teacher's TTF-file loading path since the
// only text it ever draws is its own OCR'd temperature/emissivity readout.
package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Annotate draws text onto src at pixel position (x, y) in col, returning a
// new image. src is not modified.
func Annotate(src *image.NRGBA, text string, x, y int, col color.Color) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("annotate: nil source image")
	}
	out := image.NewNRGBA(src.Bounds())
	copy(out.Pix, src.Pix)

	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
	return out, nil
}
