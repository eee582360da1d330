package canvas

import "image"

// FromImage converts img back into a Canvas, truncating each 8-bit channel
// to 5:6:5. The inverse of ToImage; used after the CLI's --annotate pass
// re-encodes an NRGBA overlay back into the pipeline's native pixel format.
func FromImage(img *image.NRGBA) (*Canvas, error) {
	b := img.Bounds()
	c, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			if err := c.Set(x, y, RGB888(img.Pix[i], img.Pix[i+1], img.Pix[i+2])); err != nil {
				c.Close()
				return nil, err
			}
		}
	}
	return c, nil
}

// ToImage converts c to a standard library image.NRGBA, expanding each
// 5:6:5 channel back to 8 bits. Used only at the CLI boundary (terminal
// preview, debugging dumps) — the pipeline itself never touches image.Image.
func (c *Canvas) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			col := c.Pixels[c.index(x, y)]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = col.R8()
			img.Pix[i+1] = col.G8()
			img.Pix[i+2] = col.B8()
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}
