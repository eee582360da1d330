package canvas

import "math"

// Scale resamples c to dstW x dstH using Lanczos resampling with window a
// (commonly 3.0), adapted from the teacher's stdimg.ResampleLanczos
// (pkg/stdimg/resample.go) to operate on RGB565 Color pixels instead of
// image.NRGBA. It backs the CLI's optional --scale render flag (SPEC_FULL.md
// §2); the thermal pipeline itself never resizes an image.
func (c *Canvas) Scale(dstW, dstH int, a float64) (*Canvas, error) {
	out, err := New(dstW, dstH)
	if err != nil {
		return nil, err
	}
	srcW := float64(c.Width)
	srcH := float64(c.Height)
	xScale := srcW / float64(dstW)
	yScale := srcH / float64(dstH)

	for y := 0; y < dstH; y++ {
		sy := (float64(y)+0.5)*yScale - 0.5
		for x := 0; x < dstW; x++ {
			sx := (float64(x)+0.5)*xScale - 0.5
			sumR, sumG, sumB, weightSum := 0.0, 0.0, 0.0, 0.0
			xMin := int(math.Floor(sx - a + 1))
			xMax := int(math.Ceil(sx + a - 1))
			yMin := int(math.Floor(sy - a + 1))
			yMax := int(math.Ceil(sy + a - 1))
			for yi := yMin; yi <= yMax; yi++ {
				wy := lanczosKernel(float64(yi)-sy, a)
				cy := clampInt(yi, 0, c.Height-1)
				for xi := xMin; xi <= xMax; xi++ {
					wx := lanczosKernel(float64(xi)-sx, a)
					w := wx * wy
					cx := clampInt(xi, 0, c.Width-1)
					px := c.Pixels[c.index(cx, cy)]
					sumR += float64(px.R8()) * w
					sumG += float64(px.G8()) * w
					sumB += float64(px.B8()) * w
					weightSum += w
				}
			}
			if weightSum == 0 {
				weightSum = 1
			}
			r := clampFloatToUint8(sumR / weightSum)
			g := clampFloatToUint8(sumG / weightSum)
			b := clampFloatToUint8(sumB / weightSum)
			out.Pixels[out.index(x, y)] = RGB888(r, g, b)
		}
	}
	return out, nil
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x = math.Pi * x
	return math.Sin(x) / x
}

func lanczosKernel(x, a float64) float64 {
	x = math.Abs(x)
	if x < 1e-12 {
		return 1
	}
	if x >= a {
		return 0
	}
	return sinc(x) * sinc(x/a)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloatToUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
