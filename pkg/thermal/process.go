package thermal

import (
	"github.com/Fepozopo/thermview/pkg/locator"
	"github.com/Fepozopo/thermview/pkg/palette"
	"github.com/Fepozopo/thermview/pkg/therr"
)

// Process inverts the determined palette over ctx.VisibleImage into a fresh
// intensity image, quantizing palette-matched pixels per quant and filling
// crosshair-occluded (and lookup-miss) pixels per interp (spec.md §4.4).
// Running it twice on the same context without destroying the prior
// intensity image is rejected.
func Process(ctx *Context, interp Interpolation, quant Quantization) error {
	if ctx == nil || ctx.VisibleImage == nil {
		return therr.New(therr.NullInput, therr.Thermal, "process on context with no IR image")
	}
	if ctx.Intensity != nil {
		return therr.New(therr.AssertFail, therr.Thermal, "process called on context with existing intensity image")
	}
	pal := palette.ByIndex(ctx.PaletteIndex)
	if pal == nil {
		return therr.New(therr.ImageShape, therr.Thermal, "process requires a determined palette")
	}

	w, h := ctx.VisibleImage.Width, ctx.VisibleImage.Height
	img := newIntensityImage(w, h, quant)
	cache := palette.NewCache(pal)

	skipped := 0
	startY := -1
	valueMin, valueMax := 0, 0
	sum, count := 0, 0

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			class := ctx.maskAt(x, y)
			switch class {
			case locator.Image:
				col, err := ctx.VisibleImage.Get(x, y)
				if err != nil {
					return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "read IR pixel")
				}
				entry, ok := cache.FindColor(col)
				if !ok {
					ctx.setMaskAt(x, y, locator.Invalid)
					skipped++
					if startY < 0 {
						startY = y
					}
					continue
				}
				val, uncertainty, err := quantize(entry, quant)
				if err != nil {
					return err
				}
				img.set(x, y, Point{Value: val, Uncertainty: uncertainty})
				if count == 0 {
					valueMin, valueMax = val, val
				} else {
					if val < valueMin {
						valueMin = val
					}
					if val > valueMax {
						valueMax = val
					}
				}
				sum += val
				count++

			case locator.Crosshair:
				skipped++
				if startY < 0 {
					startY = y
				}
				if interp == Zero {
					img.set(x, y, Point{Value: 0, Uncertainty: 1})
				}

			default:
				return therr.New(therr.AssertFail, therr.Thermal, "mask entry is neither IMAGE nor CROSSHAIR")
			}
		}
	}

	if valueMin > valueMax {
		return therr.New(therr.AssertFail, therr.Thermal, "value_min exceeds value_max")
	}
	median := 0
	if count > 0 {
		median = sum / count
	}
	ctx.ValueMin, ctx.ValueMax, ctx.ValueMedian = valueMin, valueMax, median
	ctx.Intensity = img

	if skipped == 0 {
		return nil
	}
	if startY < 0 || count == 0 {
		return therr.New(therr.AssertFail, therr.Thermal, "pixels skipped but no image data to interpolate from")
	}

	for y := startY; y < h; y++ {
		for x := 0; x < w; x++ {
			class := ctx.maskAt(x, y)
			if class != locator.Crosshair && class != locator.Invalid {
				continue
			}
			skipped--
			if class == locator.Invalid {
				ctx.setMaskAt(x, y, locator.Image)
			}
			val := interpolate(ctx, img, x, y, interp, valueMin, valueMax, median)
			img.set(x, y, Point{Value: val, Uncertainty: 1})
		}
	}

	if skipped != 0 {
		return therr.New(therr.AssertFail, therr.Thermal, "skip accounting did not reach zero")
	}
	return nil
}

// quantize applies one of the five collapse policies from spec.md §4.4's
// pass-1 table to a matched palette entry.
func quantize(entry palette.Entry, quant Quantization) (int, int, error) {
	switch quant {
	case Exact:
		if entry.Width != 1 {
			return 0, 0, therr.New(therr.AssertFail, therr.Thermal, "exact quantization requires width 1")
		}
		return entry.Base, entry.Width, nil
	case Floor:
		return entry.Base, entry.Width, nil
	case Ceiling:
		return entry.Base + entry.Width - 1, entry.Width, nil
	case MedianLow:
		return entry.Base + (entry.Width-1)/2, entry.Width, nil
	case MedianHigh:
		return entry.Base + entry.Width/2, entry.Width, nil
	default:
		return 0, 0, therr.New(therr.AssertFail, therr.Thermal, "unknown quantization mode")
	}
}

// interpolate computes the fill value for a crosshair/invalid pixel per
// spec.md §4.4's pass-2 table. Square kernels only consider pixels the mask
// currently classifies IMAGE — which, within this same pass, includes
// earlier pixels already promoted from INVALID, letting infill propagate
// row by row.
func interpolate(ctx *Context, img *IntensityImage, x, y int, interp Interpolation, valueMin, valueMax, median int) int {
	switch interp {
	case Zero:
		return 0
	case Min:
		return valueMin
	case Max:
		return valueMax
	case Med:
		return median
	case SquareSmall:
		sum, count := accumulateUniform(ctx, img, x, y, 2)
		return meanOrZero(sum, count)
	case SquareWeight:
		sum, count := accumulateWeighted(ctx, img, x, y)
		return meanOrZero(sum, count)
	case SquareLarge:
		largeSum, largeCount := accumulateUniform(ctx, img, x, y, 6)
		weightSum, weightCount := accumulateWeighted(ctx, img, x, y)
		smallSum, smallCount := accumulateUniform(ctx, img, x, y, 2)
		return meanOrZero(largeSum+weightSum+smallSum, largeCount+weightCount+smallCount)
	default:
		return 0
	}
}

func meanOrZero(sum, count int) int {
	if count == 0 {
		return 0
	}
	return sum / count
}

// accumulateUniform sums Value over every IMAGE-classified pixel within
// [-radius,+radius] of (x,y) in both axes, skipping out-of-bounds and
// non-IMAGE neighbors, with unit weight.
func accumulateUniform(ctx *Context, img *IntensityImage, x, y, radius int) (sum, count int) {
	for dy := -radius; dy <= radius; dy++ {
		ny := y + dy
		if ny < 0 || ny >= ctx.MaskHeight {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			nx := x + dx
			if nx < 0 || nx >= ctx.MaskWidth {
				continue
			}
			if ctx.maskAt(nx, ny) != locator.Image {
				continue
			}
			sum += img.at(nx, ny).Value
			count++
		}
	}
	return sum, count
}

// accumulateWeighted implements SQUARE_WEIGHT: pixels within [-1,+1] count
// with weight 4, combined with unit-weight pixels within [-2,+2] (spec.md
// §4.4) — i.e. the inner 3x3 is summed twice over (once at weight 4, once
// again as part of the unit-weight 5x5 pass).
func accumulateWeighted(ctx *Context, img *IntensityImage, x, y int) (sum, count int) {
	innerSum, innerCount := accumulateUniform(ctx, img, x, y, 1)
	outerSum, outerCount := accumulateUniform(ctx, img, x, y, 2)
	return 4*innerSum + outerSum, 4*innerCount + outerCount
}
