package cmd

import (
	"fmt"
	"image/color"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/thermview/internal/preview"
	"github.com/Fepozopo/thermview/internal/render"
	"github.com/Fepozopo/thermview/pkg/bitmap"
	"github.com/Fepozopo/thermview/pkg/canvas"
	"github.com/Fepozopo/thermview/pkg/locator"
	"github.com/Fepozopo/thermview/pkg/palette"
	"github.com/Fepozopo/thermview/pkg/thermal"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <screenshot.bmp>",
		Short: "recover a temperature grid from a thermal-camera screenshot",
		Long: "decode locates the crosshair and OSD text in a 174x220 BMP " +
			"screenshot, OCRs the spot temperature and emissivity, inverts " +
			"the false-color palette into per-pixel temperature, and writes " +
			"the result back out as a BMP — either re-rendered in a chosen " +
			"palette, or restamped with the crosshair outline.",
		Args: cobra.ExactArgs(1),
		RunE: runDecode,
	}

	pf := cmd.Flags()
	pf.StringP("out", "o", "", "output BMP path (required unless --preview is set)")
	pf.String("palette", "", "output palette: "+modeNames(paletteNames())+" (default: determined input palette)")
	pf.String("interpolation", "", "interpolation mode: "+modeNames(sortedKeys(thermal.InterpolationModes())))
	pf.String("quantization", "", "quantization mode: "+modeNames(sortedKeys(thermal.QuantizationModes())))
	pf.Int("max-palette-errors", 0, "count of unmatched pixels at which palette determination fails (0 fails on the first; -1 = unlimited)")
	pf.Int("max-unknown-glyphs", 0, "tolerated unrecognized OCR glyphs per field (-1 = unlimited)")
	pf.Bool("stamp", false, "restamp the crosshair outline onto the output instead of leaving it painted through")
	pf.String("border-color", "black", "crosshair border color for --stamp")
	pf.String("fill-color", "white", "crosshair fill color for --stamp")
	pf.Float64("scale", 0, "if set, resample the output to this multiple of its native size")
	pf.Bool("preview", false, "render the output inline in the terminal (kitty/iTerm2/sixel/chafa)")
	pf.Bool("preview-thumbnail", false, "with --preview, pass the render through ImageMagick's thumbnail filter at its own size before sending")
	pf.Bool("annotate", false, "draw the recognized spot temperature and emissivity onto the output")
	return cmd
}

func paletteNames() []string {
	return []string{"iron", "grayscale", "rainbow"}
}

func paletteByName(name string) (palette.Index, error) {
	switch name {
	case "iron":
		return palette.Iron, nil
	case "grayscale":
		return palette.Grayscale, nil
	case "rainbow":
		return palette.Rainbow, nil
	default:
		return palette.Unknown, fmt.Errorf("unknown palette %q (want one of %s)", name, modeNames(paletteNames()))
	}
}

func runDecode(cmd *cobra.Command, args []string) error {
	log := loggerFrom(cmd)
	cfg := configFrom(cmd)

	inPath := args[0]
	outPath, _ := cmd.Flags().GetString("out")
	paletteName, _ := cmd.Flags().GetString("palette")
	if paletteName == "" {
		paletteName = cfg.Palette
	}
	interpName, _ := cmd.Flags().GetString("interpolation")
	if interpName == "" {
		interpName = cfg.Interpolation
	}
	quantName, _ := cmd.Flags().GetString("quantization")
	if quantName == "" {
		quantName = cfg.Quantization
	}
	maxPaletteErrors, _ := cmd.Flags().GetInt("max-palette-errors")
	maxUnknownGlyphs, _ := cmd.Flags().GetInt("max-unknown-glyphs")
	stamp, _ := cmd.Flags().GetBool("stamp")
	borderColorName, _ := cmd.Flags().GetString("border-color")
	fillColorName, _ := cmd.Flags().GetString("fill-color")
	scale, _ := cmd.Flags().GetFloat64("scale")
	doPreview, _ := cmd.Flags().GetBool("preview")
	previewThumbnail, _ := cmd.Flags().GetBool("preview-thumbnail")
	doAnnotate, _ := cmd.Flags().GetBool("annotate")

	if outPath == "" && !doPreview {
		return fatalf("decode: --out is required unless --preview is set")
	}

	interp, ok := thermal.InterpolationModes()[interpName]
	if !ok {
		return fatalf("decode: unknown interpolation %q (want one of %s)", interpName, modeNames(sortedKeys(thermal.InterpolationModes())))
	}
	quant, ok := thermal.QuantizationModes()[quantName]
	if !ok {
		return fatalf("decode: unknown quantization %q (want one of %s)", quantName, modeNames(sortedKeys(thermal.QuantizationModes())))
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer in.Close()

	shot, err := bitmap.Load(in)
	if err != nil {
		return fmt.Errorf("load %s: %w", inPath, err)
	}
	defer shot.Close()
	log.Debug("loaded screenshot", "path", inPath, "width", shot.Width, "height", shot.Height)

	loc, err := locator.Process(shot)
	if err != nil {
		return fmt.Errorf("locate: %w", err)
	}
	log.Debug("located crosshair", "model", loc.Model)

	ctx, err := thermal.Create(loc)
	if err != nil {
		return fmt.Errorf("build thermal context: %w", err)
	}
	defer ctx.Close()

	if err := thermal.OCR(ctx, maxUnknownGlyphs); err != nil {
		log.Warn("osd text recognition failed", "error", err)
	} else {
		log.Debug("recognized osd text", "spot_tenths_c", ctx.TemperatureSpot, "emissivity_pct", ctx.Emissivity)
	}

	if err := thermal.Determine(ctx, maxPaletteErrors); err != nil {
		return fmt.Errorf("determine input palette: %w", err)
	}
	log.Debug("determined input palette", "palette", ctx.PaletteIndex)

	if err := thermal.Process(ctx, interp, quant); err != nil {
		return fmt.Errorf("recover intensity: %w", err)
	}
	log.Debug("recovered intensity", "min", ctx.ValueMin, "max", ctx.ValueMax, "median", ctx.ValueMedian)

	outIdx := ctx.PaletteIndex
	if paletteName != "" {
		outIdx, err = paletteByName(paletteName)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}

	out, err := thermal.Export(ctx, outIdx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer out.Close()

	if stamp {
		borderColor, err := parseColor(borderColorName)
		if err != nil {
			return fmt.Errorf("decode: --border-color: %w", err)
		}
		fillColor, err := parseColor(fillColorName)
		if err != nil {
			return fmt.Errorf("decode: --fill-color: %w", err)
		}
		if err := thermal.Stamp(ctx, borderColor, fillColor, out); err != nil {
			return fmt.Errorf("stamp crosshair: %w", err)
		}
	}

	rendered := out
	if doAnnotate {
		label := fmt.Sprintf("%.1fC E:0.%02d", float64(ctx.TemperatureSpot)/10, ctx.Emissivity)
		annotated, err := render.Annotate(rendered.ToImage(), label, 2, rendered.Height-4, color.White)
		if err != nil {
			return fmt.Errorf("annotate: %w", err)
		}
		annotatedCanvas, err := canvas.FromImage(annotated)
		if err != nil {
			return fmt.Errorf("annotate: %w", err)
		}
		defer annotatedCanvas.Close()
		rendered = annotatedCanvas
	}
	if scale > 0 {
		scaled, err := rendered.Scale(int(float64(rendered.Width)*scale), int(float64(rendered.Height)*scale), 3.0)
		if err != nil {
			return fmt.Errorf("scale output: %w", err)
		}
		defer scaled.Close()
		rendered = scaled
	}

	if doPreview {
		if err := preview.Show(rendered, preview.Options{Thumbnail: previewThumbnail}); err != nil {
			log.Warn("terminal preview failed", "error", err)
		}
	}

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := bitmap.Save(f, rendered, 24); err != nil {
			return fmt.Errorf("save %s: %w", outPath, err)
		}
		log.Debug("wrote output", "path", outPath)
	}

	return nil
}
