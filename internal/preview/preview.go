// Package preview renders a decoded thermview canvas inline in the
// terminal, the way decode --preview shows a render without needing an
// --out path. It detects which inline-image protocol the terminal
// supports (kitty graphics, iTerm2, sixel, or chafa block art) and
// falls back through that list in order; PREVIEW_BACKEND forces one.
package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/thermview/pkg/canvas"
)

var previewDebug bool

func init() {
	_ = godotenv.Load()
	previewDebug = os.Getenv("THERMVIEW_PREVIEW_DEBUG") != ""
}

func debugf(format string, args ...interface{}) {
	if previewDebug {
		fmt.Fprintf(os.Stderr, "thermview-preview: "+format+"\n", args...)
	}
}

// Options controls how Show encodes and sizes a canvas before handing it
// to the terminal.
type Options struct {
	// Format is the stdlib image codec to use: "png" (default) or
	// "jpeg". Ignored when Thumbnail is set, since the ImageMagick
	// thumbnail path always re-encodes to PNG.
	Format string

	// Thumbnail routes the canvas through ImageMagick's thumbnail filter
	// (imagick.go) before sending, for decode --preview-thumbnail. Show
	// passes the canvas's own width and height as the target size, so the
	// image is re-encoded by ImageMagick at its native size; it is not
	// shrunk to the terminal-cell footprint.
	Thumbnail bool
}

// Show renders c inline in the terminal using whichever protocol
// PreviewSupported finds, or returns an error if none is available.
func Show(c *canvas.Canvas, opts Options) error {
	if c == nil {
		return fmt.Errorf("preview: nil canvas")
	}
	format := opts.Format
	if format == "" {
		format = "png"
	}

	img := c.ToImage()

	var blob []byte
	var err error
	if opts.Thumbnail {
		blob, err = imagickThumbnail(img, c.Width, c.Height)
		format = "png"
	} else {
		blob, err = encode(img, format)
	}
	if err != nil {
		return err
	}

	size := computePreviewSize(c.Width, c.Height)
	debugf("encoded %d bytes as %s, size=%+v thumbnail=%v", len(blob), format, size, opts.Thumbnail)
	return send(blob, format, size)
}

func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		format = "png"
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	}
	// kitty only reliably decodes PNG through this code path; force it
	// regardless of the caller's requested format.
	if isKitty() && format != "png" {
		buf.Reset()
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png for kitty: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := os.Getenv("TERM")
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") || strings.Contains(term, "ghost") {
		return true
	}
	if os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	return false
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby", "Bobcat":
		return true
	}
	term := os.Getenv("TERM")
	if strings.Contains(term, "iterm") || strings.Contains(term, "wezterm") {
		return true
	}
	return os.Getenv("ITERM_SESSION_ID") != ""
}

func isSixelCapable() bool {
	if os.Getenv("SIXEL_PREVIEW") != "" {
		return true
	}
	term := os.Getenv("TERM")
	if strings.Contains(term, "foot") || strings.Contains(term, "st") || strings.Contains(term, "linux") {
		return true
	}
	return os.Getenv("WT_SESSION") != ""
}

func hasChafa() bool {
	if os.Getenv("CHAFAPREVIEW") != "" {
		return true
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether any inline-image backend is
// detected. decode does not consult it; it calls Show and logs Show's
// error.
func PreviewSupported() bool {
	return isKitty() || isInlineImageCapable() || isSixelCapable() || hasChafa()
}

// previewSize describes the terminal-cell footprint a render should
// request from whichever backend ends up drawing it.
type previewSize struct {
	Cols, Rows              int
	PixelWidth, PixelHeight int
}

const (
	charCellW = 8
	charCellH = 16

	minCols, maxCols = 6, 80
	minRows, maxRows = 3, 40
)

// computePreviewSize maps a canvas's native pixel dimensions (174x220
// for a decoded screenshot, larger after --scale) onto a terminal cell
// box, clamped to something that fits a normal window without the
// caller needing to know the active font metrics.
func computePreviewSize(w, h int) previewSize {
	cols := int(math.Ceil(float64(w) / charCellW))
	rows := int(math.Ceil(float64(h) / charCellH))
	if cols < minCols {
		cols = minCols
	} else if cols > maxCols {
		cols = maxCols
	}
	if rows < minRows {
		rows = minRows
	} else if rows > maxRows {
		rows = maxRows
	}
	return previewSize{Cols: cols, Rows: rows, PixelWidth: w, PixelHeight: h}
}

// postImageNewlines returns how many trailing newlines to emit after an
// inline image so the shell prompt lands below it instead of beside it.
func postImageNewlines(rows int) int {
	if rows <= 0 {
		return 1
	}
	if rows > maxRows {
		rows = maxRows
	}
	return rows
}

// send dispatches blob to whichever backend is active, honoring a
// PREVIEW_BACKEND override ("kitty", "iterm", "sixel", "chafa") ahead
// of auto-detection.
func send(blob []byte, format string, size previewSize) error {
	switch strings.ToLower(os.Getenv("PREVIEW_BACKEND")) {
	case "kitty":
		return sendKitty(blob, size)
	case "iterm", "inline":
		return sendInline(blob, size)
	case "sixel":
		return sendSixel(blob, size)
	case "chafa":
		return sendChafa(blob, size)
	}

	switch {
	case isKitty():
		debugf("backend: kitty")
		return sendKitty(blob, size)
	case isInlineImageCapable():
		debugf("backend: inline (iTerm2 OSC 1337)")
		return sendInline(blob, size)
	case isSixelCapable():
		debugf("backend: sixel")
		return sendSixel(blob, size)
	case hasChafa():
		debugf("backend: chafa")
		return sendChafa(blob, size)
	default:
		return fmt.Errorf("preview: no inline-image backend detected (kitty/iTerm2/sixel/chafa)")
	}
}

// chunkedBase64 feeds fn successive base64 chunks of data no larger
// than chunkSize, marking the final call with last=true. The kitty
// graphics protocol requires chunking above 4096 bytes per escape.
func chunkedBase64(data []byte, chunkSize int, fn func(chunk string, last bool)) {
	encoded := base64.StdEncoding.EncodeToString(data)
	if len(encoded) == 0 {
		fn("", true)
		return
	}
	for i := 0; i < len(encoded); i += chunkSize {
		end := i + chunkSize
		last := end >= len(encoded)
		if last {
			end = len(encoded)
		}
		fn(encoded[i:end], last)
	}
}

func sendKitty(data []byte, size previewSize) error {
	const chunkSize = 4096
	first := true
	chunkedBase64(data, chunkSize, func(chunk string, last bool) {
		m := "1"
		if last {
			m = "0"
		}
		if first {
			fmt.Printf("\x1b_Ga=T,f=100,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, m, chunk)
			first = false
			return
		}
		fmt.Printf("\x1b_Gm=%s;%s\x1b\\", m, chunk)
	})
	fmt.Print(strings.Repeat("\n", postImageNewlines(size.Rows)))
	return nil
}

func sendInline(data []byte, size previewSize) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	fmt.Printf("\x1b]1337;File=inline=1;width=%dpx;height=%dpx:%s\a",
		size.PixelWidth, size.PixelHeight, encoded)
	fmt.Print(strings.Repeat("\n", postImageNewlines(size.Rows)))
	return nil
}

func sendSixel(data []byte, size previewSize) error {
	if path, err := exec.LookPath("img2sixel"); err == nil {
		cmd := exec.Command(path, "-w", fmt.Sprintf("%d", size.PixelWidth))
		cmd.Stdin = bytes.NewReader(data)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err == nil {
			fmt.Print(strings.Repeat("\n", postImageNewlines(size.Rows)))
			return nil
		}
		debugf("img2sixel failed, falling back to chafa")
	}
	if hasChafa() {
		return sendChafa(data, size)
	}
	debugf("no sixel renderer available, falling back to inline base64")
	return sendInline(data, size)
}

func sendChafa(data []byte, size previewSize) error {
	path, err := exec.LookPath("chafa")
	if err != nil {
		return fmt.Errorf("preview: chafa not found in PATH: %w", err)
	}
	geometry := fmt.Sprintf("%dx%d", size.Cols, size.Rows)
	cmd := exec.Command(path, "--fill=block", "--symbols=block", "-s", geometry)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("preview: chafa: %w", err)
	}
	return nil
}
