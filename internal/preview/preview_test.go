package preview

import (
	"bytes"
	"encoding/base64"
	"os"
	"strings"
	"testing"

	"github.com/Fepozopo/thermview/pkg/canvas"
)

func makeTestCanvas(t *testing.T, w, h int) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(w, h)
	if err != nil {
		t.Fatalf("canvas.New: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if err := c.Set(x, y, canvas.Color(uint16((x+y)%2*0xFFFF))); err != nil {
				t.Fatalf("Set(%d,%d): %v", x, y, err)
			}
		}
	}
	return c
}

func withInlineTerminal(t *testing.T) {
	t.Helper()
	os.Setenv("TERM_PROGRAM", "WezTerm")
	oldTerm := os.Getenv("TERM")
	os.Setenv("TERM", "xterm-256color")
	t.Cleanup(func() {
		os.Unsetenv("TERM_PROGRAM")
		if oldTerm == "" {
			os.Unsetenv("TERM")
		} else {
			os.Setenv("TERM", oldTerm)
		}
	})
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = old
	return buf.String()
}

// TestShowInlineSequence verifies Show emits an OSC 1337 inline-image
// sequence for a decoded canvas when the terminal looks inline-capable.
func TestShowInlineSequence(t *testing.T) {
	c := makeTestCanvas(t, 174, 220)
	defer c.Close()
	withInlineTerminal(t)

	out := captureStdout(t, func() {
		if err := Show(c, Options{}); err != nil {
			t.Fatalf("Show: %v", err)
		}
	})

	if !strings.Contains(out, "\x1b]1337") {
		t.Fatalf("expected inline 1337 sequence in output, got: %q", out)
	}
}

// TestShowEncodesJPEG ensures Options.Format=="jpeg" carries through to
// the embedded payload (JPEG SOI marker 0xFF 0xD8).
func TestShowEncodesJPEG(t *testing.T) {
	c := makeTestCanvas(t, 8, 8)
	defer c.Close()
	withInlineTerminal(t)

	out := captureStdout(t, func() {
		if err := Show(c, Options{Format: "jpeg"}); err != nil {
			t.Fatalf("Show: %v", err)
		}
	})

	idx := strings.Index(out, ":")
	if idx < 0 {
		t.Fatalf("no ':' found in output: %q", out)
	}
	payload := out[idx+1:]
	if bi := strings.IndexAny(payload, "\a\x1b"); bi >= 0 {
		payload = payload[:bi]
	}
	dec, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("base64 decode: %v", err)
	}
	if len(dec) < 2 || dec[0] != 0xFF || dec[1] != 0xD8 {
		t.Fatalf("expected JPEG SOI bytes, got: %x", dec[:2])
	}
}

// TestShowNilCanvas ensures a nil canvas is rejected rather than
// panicking on canvas.Canvas.ToImage.
func TestShowNilCanvas(t *testing.T) {
	if err := Show(nil, Options{}); err == nil {
		t.Fatal("expected error for nil canvas")
	}
}

func TestComputePreviewSizeClamps(t *testing.T) {
	size := computePreviewSize(174, 220)
	if size.Cols < minCols || size.Cols > maxCols {
		t.Fatalf("cols %d out of clamp range [%d,%d]", size.Cols, minCols, maxCols)
	}
	if size.Rows < minRows || size.Rows > maxRows {
		t.Fatalf("rows %d out of clamp range [%d,%d]", size.Rows, minRows, maxRows)
	}
	if size.PixelWidth != 174 || size.PixelHeight != 220 {
		t.Fatalf("expected native pixel dims preserved, got %+v", size)
	}
}

func TestPostImageNewlinesClampsToMaxRows(t *testing.T) {
	if got := postImageNewlines(maxRows + 50); got != maxRows {
		t.Fatalf("postImageNewlines(%d) = %d, want %d", maxRows+50, got, maxRows)
	}
	if got := postImageNewlines(0); got != 1 {
		t.Fatalf("postImageNewlines(0) = %d, want 1", got)
	}
}
