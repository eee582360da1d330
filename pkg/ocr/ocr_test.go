package ocr

import (
	"testing"

	"github.com/Fepozopo/thermview/pkg/canvas"
)

// paintGlyph stamps the sample pixels for signature sig at (ox,oy) so that
// RecognizeGlyph reconstructs exactly sig back out. Every other pixel in the
// glyph's box is left at background (non-Foreground).
func paintGlyph(t *testing.T, c *canvas.Canvas, ox, oy int, f Font, sig byte) {
	t.Helper()
	spec := specFor(f)
	for y := 0; y < spec.height; y++ {
		for x := 0; x < spec.width; x++ {
			if err := c.Set(ox+x, oy+y, canvas.Black); err != nil {
				t.Fatalf("Set background: %v", err)
			}
		}
	}
	for i, s := range spec.samples {
		if sig&(1<<uint(i)) == 0 {
			continue
		}
		if err := c.Set(ox+s.dx, oy+s.dy, Foreground); err != nil {
			t.Fatalf("Set sample: %v", err)
		}
	}
}

func TestRecognizeGlyphRoundTrip(t *testing.T) {
	c, err := canvas.New(40, 30)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	sig, ok := SignatureFor(Large, '7')
	if !ok {
		t.Fatalf("expected '7' to be present in LARGE table")
	}
	paintGlyph(t, c, 2, 2, Large, sig)

	got, err := RecognizeGlyph(c, 2, 2, Large)
	if err != nil {
		t.Fatalf("RecognizeGlyph failed: %v", err)
	}
	if got != '7' {
		t.Fatalf("expected '7', got %q", got)
	}
}

func TestRecognizeGlyphUnknownSignature(t *testing.T) {
	c, err := canvas.New(40, 30)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// every LARGE table signature is < 17; 200 can't be a valid glyph.
	paintGlyph(t, c, 0, 0, Large, 200)

	got, err := RecognizeGlyph(c, 0, 0, Large)
	if err != nil {
		t.Fatalf("RecognizeGlyph failed: %v", err)
	}
	if got != Unknown {
		t.Fatalf("expected Unknown, got %q", got)
	}
}

func TestRecognizeStringRoundTrip(t *testing.T) {
	spec := specFor(Small)
	pitch := 2
	chars := []rune{'1', '2', '.', '3'}
	width := len(chars)*spec.width + (len(chars)-1)*pitch

	c, err := canvas.New(width+4, spec.height+4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	x := 1
	for _, ch := range chars {
		sig, ok := SignatureFor(Small, ch)
		if !ok {
			t.Fatalf("expected %q to be present in SMALL table", ch)
		}
		paintGlyph(t, c, x, 1, Small, sig)
		x += spec.width + pitch
	}

	got, err := RecognizeString(c, 1, 1, pitch, len(chars), 0, Small)
	if err != nil {
		t.Fatalf("RecognizeString failed: %v", err)
	}
	if got != "12.3" {
		t.Fatalf("expected %q, got %q", "12.3", got)
	}
}

func TestRecognizeStringRejectsOverflow(t *testing.T) {
	c, err := canvas.New(20, 20)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := RecognizeString(c, 0, 0, 0, 5, 0, Small); err == nil {
		t.Fatalf("expected overflow rejection for a string that doesn't fit")
	}
}

func TestRecognizeStringUnknownBudget(t *testing.T) {
	spec := specFor(Small)
	c, err := canvas.New(spec.width*3+4, spec.height+4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// two unrecognizable glyphs in a row.
	paintGlyph(t, c, 1, 1, Small, 200)
	paintGlyph(t, c, 1+spec.width, 1, Small, 201)

	if _, err := RecognizeString(c, 1, 1, 0, 2, 0, Small); err == nil {
		t.Fatalf("expected budget-exceeded error with maxUnknown=0 and 2 unknown glyphs")
	}
	got, err := RecognizeString(c, 1, 1, 0, 2, 2, Small)
	if err != nil {
		t.Fatalf("RecognizeString with sufficient budget failed: %v", err)
	}
	if got != "" {
		t.Fatalf("expected unknown glyphs to be skipped, got %q", got)
	}
}
