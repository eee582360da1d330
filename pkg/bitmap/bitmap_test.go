package bitmap

import (
	"bytes"
	"testing"

	"github.com/Fepozopo/thermview/pkg/canvas"
)

func makeTestCanvas(t *testing.T) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(6, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			_ = c.Set(x, y, canvas.RGB888(uint8(x*40), uint8(y*60), uint8(100)))
		}
	}
	return c
}

func TestRoundTrip16(t *testing.T) { testRoundTrip(t, 16) }
func TestRoundTrip24(t *testing.T) { testRoundTrip(t, 24) }
func TestRoundTrip32(t *testing.T) { testRoundTrip(t, 32) }

func testRoundTrip(t *testing.T, bpp int) {
	src := makeTestCanvas(t)
	var buf bytes.Buffer
	if err := Save(&buf, src, bpp); err != nil {
		t.Fatalf("Save(%d) failed: %v", bpp, err)
	}
	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load(%d) failed: %v", bpp, err)
	}
	if got.Width != src.Width || got.Height != src.Height {
		t.Fatalf("dimension mismatch: got %dx%d want %dx%d", got.Width, got.Height, src.Width, src.Height)
	}
	for i := range src.Pixels {
		if got.Pixels[i] != src.Pixels[i] {
			t.Fatalf("pixel %d mismatch: got %v want %v", i, got.Pixels[i], src.Pixels[i])
		}
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	if _, err := Load(bytes.NewReader(make([]byte, 64))); err == nil {
		t.Fatalf("expected error for missing BM magic")
	}
}
