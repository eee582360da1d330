package canvas

import "testing"

func makeSolidCanvas(w, h int, col Color) *Canvas {
	c, _ := New(w, h)
	for i := range c.Pixels {
		c.Pixels[i] = col
	}
	return c
}

func TestGetSetBounds(t *testing.T) {
	c, err := New(4, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := c.Set(1, 1, White); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := c.Get(1, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != White {
		t.Fatalf("got %v, want White", got)
	}
	if _, err := c.Get(4, 0); err == nil {
		t.Fatalf("expected out of range error")
	}
	if _, err := c.Get(-1, 0); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestCopyRegion(t *testing.T) {
	src := makeSolidCanvas(10, 10, Black)
	for x := 2; x < 5; x++ {
		for y := 2; y < 5; y++ {
			_ = src.Set(x, y, White)
		}
	}
	region, err := src.Copy(2, 2, 3, 3)
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	for _, p := range region.Pixels {
		if p != White {
			t.Fatalf("expected all white in copied region, got %v", p)
		}
	}
	if _, err := src.Copy(8, 8, 5, 5); err == nil {
		t.Fatalf("expected out-of-bounds copy to fail")
	}
}

func TestMergeClips(t *testing.T) {
	src := makeSolidCanvas(5, 5, White)
	dst := makeSolidCanvas(4, 4, Black)
	// place src fully straddling dst's bottom-right corner; out-of-range
	// pixels on both sides must be silently dropped, not error.
	if err := Merge(src, 0, 0, 2, 2, 5, 5, dst); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	got, _ := dst.Get(3, 3)
	if got != White {
		t.Fatalf("expected merged pixel to be white")
	}
	got, _ = dst.Get(0, 0)
	if got != Black {
		t.Fatalf("expected untouched pixel to remain black")
	}
}

func TestScalePreservesSolidColor(t *testing.T) {
	src := makeSolidCanvas(8, 8, White)
	out, err := src.Scale(4, 4, 3.0)
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	for _, p := range out.Pixels {
		if p != White {
			t.Fatalf("scaling a solid image should preserve its color, got %v", p)
		}
	}
}
