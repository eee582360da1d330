package cmd

import (
	"testing"

	"github.com/Fepozopo/thermview/pkg/canvas"
)

func TestParseColorNamed(t *testing.T) {
	c, err := parseColor("White")
	if err != nil {
		t.Fatalf("parseColor(White): %v", err)
	}
	if c != canvas.White {
		t.Fatalf("got %v, want canvas.White", c)
	}
}

func TestParseColorHex(t *testing.T) {
	c, err := parseColor("#ff0000")
	if err != nil {
		t.Fatalf("parseColor(#ff0000): %v", err)
	}
	want := canvas.RGB888(0xff, 0x00, 0x00)
	if c != want {
		t.Fatalf("got %v, want %v", c, want)
	}
}

func TestParseColorRejectsGarbage(t *testing.T) {
	if _, err := parseColor("not-a-color"); err == nil {
		t.Fatalf("expected error for unparseable color")
	}
}
