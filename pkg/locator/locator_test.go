package locator

import (
	"testing"

	"github.com/Fepozopo/thermview/pkg/canvas"
)

func makeShotWithCrosshair(t *testing.T, g geometry, model Model) *canvas.Canvas {
	t.Helper()
	shot, err := canvas.New(ShotWidth, ShotHeight)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := range shot.Pixels {
		shot.Pixels[i] = canvas.RGB888(40, 80, 120) // background IR-ish color
	}

	crosshairX := irOriginX + 10
	crosshairY := irOriginY + 10
	eyeColor := canvas.RGB888(200, 50, 50)

	// paint the horizontal cross-section row at the eye's row.
	row := crosshairY + g.TargetRow
	x := crosshairX
	paint := func(n int, col canvas.Color) {
		for i := 0; i < n; i++ {
			_ = shot.Set(x, row, col)
			x++
		}
	}
	paint(1, canvas.Black)
	paint(g.FillWidth, canvas.White)
	paint(1, canvas.Black)
	paint(g.EyeSize, eyeColor)
	paint(1, canvas.Black)
	paint(g.FillWidth, canvas.White)
	paint(1, canvas.Black)

	return shot
}

func TestProcessDetectsModelA(t *testing.T) {
	shot := makeShotWithCrosshair(t, geomA, ModelA)
	res, err := Process(shot)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Model != ModelA {
		t.Fatalf("expected ModelA, got %v", res.Model)
	}
	if res.Crosshair.W != geomA.Width() || res.Crosshair.H != geomA.Height {
		t.Fatalf("unexpected crosshair rect: %+v", res.Crosshair)
	}
}

func TestProcessDetectsModelB(t *testing.T) {
	shot := makeShotWithCrosshair(t, geomB, ModelB)
	res, err := Process(shot)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Model != ModelB {
		t.Fatalf("expected ModelB, got %v", res.Model)
	}
}

func TestProcessNoMatchIsUnknown(t *testing.T) {
	shot, _ := canvas.New(ShotWidth, ShotHeight)
	for i := range shot.Pixels {
		shot.Pixels[i] = canvas.RGB888(10, 10, 10)
	}
	res, err := Process(shot)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Model != ModelUnknown {
		t.Fatalf("expected ModelUnknown, got %v", res.Model)
	}
}

func TestRejectsWrongGeometry(t *testing.T) {
	shot, _ := canvas.New(100, 100)
	if _, err := Process(shot); err == nil {
		t.Fatalf("expected ImageShape error for wrong geometry")
	}
}

// TestMaskCompleteness exercises spec.md §8's mask-completeness property:
// every in-bounds (x,y) classifies as IMAGE or CROSSHAIR, never
// OUT_OF_BOUNDS.
func TestMaskCompleteness(t *testing.T) {
	shot := makeShotWithCrosshair(t, geomA, ModelA)
	res, err := Process(shot)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	for y := 0; y < res.IR.Height; y++ {
		for x := 0; x < res.IR.Width; x++ {
			class := res.Detect(x, y)
			if class != Image && class != Crosshair {
				t.Fatalf("unexpected class %v at (%d,%d)", class, x, y)
			}
		}
	}
}

func TestProcessIdempotent(t *testing.T) {
	shot := makeShotWithCrosshair(t, geomA, ModelA)
	res1, err := Process(shot)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	res2, err := Process(shot)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res1.Crosshair != res2.Crosshair || res1.Model != res2.Model {
		t.Fatalf("expected idempotent geometry across repeated Process calls")
	}
}
