package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/thermview/pkg/canvas"
)

// named holds the small set of restamp colors a crosshair is realistically
// drawn in, adapted from the teacher's stdimg.parseHexColor named-color
// table (pkg/stdimg/color.go) but pared down to this CLI's --border-color/
// --fill-color flags instead of that file's full CSS Level 4 list.
var named = map[string]canvas.Color{
	"black":   canvas.Black,
	"white":   canvas.White,
	"red":     canvas.RGB888(0xff, 0x00, 0x00),
	"green":   canvas.RGB888(0x00, 0xff, 0x00),
	"blue":    canvas.RGB888(0x00, 0x00, 0xff),
	"yellow":  canvas.RGB888(0xff, 0xff, 0x00),
	"cyan":    canvas.RGB888(0x00, 0xff, 0xff),
	"magenta": canvas.RGB888(0xff, 0x00, 0xff),
}

// parseColor accepts a named color or a #rrggbb / rrggbb hex string.
func parseColor(s string) (canvas.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q: want a name (%s) or #rrggbb hex", s, modeNames(namedKeys()))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return canvas.RGB888(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

func namedKeys() []string {
	keys := make([]string, 0, len(named))
	for k := range named {
		keys = append(keys, k)
	}
	return keys
}
