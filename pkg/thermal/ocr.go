package thermal

import (
	"regexp"
	"strconv"

	"github.com/Fepozopo/thermview/pkg/ocr"
	"github.com/Fepozopo/thermview/pkg/therr"
)

const (
	tempGlyphs  = 6
	tempOffX    = 0
	tempOffY    = 0
	tempPitch   = 0
	emisGlyphs  = 6
	emisOffX    = 110
	emisOffY    = 3
	emisPitch   = 0
)

var temperaturePattern = regexp.MustCompile(`^(-?)(\d+)\.(\d)([CF])$`)
var emissivityPattern = regexp.MustCompile(`^E:0\.(\d\d)$`)

// OCR reads the temperature and emissivity strings off ctx.TextImage and
// stores the parsed values on ctx: TemperatureSpot in tenths of a degree
// Celsius, Emissivity as a percent (1..99). Fahrenheit readings are
// converted via T_c·10 = round(((T_f·10 - 320)·5)/9), rounding the quotient
// away from zero when the remainder (mod 9) is >= 5 (spec.md §4.4/§8
// scenario 3). maxUnknown bounds how many unrecognized glyphs each field
// tolerates before failing; -1 means unlimited (ocr.RecognizeString's
// budget semantics).
func OCR(ctx *Context, maxUnknown int) error {
	if ctx == nil || ctx.TextImage == nil {
		return therr.New(therr.NullInput, therr.Thermal, "ocr on context with no text image")
	}

	tempStr, err := ocr.RecognizeString(ctx.TextImage, tempOffX, tempOffY, tempPitch, tempGlyphs, maxUnknown, ocr.Large)
	if err != nil {
		return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "recognize temperature string")
	}
	tenths, err := parseTemperature(tempStr)
	if err != nil {
		return err
	}

	emisStr, err := ocr.RecognizeString(ctx.TextImage, emisOffX, emisOffY, emisPitch, emisGlyphs, maxUnknown, ocr.Small)
	if err != nil {
		return therr.Wrap(err, therr.CalleeFail, therr.Thermal, "recognize emissivity string")
	}
	emissivity, err := parseEmissivity(emisStr)
	if err != nil {
		return err
	}

	ctx.TemperatureSpot = tenths
	ctx.Emissivity = emissivity
	return nil
}

func parseTemperature(s string) (int, error) {
	m := temperaturePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, therr.New(therr.Syntax, therr.Thermal, "temperature string does not match expected format")
	}
	intPart, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, therr.Wrap(err, therr.Syntax, therr.Thermal, "parse temperature integer part")
	}
	decimalDigit, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, therr.Wrap(err, therr.Syntax, therr.Thermal, "parse temperature decimal digit")
	}
	tenths := intPart*10 + decimalDigit
	if m[1] == "-" {
		tenths = -tenths
	}
	if m[4] == "C" {
		return tenths, nil
	}
	return fahrenheitTenthsToCelsiusTenths(tenths), nil
}

// fahrenheitTenthsToCelsiusTenths converts a tenths-of-Fahrenheit reading to
// tenths of Celsius, rounding the quotient away from zero whenever the
// division by 9 leaves a remainder of 5 or more.
func fahrenheitTenthsToCelsiusTenths(tfTenths int) int {
	numerator := (tfTenths - 320) * 5
	q := numerator / 9
	r := numerator % 9
	if r < 0 {
		r = -r
	}
	if r >= 5 {
		if numerator >= 0 {
			q++
		} else {
			q--
		}
	}
	return q
}

func parseEmissivity(s string) (int, error) {
	m := emissivityPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, therr.New(therr.Syntax, therr.Thermal, "emissivity string does not match expected format")
	}
	dd, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, therr.Wrap(err, therr.Syntax, therr.Thermal, "parse emissivity digits")
	}
	if dd == 0 {
		return 0, therr.New(therr.ImageShape, therr.Thermal, "emissivity must be nonzero")
	}
	return dd, nil
}
