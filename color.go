package marbling

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an opaque ink color with 8-bit channels.
// Alpha is not part of the ink; it is derived from a drop's opacity at
// render time.
type Color struct {
	R, G, B uint8
}

// Black is the default ink.
var Black = Color{}

// RGB creates a Color from 0-255 channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// FromColor converts a standard color.Color to Color, dropping alpha.
// Premultiplied channels are un-premultiplied first.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with or without a leading '#'.
// Unparseable input yields Black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	switch len(hex) {
	case 3:
		if !parseHex(hex[0:1], &r) || !parseHex(hex[1:2], &g) || !parseHex(hex[2:3], &b) {
			return Black
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if !parseHex(hex[0:2], &r) || !parseHex(hex[2:4], &g) || !parseHex(hex[4:6], &b) {
			return Black
		}
	default:
		return Black
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// WithOpacity returns the color with an alpha channel derived from
// opacity. Opacity outside [0, 1] is clamped.
func (c Color) WithOpacity(opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha8(opacity)}
}

// String formats the color the way CSS does, e.g. "rgb(12,34,56)".
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func alpha8(opacity float64) uint8 {
	return uint8(math.Round(clamp01(opacity) * 255))
}

// clamp01 restricts a value to the [0, 1] range. NaN maps to 0.
func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
