package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a single bead color as published in a brand catalog.
type Color struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Hex  string `json:"hex"`
	R    int    `json:"r"`
	G    int    `json:"g"`
	B    int    `json:"b"`
}

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B int
}

// TransparentID is the id of the erase/transparent sentinel.
const TransparentID = "transparent"

// Transparent is the brand-independent erase color.
var Transparent = Color{
	ID:   TransparentID,
	Name: "透明 / 擦除",
	Code: "CLEAR",
	Hex:  "transparent",
}

// NewColor builds a color from a validated hex value. The hex digits are
// uppercased and the RGB channels derived from them.
func NewColor(id, name, code, hex string) Color {
	hex = NormalizeHex(hex)
	rgb := HexToRGB(hex)
	return Color{ID: id, Name: name, Code: code, Hex: hex, R: rgb.R, G: rgb.G, B: rgb.B}
}

// IsTransparent reports whether c is the erase sentinel.
func (c Color) IsTransparent() bool {
	return c.ID == TransparentID
}

// RGB returns the channels of c.
func (c Color) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// NormalizeHex strips a leading '#' and uppercases the digits.
func NormalizeHex(hex string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
}

// HexToRGB interprets the six characters after an optional leading '#' as
// red, green and blue byte values. Malformed input is a caller error and
// yields the zero triple.
func HexToRGB(hex string) RGB {
	c, err := colorful.Hex("#" + strings.TrimPrefix(hex, "#"))
	if err != nil {
		return RGB{}
	}
	r, g, b := c.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}
}

// FormatHex renders an RGB triple as six uppercase hex digits.
func FormatHex(rgb RGB) string {
	return fmt.Sprintf("%02X%02X%02X", clampByte(rgb.R), clampByte(rgb.G), clampByte(rgb.B))
}

// ParseHex validates and converts a user supplied color such as "#ff0000"
// or "FF0000".
func ParseHex(value string) (RGB, error) {
	hex := NormalizeHex(value)
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q: must be 6 hex digits", value)
	}
	for i := 0; i < len(hex); i++ {
		if !IsHexDigit(hex[i]) {
			return RGB{}, fmt.Errorf("invalid hex color %q: unexpected character %q", value, hex[i])
		}
	}
	return HexToRGB(hex), nil
}

// IsHexDigit reports whether b is in [0-9A-Fa-f].
func IsHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func clampByte(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v
	}
}
