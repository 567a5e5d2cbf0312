package main

import (
	"fmt"

	"beadcolors/internal/palette"
)

func formatHex(c palette.Color) string {
	if c.IsTransparent() {
		return c.Hex
	}
	return "#" + c.Hex
}

func formatRGB(rgb palette.RGB) string {
	return fmt.Sprintf("%d,%d,%d", rgb.R, rgb.G, rgb.B)
}

func colorSlice(colors ...palette.Color) []palette.Color {
	return colors
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
