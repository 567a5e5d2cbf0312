package palette

import "github.com/lucasb-eyer/go-colorful"

// Distance returns the CIEDE2000 perceptual difference between two colors.
func Distance(a, b RGB) float64 {
	return toColorful(a).DistanceCIEDE2000(toColorful(b))
}

func toColorful(rgb RGB) colorful.Color {
	return colorful.Color{
		R: float64(clampByte(rgb.R)) / 255.0,
		G: float64(clampByte(rgb.G)) / 255.0,
		B: float64(clampByte(rgb.B)) / 255.0,
	}
}
