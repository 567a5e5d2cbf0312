// Package palette defines the bead color value type and the conversions
// between its hexadecimal and RGB encodings.
//
// Hex values are stored canonically as six uppercase digits without a
// leading '#'. Conversion helpers assume validated input: callers such as the
// extractor only pass text that already matched a strict #RRGGBB shape.
package palette
