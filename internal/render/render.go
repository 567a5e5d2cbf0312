// Package render turns an assembled catalog into the artifact shipped to the
// client: a TypeScript module or an equivalent JSON document.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"beadcolors/internal/catalog"
)

// Format names an artifact flavour.
type Format string

const (
	FormatTypeScript Format = "typescript"
	FormatJSON       Format = "json"
)

// ParseFormat maps a config value onto a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "ts", string(FormatTypeScript):
		return FormatTypeScript, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("output format: unsupported value %q", value)
	}
}

// ContentType is the MIME type used when uploading the artifact.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/typescript; charset=utf-8"
}

// Render writes cat to w in the requested format.
func Render(w io.Writer, cat *catalog.Catalog, format Format) error {
	switch format {
	case FormatTypeScript:
		return TypeScript(w, cat)
	case FormatJSON:
		return JSON(w, cat)
	default:
		return fmt.Errorf("output format: unsupported value %q", format)
	}
}

// Bytes renders cat into memory.
func Bytes(cat *catalog.Catalog, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, cat, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
