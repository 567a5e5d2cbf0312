package render

import (
	"encoding/json"
	"fmt"
	"io"

	"beadcolors/internal/catalog"
	"beadcolors/internal/palette"
)

type jsonRGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// jsonColor mirrors the BeadColor shape of the TypeScript module.
type jsonColor struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Code string  `json:"code"`
	Hex  string  `json:"hex"`
	RGB  jsonRGB `json:"rgb"`
}

type jsonLibrary struct {
	Brand  string      `json:"brand"`
	Name   string      `json:"name"`
	Colors []jsonColor `json:"colors"`
}

// Document is the JSON artifact.
type Document struct {
	Transparent   jsonColor        `json:"transparent"`
	Libraries     []jsonLibrary    `json:"libraries"`
	DefaultConfig catalog.Settings `json:"defaultConfig"`
}

func toJSONColor(c palette.Color) jsonColor {
	return jsonColor{ID: c.ID, Name: c.Name, Code: c.Code, Hex: c.Hex, RGB: jsonRGB{R: c.R, G: c.G, B: c.B}}
}

// NewDocument converts cat into its JSON form.
func NewDocument(cat *catalog.Catalog) Document {
	doc := Document{
		Transparent:   toJSONColor(palette.Transparent),
		DefaultConfig: cat.Settings(),
	}
	for _, lib := range cat.Libraries() {
		out := jsonLibrary{Brand: lib.Brand, Name: lib.Name, Colors: make([]jsonColor, 0, len(lib.Colors))}
		for _, c := range lib.Colors {
			out.Colors = append(out.Colors, toJSONColor(c))
		}
		doc.Libraries = append(doc.Libraries, out)
	}
	return doc
}

// JSON writes cat as an indented JSON document.
func JSON(w io.Writer, cat *catalog.Catalog) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(NewDocument(cat)); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}
