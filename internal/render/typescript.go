package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"beadcolors/internal/catalog"
	"beadcolors/internal/palette"
)

var tsTemplate = template.Must(template.New("beadColors.ts").Funcs(template.FuncMap{
	"str":     tsString,
	"varName": func(brandKey string) string { return strings.ToLower(brandKey) + "Colors" },
}).Parse(`import { BeadColor, BeadColorLibrary, BeadBrand } from '../types';

// Transparent (shared by every brand)
export const TRANSPARENT_COLOR: BeadColor = {
  id: {{str .Transparent.ID}},
  name: {{str .Transparent.Name}},
  code: {{str .Transparent.Code}},
  hex: {{str .Transparent.Hex}},
  rgb: { r: {{.Transparent.R}}, g: {{.Transparent.G}}, b: {{.Transparent.B}} },
};
{{range .Libraries}}
// {{.Name}} palette ({{len .Colors}} colors)
const {{varName .Brand}}: BeadColor[] = [
{{- range .Colors}}
  { id: {{str .ID}}, name: {{str .Name}}, code: {{str .Code}}, hex: {{str .Hex}}, rgb: { r: {{.R}}, g: {{.G}}, b: {{.B}} } },
{{- end}}
];
{{end}}
// Palettes by brand
export const beadColorLibraries: Record<BeadBrand, BeadColorLibrary> = {
{{- range .Libraries}}
  {{.Brand}}: {
    brand: {{str .Brand}},
    name: {{str .Name}},
    colors: {{varName .Brand}},
  },
{{- end}}
};

// Palette of one brand
export function getColorLibrary(brand: BeadBrand): BeadColorLibrary {
  return beadColorLibraries[brand];
}

// Every palette, for iteration
export function getColorLibraries(): BeadColorLibrary[] {
  return Object.values(beadColorLibraries);
}

// Every color, optionally filtered by brand; transparent always comes first
export function getAllColors(brand?: BeadBrand): BeadColor[] {
  const brandColors = brand
    ? beadColorLibraries[brand]?.colors || []
    : Object.values(beadColorLibraries).flatMap(lib => lib.colors);

  return [TRANSPARENT_COLOR, ...brandColors];
}

// Look a color up by id
export function findColorById(id: string, brand?: BeadBrand): BeadColor | undefined {
  if (id === {{str .Transparent.ID}}) {
    return TRANSPARENT_COLOR;
  }
  if (brand) {
    return beadColorLibraries[brand].colors.find(c => c.id === id);
  }
  return Object.values(beadColorLibraries).flatMap(lib => lib.colors).find(c => c.id === id);
}

// Look a color up by brand and id (legacy API)
export function getColorById(brand: BeadBrand, id: string): BeadColor | undefined {
  if (id === {{str .Transparent.ID}}) {
    return TRANSPARENT_COLOR;
  }
  return beadColorLibraries[brand]?.colors.find(c => c.id === id);
}

// Default canvas settings
export const defaultConfig = {
  width: {{.Settings.Width}},
  height: {{.Settings.Height}},
  colorCount: {{.Settings.ColorCount}},
  brand: {{str .Settings.Brand}} as BeadBrand,
  lockAspectRatio: {{.Settings.LockAspectRatio}},
};
`))

type tsData struct {
	Transparent palette.Color
	Libraries   []catalog.Library
	Settings    catalog.Settings
}

// TypeScript writes cat as a self-contained TypeScript module.
func TypeScript(w io.Writer, cat *catalog.Catalog) error {
	data := tsData{
		Transparent: palette.Transparent,
		Libraries:   cat.Libraries(),
		Settings:    cat.Settings(),
	}
	if err := tsTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render typescript: %w", err)
	}
	return nil
}

var tsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// tsString renders s as a single-quoted TypeScript string literal.
func tsString(s string) string {
	return "'" + tsEscaper.Replace(s) + "'"
}
