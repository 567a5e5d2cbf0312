package catalog

import (
	"errors"
	"math"
	"strings"

	"beadcolors/internal/brand"
	"beadcolors/internal/palette"
)

// ErrUnknownBrand is returned when a brand key is not part of the catalog.
var ErrUnknownBrand = errors.New("unknown brand")

// Library is one brand's color list.
type Library struct {
	Brand  string          `json:"brand"`
	Name   string          `json:"name"`
	Colors []palette.Color `json:"colors"`
}

// Settings are the default canvas options shipped with the catalog.
type Settings struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	ColorCount      int    `json:"colorCount"`
	Brand           string `json:"brand"`
	LockAspectRatio bool   `json:"lockAspectRatio"`
}

// DefaultSettings returns the stock canvas options for the given default brand.
func DefaultSettings(defaultBrand string) Settings {
	return Settings{
		Width:           29,
		Height:          29,
		ColorCount:      16,
		Brand:           defaultBrand,
		LockAspectRatio: true,
	}
}

// Catalog is the assembled library.
type Catalog struct {
	libraries []Library
	index     map[string]int
	settings  Settings
}

// Assemble merges per-brand color lists in brand table order. Brands absent
// from colors get an empty library. The default brand is the first brand.
func Assemble(brands []brand.Brand, colors map[string][]palette.Color) *Catalog {
	c := &Catalog{index: make(map[string]int, len(brands))}
	for _, b := range brands {
		list := colors[b.Key]
		lib := Library{Brand: b.Key, Name: b.DisplayName, Colors: make([]palette.Color, len(list))}
		copy(lib.Colors, list)
		c.index[b.Key] = len(c.libraries)
		c.libraries = append(c.libraries, lib)
	}
	first := ""
	if len(brands) > 0 {
		first = brands[0].Key
	}
	c.settings = DefaultSettings(first)
	return c
}

// WithSettings returns a copy of c that carries settings.
func (c *Catalog) WithSettings(settings Settings) *Catalog {
	clone := *c
	clone.settings = settings
	return &clone
}

// Settings returns the default canvas options.
func (c *Catalog) Settings() Settings {
	return c.settings
}

// Library returns one brand's library.
func (c *Catalog) Library(brandKey string) (Library, bool) {
	i, ok := c.index[normalizeKey(brandKey)]
	if !ok {
		return Library{}, false
	}
	return c.libraries[i], true
}

// Libraries returns all libraries in brand order.
func (c *Catalog) Libraries() []Library {
	out := make([]Library, len(c.libraries))
	copy(out, c.libraries)
	return out
}

// Brands returns the brand keys in order.
func (c *Catalog) Brands() []string {
	keys := make([]string, len(c.libraries))
	for i, lib := range c.libraries {
		keys[i] = lib.Brand
	}
	return keys
}

// AllColors returns the transparent sentinel followed by the colors of
// brandKey, or of every brand when brandKey is empty. An unknown brand yields
// only the sentinel.
func (c *Catalog) AllColors(brandKey string) []palette.Color {
	out := []palette.Color{palette.Transparent}
	if strings.TrimSpace(brandKey) == "" {
		for _, lib := range c.libraries {
			out = append(out, lib.Colors...)
		}
		return out
	}
	if lib, ok := c.Library(brandKey); ok {
		out = append(out, lib.Colors...)
	}
	return out
}

// FindColorByID looks a color up by id. The transparent id always resolves
// to the sentinel. With an empty brandKey every brand is searched in order.
func (c *Catalog) FindColorByID(id, brandKey string) (palette.Color, bool) {
	if id == palette.TransparentID {
		return palette.Transparent, true
	}
	if strings.TrimSpace(brandKey) != "" {
		lib, ok := c.Library(brandKey)
		if !ok {
			return palette.Color{}, false
		}
		return findIn(lib.Colors, id)
	}
	for _, lib := range c.libraries {
		if color, ok := findIn(lib.Colors, id); ok {
			return color, true
		}
	}
	return palette.Color{}, false
}

// ColorByID is the brand-first form of FindColorByID.
func (c *Catalog) ColorByID(brandKey, id string) (palette.Color, bool) {
	if id == palette.TransparentID {
		return palette.Transparent, true
	}
	lib, ok := c.Library(brandKey)
	if !ok {
		return palette.Color{}, false
	}
	return findIn(lib.Colors, id)
}

// Match is a nearest-color result.
type Match struct {
	Brand    string        `json:"brand"`
	Color    palette.Color `json:"color"`
	Distance float64       `json:"distance"`
}

// Nearest returns the color perceptually closest to target within brandKey,
// or across all brands when brandKey is empty. The sentinel never matches.
func (c *Catalog) Nearest(target palette.RGB, brandKey string) (Match, error) {
	libs := c.libraries
	if strings.TrimSpace(brandKey) != "" {
		lib, ok := c.Library(brandKey)
		if !ok {
			return Match{}, ErrUnknownBrand
		}
		libs = []Library{lib}
	}
	best := Match{Distance: math.Inf(1)}
	for _, lib := range libs {
		for _, color := range lib.Colors {
			d := palette.Distance(target, color.RGB())
			if d < best.Distance {
				best = Match{Brand: lib.Brand, Color: color, Distance: d}
			}
		}
	}
	if math.IsInf(best.Distance, 1) {
		return Match{}, errors.New("catalog has no colors to match")
	}
	return best, nil
}

// Count returns the number of colors across brands, excluding the sentinel.
func (c *Catalog) Count() int {
	n := 0
	for _, lib := range c.libraries {
		n += len(lib.Colors)
	}
	return n
}

func findIn(colors []palette.Color, id string) (palette.Color, bool) {
	for _, color := range colors {
		if color.ID == id {
			return color, true
		}
	}
	return palette.Color{}, false
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
