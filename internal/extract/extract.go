package extract

import (
	"beadcolors/internal/brand"
	"beadcolors/internal/palette"
	"beadcolors/internal/textrepair"
)

// Stats summarizes one extraction.
type Stats struct {
	Anchors    int
	Matched    int
	Duplicates int
	Repaired   int
}

// Result is the ordered, deduplicated color list of one brand.
type Result struct {
	Colors []palette.Color
	Stats  Stats
}

// Extractor turns dump text into colors.
type Extractor struct {
	repairer *textrepair.Repairer
	opts     Options
}

// New constructs an extractor. A nil repairer uses the default chain.
func New(repairer *textrepair.Repairer, opts Options) *Extractor {
	if repairer == nil {
		repairer = textrepair.Default()
	}
	return &Extractor{repairer: repairer, opts: opts}
}

// Extract scans text for records of marker and returns them in first-seen
// order. Later records repeating a code are dropped. Records missing their
// background color or name are skipped silently.
func (e *Extractor) Extract(text, marker, prefix string) Result {
	var res Result
	seen := make(map[string]struct{})
	sc := NewScanner(text, marker, e.opts)
	for sc.Scan() {
		c := sc.Candidate()
		res.Stats.Matched++
		if _, dup := seen[c.Code]; dup {
			res.Stats.Duplicates++
			continue
		}
		seen[c.Code] = struct{}{}

		name := e.repairer.Fix(c.RawName)
		if name != c.RawName {
			res.Stats.Repaired++
		}
		res.Colors = append(res.Colors, palette.NewColor(brand.ColorID(prefix, c.Code), name, c.Code, c.Hex))
	}
	res.Stats.Anchors = sc.Anchors()
	return res
}

// ExtractBrand is Extract using the brand's marker and prefix.
func (e *Extractor) ExtractBrand(text string, b brand.Brand) Result {
	return e.Extract(text, b.Marker, b.Prefix)
}

// Extract runs the default extractor and returns only the colors.
func Extract(text, marker, prefix string) []palette.Color {
	return New(nil, DefaultOptions()).Extract(text, marker, prefix).Colors
}
