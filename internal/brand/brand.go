// Package brand holds the static table of supported bead brands.
package brand

import (
	"fmt"
	"strings"
)

// Brand describes where a brand's colors come from and how they are named.
type Brand struct {
	// Key is the lowercase identifier used in the generated catalog.
	Key string
	// File is the dump file name inside the source directory.
	File string
	// Prefix is prepended to codes that do not already carry it.
	Prefix string
	// DisplayName is the human readable brand name.
	DisplayName string
	// Marker is the brand literal used in the dump (e.g. "Artkal-S").
	Marker string
}

var table = []Brand{
	{Key: "perler", File: "perler", Prefix: "P", DisplayName: "Perler", Marker: "Perler"},
	{Key: "hama", File: "hama", Prefix: "H", DisplayName: "Hama", Marker: "Hama"},
	{Key: "artkal", File: "artkal", Prefix: "A", DisplayName: "Artkal", Marker: "Artkal-S"},
	{Key: "mard", File: "mard", Prefix: "M", DisplayName: "MARD", Marker: "MARD"},
	{Key: "nabbi", File: "nabbi", Prefix: "N", DisplayName: "Nabbi", Marker: "Nabbi"},
	{Key: "ikea", File: "ikea", Prefix: "I", DisplayName: "Ikea Pyssla", Marker: "Ikea"},
}

// All returns the brand table in processing order.
func All() []Brand {
	out := make([]Brand, len(table))
	copy(out, table)
	return out
}

// Keys returns the brand keys in processing order.
func Keys() []string {
	keys := make([]string, len(table))
	for i, b := range table {
		keys[i] = b.Key
	}
	return keys
}

// Lookup finds a brand by key, ignoring case and surrounding space.
func Lookup(key string) (Brand, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, b := range table {
		if b.Key == key {
			return b, true
		}
	}
	return Brand{}, false
}

// Select returns the brands named by keys, in table order. An empty keys
// slice selects every brand.
func Select(keys []string) ([]Brand, error) {
	if len(keys) == 0 {
		return All(), nil
	}
	wanted := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		b, ok := Lookup(key)
		if !ok {
			return nil, fmt.Errorf("unknown brand %q (known: %s)", key, strings.Join(Keys(), ", "))
		}
		wanted[b.Key] = struct{}{}
	}
	out := make([]Brand, 0, len(wanted))
	for _, b := range table {
		if _, ok := wanted[b.Key]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// ColorID derives the catalog id of a color code. Codes that already carry
// the brand prefix keep their form, as do Artkal "S" series codes; anything
// else becomes "{prefix}-{code}".
func (b Brand) ColorID(code string) string {
	return ColorID(b.Prefix, code)
}

// ColorID is Brand.ColorID for a bare prefix.
func ColorID(prefix, code string) string {
	if strings.HasPrefix(code, prefix) || (prefix == "A" && strings.HasPrefix(code, "S")) {
		return code
	}
	return prefix + "-" + code
}
