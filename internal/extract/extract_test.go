package extract

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"beadcolors/internal/palette"
	"beadcolors/internal/textrepair"
)

func swatch(marker, code, hex, name string) string {
	return `["$","div","` + marker + `:` + code + `",{"className":"swatch","children":[["$","div",null,{"style":{"backgroundColor":"` +
		hex + `"}}],["$","span",null,{"children":"` + name + `"}]]}]`
}

func TestExtractSingleRecord(t *testing.T) {
	text := `["$","div","Perler:P01",{"style":{"backgroundColor":"#F1F1F1"},"children":"白色"}]`
	got := Extract(text, "Perler", "P")
	want := []palette.Color{{ID: "P01", Name: "白色", Code: "P01", Hex: "F1F1F1", R: 241, G: 241, B: 241}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract = %+v, want %+v", got, want)
	}
}

func TestExtractKeepsFirstDuplicate(t *testing.T) {
	text := strings.Join([]string{
		swatch("Hama", "H01", "#FFFFFF", "White"),
		swatch("Hama", "H02", "#000000", "Black"),
		swatch("Hama", "H01", "#EEEEEE", "Other White"),
	}, "")
	res := New(nil, DefaultOptions()).Extract(text, "Hama", "H")
	if len(res.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %+v", res.Colors)
	}
	if res.Colors[0].Name != "White" || res.Colors[0].Hex != "FFFFFF" {
		t.Fatalf("first occurrence not kept: %+v", res.Colors[0])
	}
	if res.Stats.Duplicates != 1 || res.Stats.Matched != 3 || res.Stats.Anchors != 3 {
		t.Fatalf("unexpected stats %+v", res.Stats)
	}
}

func TestExtractPreservesSourceOrder(t *testing.T) {
	text := swatch("MARD", "M010", "#101010", "c") + "\n" +
		swatch("MARD", "M002", "#020202", "b") + "\n" +
		swatch("MARD", "M001", "#010101", "a")
	got := Extract(text, "MARD", "M")
	var codes []string
	for _, c := range got {
		codes = append(codes, c.Code)
	}
	if strings.Join(codes, ",") != "M010,M002,M001" {
		t.Fatalf("unexpected order %v", codes)
	}
}

func TestExtractDerivesIDs(t *testing.T) {
	text := swatch("Ikea", "Black", "#000000", "Black") + swatch("Artkal-S", "S12", "#123456", "Blue")
	ikea := Extract(text, "Ikea", "I")
	if len(ikea) != 1 || ikea[0].ID != "I-Black" {
		t.Fatalf("ikea ids: %+v", ikea)
	}
	artkal := Extract(text, "Artkal-S", "A")
	if len(artkal) != 1 || artkal[0].ID != "S12" {
		t.Fatalf("artkal ids: %+v", artkal)
	}
}

func TestExtractSkipsIncompleteRecords(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no background", `["$","div","Perler:P01",{"children":"White"}]`},
		{"no name", `["$","div","Perler:P01",{"style":{"backgroundColor":"#FFFFFF"}}]`},
		{"short hex", `["$","div","Perler:P01",{"style":{"backgroundColor":"#FFF"},"children":"White"}]`},
		{"name before background", `["$","div","Perler:P01",{"children":"White","style":{"backgroundColor":"#FFFFFF"}}]`},
		{"empty code", `["$","div","Perler:",{"style":{"backgroundColor":"#FFFFFF"},"children":"White"}]`},
		{"wrong marker case", `["$","div","perler:P01",{"style":{"backgroundColor":"#FFFFFF"},"children":"White"}]`},
		{"fields on next line", "[\"$\",\"div\",\"Perler:P01\",{}]\n{\"backgroundColor\":\"#FFFFFF\",\"children\":\"White\"}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.text, "Perler", "P"); len(got) != 0 {
				t.Fatalf("expected no colors, got %+v", got)
			}
		})
	}
}

func TestExtractSkipsMalformedFieldsToNearestValid(t *testing.T) {
	text := `["$","div","Nabbi:N01",{"style":{"backgroundColor":"transparent"}},{"style":{"backgroundColor":"#a0b1c2"}},` +
		`{"children":""},{"children":"Sand"}]`
	got := Extract(text, "Nabbi", "N")
	if len(got) != 1 {
		t.Fatalf("expected one color, got %+v", got)
	}
	if got[0].Hex != "A0B1C2" || got[0].Name != "Sand" || got[0].ID != "N01" {
		t.Fatalf("unexpected color %+v", got[0])
	}
	if got[0].R != 0xA0 || got[0].G != 0xB1 || got[0].B != 0xC2 {
		t.Fatalf("unexpected channels %+v", got[0])
	}
}

func TestExtractWindowBoundary(t *testing.T) {
	text := `["$","div","Perler:P01",{"className":"empty"}]` + swatch("Perler", "P02", "#000000", "Black")

	bounded := New(nil, Options{BoundToNextMarker: true}).Extract(text, "Perler", "P").Colors
	if len(bounded) != 1 || bounded[0].Code != "P02" {
		t.Fatalf("bounded scan: %+v", bounded)
	}

	unbounded := New(nil, Options{}).Extract(text, "Perler", "P").Colors
	if len(unbounded) != 1 || unbounded[0].Code != "P01" || unbounded[0].Name != "Black" {
		t.Fatalf("unbounded scan: %+v", unbounded)
	}
}

func TestExtractRepairsNames(t *testing.T) {
	garbled, err := charmap.Windows1252.NewDecoder().String("白色")
	if err != nil {
		t.Fatalf("garble: %v", err)
	}
	text := swatch("Perler", "P01", "#F1F1F1", garbled)
	res := New(textrepair.Default(), DefaultOptions()).Extract(text, "Perler", "P")
	if len(res.Colors) != 1 || res.Colors[0].Name != "白色" {
		t.Fatalf("name not repaired: %+v", res.Colors)
	}
	if res.Stats.Repaired != 1 {
		t.Fatalf("expected one repaired name, got %+v", res.Stats)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	var b strings.Builder
	for i, name := range []string{"红", "Blue", "Vert clair", "黑"} {
		b.WriteString(swatch("Hama", "H0"+string(rune('1'+i)), "#0F0F0F", name))
		b.WriteByte('\n')
	}
	text := b.String()
	first := Extract(text, "Hama", "H")
	second := Extract(text, "Hama", "H")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction not deterministic:\n%+v\n%+v", first, second)
	}
	seen := map[string]bool{}
	for _, c := range first {
		if seen[c.Code] {
			t.Fatalf("duplicate code %q", c.Code)
		}
		seen[c.Code] = true
	}
}

func TestScannerReportsOffsets(t *testing.T) {
	first := swatch("Hama", "H01", "#FFFFFF", "White")
	text := first + "\n" + swatch("Hama", "H02", "#000000", "Black")
	sc := NewScanner(text, "Hama", DefaultOptions())
	var offsets []int
	for sc.Scan() {
		offsets = append(offsets, sc.Candidate().Offset)
	}
	if len(offsets) != 2 || offsets[0] != 0 || offsets[1] != len(first)+1 {
		t.Fatalf("unexpected offsets %v", offsets)
	}
	if sc.Anchors() != 2 {
		t.Fatalf("anchors = %d", sc.Anchors())
	}
}
