package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteDump writes text to dir/name, creating dir as needed.
func WriteDump(t testing.TB, dir, name, text string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// Swatch renders one color record the way the catalog pages stream it.
func Swatch(marker, code, hex, name string) string {
	return `["$","div","` + marker + `:` + code + `",{"className":"swatch","children":[["$","div",null,{"style":{"backgroundColor":"` +
		hex + `"}}],["$","span",null,{"children":"` + name + `"}]]}]`
}

// Dump joins swatches into a multi-line page dump surrounded by unrelated markup.
func Dump(swatches ...string) string {
	lines := make([]string, 0, len(swatches)+2)
	lines = append(lines, `0:["$","html",null,{"lang":"en"}]`)
	for i, s := range swatches {
		lines = append(lines, string(rune('1'+i%9))+":"+s)
	}
	lines = append(lines, `f:["$","footer",null,{"children":"©"}]`)
	return strings.Join(lines, "\n")
}
