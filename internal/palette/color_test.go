package palette

import (
	"fmt"
	"testing"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"F1F1F1", RGB{241, 241, 241}},
		{"#F1F1F1", RGB{241, 241, 241}},
		{"000000", RGB{0, 0, 0}},
		{"#ff8000", RGB{255, 128, 0}},
		{"0A0B0C", RGB{10, 11, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := HexToRGB(tt.in); got != tt.want {
				t.Fatalf("HexToRGB(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for v := 0; v < 256; v += 5 {
		hex := fmt.Sprintf("%02x%02X%02x", v, 255-v, (v*7)%256)
		got := FormatHex(HexToRGB("#" + hex))
		if got != NormalizeHex(hex) {
			t.Fatalf("round trip %q: got %q", hex, got)
		}
	}
}

func TestNewColorDerivesChannels(t *testing.T) {
	c := NewColor("P01", "白色", "P01", "#f1f1f1")
	if c.Hex != "F1F1F1" {
		t.Fatalf("hex = %q, want F1F1F1", c.Hex)
	}
	if c.R != 241 || c.G != 241 || c.B != 241 {
		t.Fatalf("unexpected channels: %+v", c.RGB())
	}
	if c.IsTransparent() {
		t.Fatal("regular color reported as transparent")
	}
	if !Transparent.IsTransparent() {
		t.Fatal("sentinel not reported as transparent")
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "#FFF", "GG0000", "#1234567"} {
		if _, err := ParseHex(in); err == nil {
			t.Fatalf("ParseHex(%q) expected error", in)
		}
	}
	rgb, err := ParseHex(" #00ff00 ")
	if err != nil {
		t.Fatalf("ParseHex returned error: %v", err)
	}
	if rgb != (RGB{0, 255, 0}) {
		t.Fatalf("unexpected rgb %+v", rgb)
	}
}

func TestDistanceOrdersPerceptually(t *testing.T) {
	red := RGB{255, 0, 0}
	if d := Distance(red, red); d != 0 {
		t.Fatalf("distance to self = %v", d)
	}
	near := Distance(red, RGB{240, 10, 10})
	far := Distance(red, RGB{0, 0, 255})
	if near >= far {
		t.Fatalf("expected near (%v) < far (%v)", near, far)
	}
}
