package textrepair

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

const defaultMaxPasses = 4

// Windows1252 re-encodes text as windows-1252 and decodes the bytes as UTF-8.
// It fails when a rune has no windows-1252 byte or the bytes are not UTF-8.
func Windows1252() Strategy {
	return StrategyFunc{Label: "windows-1252", Fn: func(text string) (string, bool) {
		return reencode(charmap.Windows1252, text)
	}}
}

// Latin1 is Windows1252 for ISO-8859-1.
func Latin1() Strategy {
	return StrategyFunc{Label: "iso-8859-1", Fn: func(text string) (string, bool) {
		return reencode(charmap.ISO8859_1, text)
	}}
}

// PercentDecode decodes well-formed %XX escapes and leaves malformed ones
// literal. It fails only when the decoded bytes are not UTF-8.
func PercentDecode() Strategy {
	return StrategyFunc{Label: "percent", Fn: func(text string) (string, bool) {
		out := percentUnescape(text)
		if !utf8.ValidString(out) {
			return text, false
		}
		return out, true
	}}
}

func percentUnescape(text string) string {
	if !strings.Contains(text, "%") {
		return text
	}
	buf := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '%' && i+2 < len(text) && isHex(text[i+1]) && isHex(text[i+2]) {
			buf = append(buf, unhex(text[i+1])<<4|unhex(text[i+2]))
			i += 2
			continue
		}
		buf = append(buf, text[i])
	}
	return string(buf)
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}

func reencode(enc encoding.Encoding, text string) (string, bool) {
	raw, err := enc.NewEncoder().String(text)
	if err != nil {
		return text, false
	}
	if !utf8.ValidString(raw) {
		return text, false
	}
	return raw, true
}

// Heuristic is the general-purpose repair pass. It unescapes HTML entities in
// text that carries no markup, then repeatedly rewrites runs of non-ASCII
// runes whose sloppy windows-1252 bytes form valid UTF-8, and finally applies
// NFC. It always succeeds.
func Heuristic(maxPasses int) Strategy {
	if maxPasses <= 0 {
		maxPasses = defaultMaxPasses
	}
	return StrategyFunc{Label: "heuristic", Fn: func(text string) (string, bool) {
		return heuristicFix(text, maxPasses), true
	}}
}

func heuristicFix(text string, maxPasses int) string {
	if strings.Contains(text, "&") && !strings.Contains(text, "<") {
		text = html.UnescapeString(text)
	}
	for pass := 0; pass < maxPasses; pass++ {
		next, changed := fixRuns(text)
		if !changed {
			break
		}
		text = next
	}
	if !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
	}
	return text
}

// fixRuns splits text into maximal runs of non-ASCII single-byte-encodable
// runes and replaces each run whose bytes decode as UTF-8. UTF-8 continuation
// and lead bytes are all >= 0x80, so a mojibake run never contains ASCII.
func fixRuns(text string) (string, bool) {
	var (
		b       strings.Builder
		run     []byte
		runText strings.Builder
		changed bool
	)
	flush := func() {
		if runText.Len() == 0 {
			return
		}
		original := runText.String()
		if decoded, ok := decodeRun(run, original); ok {
			b.WriteString(decoded)
			changed = true
		} else {
			b.WriteString(original)
		}
		run = run[:0]
		runText.Reset()
	}

	for _, r := range text {
		if r >= utf8.RuneSelf {
			if c, ok := sloppyByte(r); ok {
				run = append(run, c)
				runText.WriteRune(r)
				continue
			}
		}
		flush()
		b.WriteRune(r)
	}
	flush()

	if !changed {
		return text, false
	}
	return b.String(), true
}

// implausibleLo and implausibleHi bound the two-byte UTF-8 blocks (Cyrillic
// Supplement through NKo) that a sloppy windows-1252 pair of Latin letters
// and punctuation decodes into far more often than real text contains them.
const (
	implausibleLo = 0x0500
	implausibleHi = 0x07ff
)

func decodeRun(raw []byte, original string) (string, bool) {
	if len(raw) < 2 || !utf8.Valid(raw) {
		return "", false
	}
	decoded := string(raw)
	if utf8.RuneCountInString(decoded) >= utf8.RuneCountInString(original) {
		return "", false
	}
	for _, r := range decoded {
		if r >= implausibleLo && r <= implausibleHi {
			return "", false
		}
	}
	return decoded, true
}

// sloppyByte maps r to its windows-1252 byte. C1 controls, which appear when
// mojibake went through ISO-8859-1 instead, map to themselves.
func sloppyByte(r rune) (byte, bool) {
	if r < utf8.RuneSelf {
		return byte(r), true
	}
	if c, ok := charmap.Windows1252.EncodeRune(r); ok {
		return c, true
	}
	if r >= 0x80 && r <= 0x9f {
		return byte(r), true
	}
	return 0, false
}
