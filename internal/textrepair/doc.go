// Package textrepair undoes mojibake: text whose UTF-8 bytes were decoded
// with a legacy single-byte code page, possibly more than once.
//
// Repair is modeled as an ordered chain of strategies. Each strategy reports
// whether it produced a result; the first success wins and an exhausted chain
// returns the input unchanged. Nothing in this package returns an error.
//
// The default chain holds a single heuristic pass that only rewrites runs of
// text which re-encode to valid UTF-8, so clean text (including CJK names)
// passes through untouched. The legacy chain mirrors the fallback order used
// when the heuristic is unavailable: windows-1252, then ISO-8859-1, then
// percent-decoding.
package textrepair
