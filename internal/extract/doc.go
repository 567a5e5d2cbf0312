// Package extract locates bead color records inside RSC dump text.
//
// A dump is a stream of serialized component fragments. Each swatch starts
// with an anchor of the form ["$","div","<Marker>:<Code>" and is followed,
// somewhere later on the same line, by a "backgroundColor":"#RRGGBB" property
// and then a "children":"<name>" property. Unrelated markup may sit between
// the three fields.
//
// Scanner is a forward-only lexer over the raw text that yields candidate
// tuples without backtracking. Extractor consumes the candidates, repairs the
// names, drops repeated codes and derives ids and RGB channels.
package extract
