// Package main hosts the beadcolors CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the conversion pipeline, queries the
// assembled catalog, inspects run history, and scaffolds configuration. It
// centralizes configuration resolution and logger setup so subcommands can
// focus on presentation.
//
// Keep this package lean: add functionality to the internal packages first,
// then surface it through dedicated commands or flags here.
package main
