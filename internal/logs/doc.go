// Package logs reads back the JSON run log written by the convert command.
//
// Tail keeps memory bounded when showing the last N lines and polls for new
// lines in follow mode until the caller's context ends. Entry decodes one
// JSON log line so the CLI can filter a single run or brand.
package logs
