// Package config loads, normalizes, and validates beadcolors configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// BEADCOLORS_SOURCE_DIR. The Config type centralizes every knob the converter
// and CLI need: where brand dumps are read from, where the generated library
// is written, how names are repaired, and how logs are shaped.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical formats, and clear validation errors.
package config
