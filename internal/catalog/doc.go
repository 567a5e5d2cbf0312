// Package catalog assembles per-brand color lists into the addressable bead
// color library.
//
// The catalog keeps brands in the order of the brand table and exposes the
// accessors consumed by clients: per-brand libraries, the flattened color
// list (always led by the transparent sentinel), id lookup and a perceptual
// nearest-color match. A Catalog is immutable once built.
package catalog
