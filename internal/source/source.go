// Package source reads raw per-brand dumps from a local directory or an S3
// prefix.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"beadcolors/internal/config"
	"beadcolors/internal/s3store"
)

// ErrNotFound reports that no dump exists under the requested name.
var ErrNotFound = errors.New("source not found")

// Source returns the full text of a named dump.
type Source interface {
	Read(ctx context.Context, name string) (string, error)
	// Location describes where dumps are read from, for diagnostics.
	Location() string
}

// Dir reads dumps from files inside a directory.
type Dir struct {
	root string
}

// NewDir returns a Source rooted at dir.
func NewDir(dir string) *Dir {
	return &Dir{root: dir}
}

func (d *Dir) Location() string { return d.root }

// Read loads <root>/<name> into memory. The file is closed before returning.
func (d *Dir) Read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(d.root, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Bucket reads dumps from objects under an S3 prefix.
type Bucket struct {
	client s3store.API
	prefix s3store.Location
}

// NewBucket returns a Source reading <prefix>/<name> objects.
func NewBucket(client s3store.API, prefix s3store.Location) *Bucket {
	return &Bucket{client: client, prefix: prefix}
}

func (b *Bucket) Location() string { return b.prefix.String() }

func (b *Bucket) Read(ctx context.Context, name string) (string, error) {
	data, err := s3store.Get(ctx, b.client, b.prefix.Join(name))
	if err != nil {
		if errors.Is(err, s3store.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", b.prefix.Join(name), ErrNotFound)
		}
		return "", err
	}
	return string(data), nil
}

// newS3Client is overridden in tests.
var newS3Client = s3store.NewClient

// Open picks the backend for location: s3:// URIs use S3, anything else is
// treated as a local directory (an optional file:// prefix is stripped).
func Open(ctx context.Context, location string, s3cfg config.S3) (Source, error) {
	if config.IsRemote(location) {
		loc, err := s3store.ParseURI(location)
		if err != nil {
			return nil, err
		}
		client, err := newS3Client(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		return NewBucket(client, loc), nil
	}
	return NewDir(strings.TrimPrefix(location, "file://")), nil
}
