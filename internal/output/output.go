// Package output persists the generated artifact to a local file or an S3
// object.
package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"beadcolors/internal/config"
	"beadcolors/internal/s3store"
)

// ErrLocked reports that another run holds the output lock.
var ErrLocked = errors.New("output is locked by another beadcolors run")

// Writer stores a rendered artifact.
type Writer interface {
	Write(ctx context.Context, data []byte) error
	Location() string
}

// File writes atomically to a local path, guarded by an exclusive lock on
// <path>.lock.
type File struct {
	path string
	lock *flock.Flock
}

// NewFile returns a Writer for path.
func NewFile(path string) *File {
	return &File{path: path, lock: flock.New(path + ".lock")}
}

func (f *File) Location() string { return f.path }

// Write replaces the file contents. Readers never observe a partial file.
func (f *File) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ok, err := f.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", f.path, ErrLocked)
	}
	defer func() { _ = f.lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp output: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}

// Object uploads the artifact as a single S3 object. Puts are atomic on the
// S3 side, so no lock is taken.
type Object struct {
	client      s3store.API
	loc         s3store.Location
	contentType string
}

// NewObject returns a Writer for an S3 location.
func NewObject(client s3store.API, loc s3store.Location, contentType string) *Object {
	return &Object{client: client, loc: loc, contentType: contentType}
}

func (o *Object) Location() string { return o.loc.String() }

func (o *Object) Write(ctx context.Context, data []byte) error {
	return s3store.Put(ctx, o.client, o.loc, data, o.contentType)
}

// newS3Client is overridden in tests.
var newS3Client = s3store.NewClient

// Open picks the writer for location.
func Open(ctx context.Context, location string, s3cfg config.S3, contentType string) (Writer, error) {
	if config.IsRemote(location) {
		loc, err := s3store.ParseURI(location)
		if err != nil {
			return nil, err
		}
		if loc.Key == "" || strings.HasSuffix(loc.Key, "/") {
			return nil, fmt.Errorf("output %q must name an object key", location)
		}
		client, err := newS3Client(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		return NewObject(client, loc, contentType), nil
	}
	return NewFile(strings.TrimPrefix(location, "file://")), nil
}
