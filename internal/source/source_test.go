package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"beadcolors/internal/config"
	"beadcolors/internal/s3store"
)

type fakeS3 struct {
	objects map[string]string
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.keys = append(f.keys, key)
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte(body)))}, nil
}

func (f *fakeS3) PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return nil, errors.New("not supported")
}

func TestDirRead(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "perler"), []byte("dump"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := NewDir(dir)

	text, err := src.Read(context.Background(), "perler")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if text != "dump" {
		t.Fatalf("unexpected text %q", text)
	}

	_, err = src.Read(context.Background(), "hama")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing file, got %v", err)
	}
}

func TestDirReadOtherErrorsAreNotNotFound(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "mard"), 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := NewDir(dir).Read(context.Background(), "mard")
	if err == nil {
		t.Fatal("expected error reading a directory")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("directory read should not be classified as not found: %v", err)
	}
}

func TestDirReadHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDir(t.TempDir()).Read(ctx, "perler"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBucketRead(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"dumps/rsc/ikea": "ikea dump"}}
	src := NewBucket(fake, s3store.Location{Bucket: "dumps", Key: "rsc"})

	text, err := src.Read(context.Background(), "ikea")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if text != "ikea dump" {
		t.Fatalf("unexpected text %q", text)
	}
	if _, err := src.Read(context.Background(), "nabbi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if src.Location() != "s3://dumps/rsc" {
		t.Fatalf("unexpected location %q", src.Location())
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"dumps/perler": "p"}}
	old := newS3Client
	newS3Client = func(context.Context, config.S3) (s3store.API, error) { return fake, nil }
	t.Cleanup(func() { newS3Client = old })

	src, err := Open(context.Background(), "s3://dumps", config.S3{Region: "us-east-1"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := src.(*Bucket); !ok {
		t.Fatalf("expected *Bucket, got %T", src)
	}
	if text, err := src.Read(context.Background(), "perler"); err != nil || text != "p" {
		t.Fatalf("unexpected read %q %v", text, err)
	}

	dir := t.TempDir()
	local, err := Open(context.Background(), "file://"+dir, config.S3{})
	if err != nil {
		t.Fatalf("Open local: %v", err)
	}
	if local.Location() != dir {
		t.Fatalf("expected file:// prefix stripped, got %q", local.Location())
	}
}
