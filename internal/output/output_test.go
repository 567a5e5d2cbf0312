package output

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofrs/flock"

	"beadcolors/internal/config"
	"beadcolors/internal/s3store"
)

type fakeS3 struct {
	bucket, key, contentType string
	body                     []byte
}

func (f *fakeS3) GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return nil, errors.New("not supported")
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	f.contentType = aws.ToString(in.ContentType)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestFileWriteReplacesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src", "data", "beadColors.ts")
	w := NewFile(path)

	for _, content := range []string{"first", "second"} {
		if err := w.Write(context.Background(), []byte(content)); err != nil {
			t.Fatalf("Write: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != content {
			t.Fatalf("got %q want %q", got, content)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestFileWriteFailsWhenLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beadColors.ts")
	other := flock.New(path + ".lock")
	ok, err := other.TryLock()
	if err != nil || !ok {
		t.Fatalf("pre-lock: ok=%v err=%v", ok, err)
	}
	defer other.Unlock()

	err = NewFile(path).Write(context.Background(), []byte("x"))
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("locked write must not create the output")
	}
}

func TestOpenS3Output(t *testing.T) {
	fake := &fakeS3{}
	old := newS3Client
	newS3Client = func(context.Context, config.S3) (s3store.API, error) { return fake, nil }
	t.Cleanup(func() { newS3Client = old })

	w, err := Open(context.Background(), "s3://site/data/beadColors.json", config.S3{}, "application/json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := w.Write(context.Background(), []byte("{}")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if fake.bucket != "site" || fake.key != "data/beadColors.json" || string(fake.body) != "{}" || fake.contentType != "application/json" {
		t.Fatalf("unexpected put %+v", fake)
	}

	if _, err := Open(context.Background(), "s3://site/data/", config.S3{}, ""); err == nil {
		t.Fatal("expected error for prefix-only output")
	}
}

func TestOpenLocalOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ts")
	w, err := Open(context.Background(), "file://"+path, config.S3{}, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if w.Location() != path {
		t.Fatalf("unexpected location %q", w.Location())
	}
}
