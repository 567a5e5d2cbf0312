// Package s3store wraps the handful of S3 calls beadcolors needs behind a
// small interface so sources and outputs can be exercised with fakes.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"beadcolors/internal/config"
)

// ErrNotFound reports a missing bucket key.
var ErrNotFound = errors.New("s3 object not found")

// API is the minimal subset of s3 client methods used here.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewClient builds an S3 client from the default AWS credential chain and
// the [s3] config section.
func NewClient(ctx context.Context, cfg config.S3) (API, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// Location is a parsed s3://bucket/key URI.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// Join appends name to the key as a path element.
func (l Location) Join(name string) Location {
	key := strings.TrimSuffix(l.Key, "/")
	if key == "" {
		return Location{Bucket: l.Bucket, Key: name}
	}
	return Location{Bucket: l.Bucket, Key: key + "/" + name}
}

// ParseURI splits an s3:// URI. The key may be empty for bucket roots.
func ParseURI(uri string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return Location{}, fmt.Errorf("parse s3 uri: %w", err)
	}
	if !strings.EqualFold(u.Scheme, "s3") {
		return Location{}, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return Location{}, fmt.Errorf("s3 uri %q has no bucket", uri)
	}
	return Location{Bucket: u.Host, Key: strings.TrimPrefix(u.Path, "/")}, nil
}

// Get reads the whole object. A missing key is reported as ErrNotFound.
func Get(ctx context.Context, client API, loc Location) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noKey) || errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", loc, ErrNotFound)
		}
		return nil, fmt.Errorf("get %s: %w", loc, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", loc, err)
	}
	return data, nil
}

// Put uploads data as a single object.
func Put(ctx context.Context, client API, loc Location, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(loc.Bucket),
		Key:           aws.String(loc.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %s: %w", loc, err)
	}
	return nil
}
