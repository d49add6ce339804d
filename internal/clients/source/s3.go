package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// SchemeS3 is the URI scheme served by S3Loader.
const SchemeS3 = "s3"

// ErrInvalidS3URI is returned for URIs that do not name a bucket and key.
var ErrInvalidS3URI = errors.New("invalid s3 uri")

// S3Options configures the S3 client.
type S3Options struct {
	Region          string
	Endpoint        string // custom endpoint; enables path-style addressing
	AccessKeyID     string // optional static credentials
	SecretAccessKey string
	MaxBytes        int64 // documents larger than this are rejected; 0 means no limit
}

// downloader is the part of manager.Downloader the loader uses.
type downloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

// S3Loader downloads documents from S3 into memory.
type S3Loader struct {
	downloader downloader
	maxBytes   int64
	log        zerolog.Logger
}

// NewS3Loader creates a loader from the default AWS credential chain, or
// from static credentials when both keys are set.
func NewS3Loader(ctx context.Context, opts S3Options, log zerolog.Logger) (*S3Loader, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Loader(manager.NewDownloader(client), opts.MaxBytes, log), nil
}

func newS3Loader(d downloader, maxBytes int64, log zerolog.Logger) *S3Loader {
	return &S3Loader{
		downloader: d,
		maxBytes:   maxBytes,
		log:        log.With().Str("client", "s3").Logger(),
	}
}

// Open implements Loader for s3://bucket/key URIs.
func (l *S3Loader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	buf := manager.NewWriteAtBuffer(nil)
	n, err := l.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download s3://%s/%s: %w", bucket, key, err)
	}
	if l.maxBytes > 0 && n > l.maxBytes {
		return nil, fmt.Errorf("s3://%s/%s is %d bytes, limit is %d", bucket, key, n, l.maxBytes)
	}

	l.log.Debug().
		Str("bucket", bucket).
		Str("key", key).
		Int64("bytes", n).
		Msg("Downloaded trade document")

	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}

// ParseS3URI splits s3://bucket/key into its parts.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, SchemeS3+"://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q has no s3:// prefix", ErrInvalidS3URI, uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidS3URI, uri)
	}
	return bucket, key, nil
}
