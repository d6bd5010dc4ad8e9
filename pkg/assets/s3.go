package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the part of the S3 client the asset source uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source serves assets from an S3 bucket under a key prefix.
//
// Example usage:
//
//	client := assets.NewS3Client(assets.S3Options{Region: "us-east-1"})
//	src := assets.NewS3Source(client, "my-bucket", "ssr/public/")
type S3Source struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Source creates a Source reading bucket/prefix+name.
func NewS3Source(client S3API, bucket, prefix string) *S3Source {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Open implements Source.
func (s *S3Source) Open(ctx context.Context, name string) (*Asset, error) {
	key := s.prefix + name
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3 get %s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s/%s: %w", s.bucket, key, err)
	}

	a := newAsset(name, body, aws.ToTime(out.LastModified), aws.ToString(out.ContentType))
	return a, nil
}

func isS3NotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

// S3Options configures NewS3Client.
type S3Options struct {
	// Region is the bucket region (default: "us-east-1").
	Region string

	// Endpoint overrides the S3 endpoint, e.g. a MinIO server.
	Endpoint string

	// PathStyle addresses buckets as endpoint/bucket/key.
	PathStyle bool
}

// NewS3Client builds an S3 client for a public bucket. Requests are not
// signed.
func NewS3Client(opts S3Options) *s3.Client {
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	o := s3.Options{
		Region:       region,
		Credentials:  aws.AnonymousCredentials{},
		UsePathStyle: opts.PathStyle,
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return s3.New(o)
}
