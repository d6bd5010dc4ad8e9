package assets

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, aws.ToString(in.Bucket)+"/"+key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{
		Body:         io.NopCloser(strings.NewReader(body)),
		ContentType:  aws.String("application/javascript"),
		LastModified: aws.Time(time.Unix(1700000000, 0)),
	}, nil
}

func TestS3SourceOpen(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"ssr/public/bundle.js": "bundle"}}
	src := NewS3Source(client, "assets", "ssr/public")

	a, err := src.Open(context.Background(), "bundle.js")
	require.NoError(t, err)
	assert.Equal(t, "bundle", string(a.Body))
	assert.Equal(t, "application/javascript", a.ContentType)
	assert.Equal(t, time.Unix(1700000000, 0), a.ModTime)
	assert.Equal(t, []string{"assets/ssr/public/bundle.js"}, client.keys)
}

func TestS3SourceNotFound(t *testing.T) {
	src := NewS3Source(&fakeS3{objects: map[string]string{}}, "assets", "")
	_, err := src.Open(context.Background(), "bundle.js")
	assert.ErrorIs(t, err, ErrNotFound)

	apiErr := &smithy.GenericAPIError{Code: "NotFound", Message: "not found"}
	src = NewS3Source(&fakeS3{err: apiErr}, "assets", "")
	_, err = src.Open(context.Background(), "bundle.js")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3SourceError(t *testing.T) {
	boom := errors.New("access denied")
	src := NewS3Source(&fakeS3{err: boom}, "assets", "")
	_, err := src.Open(context.Background(), "bundle.js")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewS3Client(t *testing.T) {
	c := NewS3Client(S3Options{Endpoint: "http://127.0.0.1:9000", PathStyle: true})
	require.NotNil(t, c)

	o := c.Options()
	assert.Equal(t, "us-east-1", o.Region)
	assert.True(t, o.UsePathStyle)
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(o.BaseEndpoint))
}
