package assets

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"mime"
	"path"
	"time"
)

// ErrNotFound is returned by a Source when the asset does not exist.
var ErrNotFound = errors.New("assets: not found")

// Source serves named assets. Names are slash-separated and relative,
// e.g. "bundle.js".
type Source interface {
	Open(ctx context.Context, name string) (*Asset, error)
}

// Asset is one loaded asset.
type Asset struct {
	Name        string
	Body        []byte
	ModTime     time.Time
	ContentType string
	ETag        string
}

// newAsset fills in content type and ETag for body.
func newAsset(name string, body []byte, modTime time.Time, contentType string) *Asset {
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(name))
	}
	sum := sha256.Sum256(body)
	return &Asset{
		Name:        name,
		Body:        body,
		ModTime:     modTime,
		ContentType: contentType,
		ETag:        fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:])),
	}
}
