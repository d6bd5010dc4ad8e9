package assets

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"os"
)

//go:embed dist
var dist embed.FS

// FSSource serves assets from an fs.FS.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a Source over fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Embedded returns the Source holding the client bundle shipped in the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(err)
	}
	return NewFSSource(sub)
}

// Dir returns a Source serving the files under dir.
func Dir(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir))
}

// Open implements Source.
func (s *FSSource) Open(ctx context.Context, name string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) {
		return nil, ErrNotFound
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return newAsset(name, body, info.ModTime(), ""), nil
}
