package assets

import "strings"

// Resolver turns an asset name into the URL the page references.
type Resolver interface {
	// Asset resolves a source asset name to its URL path, e.g.
	// "bundle.js" to "/static/bundle.a1b2c3d4.js".
	Asset(source string) string
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver from a Manifest with a path prefix.
// A prefix of "" or "/" leaves names relative, matching a page at "/".
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   normalizePrefix(prefix),
	}
}

func (r *manifestResolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}

// NewPassthroughResolver creates a resolver that only applies the prefix.
func NewPassthroughResolver(prefix string) Resolver {
	return NewResolver(NewManifest(), prefix)
}

func normalizePrefix(prefix string) string {
	if prefix == "" || prefix == "/" {
		return ""
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
