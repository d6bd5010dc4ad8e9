package assets

import (
	"bytes"
	"errors"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vango-dev/ssrgoods/internal/logging"
)

// Cache policies for HandlerOptions.CacheControl.
const (
	CacheControlNone       = "none"
	CacheControlProduction = "production"
)

// HandlerOptions configures Handler.
type HandlerOptions struct {
	// Prefix is the URL path the assets are mounted under (default: "/").
	Prefix string

	// CacheControl is "none", "production" or "" for no Cache-Control header.
	CacheControl string
}

// Handler serves assets from src.
//
// Only GET and HEAD are allowed. Request paths are sanitized so that no
// request can escape the source. Responses carry a SHA-256 ETag and answer
// If-None-Match with 304.
func Handler(src Source, opts HandlerOptions) http.Handler {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		rel, ok := relPath(prefix, r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}

		a, err := src.Open(r.Context(), rel)
		if errors.Is(err, ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			logFor(r).Error().Err(err).Str("asset", rel).Msg("asset source failed")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("ETag", a.ETag)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if a.ContentType != "" {
			w.Header().Set("Content-Type", a.ContentType)
		}
		applyCacheHeaders(w, opts.CacheControl, rel)

		if etagMatches(r.Header.Get("If-None-Match"), a.ETag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		http.ServeContent(w, r, rel, a.ModTime, bytes.NewReader(a.Body))
	})
}

func logFor(r *http.Request) *zerolog.Logger {
	return logging.FromContext(r.Context())
}

// relPath returns a sanitized relative path for a request path.
// It rejects traversal and absolute-path tricks.
func relPath(prefix, urlPath string) (string, bool) {
	if !strings.HasPrefix(urlPath, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(urlPath, prefix)
	if rel == "" {
		return "", false
	}

	// Reject NUL early (can appear via %00).
	if strings.IndexByte(rel, 0) != -1 {
		return "", false
	}

	// Reject platform-dependent separators.
	if strings.Contains(rel, "\\") {
		return "", false
	}

	// After prefix stripping, a leading "/" is an absolute-path attempt
	// (e.g. "/static//etc/passwd" => "/etc/passwd").
	if strings.HasPrefix(rel, "/") {
		return "", false
	}

	// Reject dot-segments before cleaning so traversal is not cleaned away.
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || clean == "" || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", false
	}

	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}

	return clean, true
}

// applyCacheHeaders sets Cache-Control for the given policy.
func applyCacheHeaders(w http.ResponseWriter, policy, name string) {
	switch policy {
	case CacheControlNone:
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")

	case CacheControlProduction:
		if isFingerprinted(name) {
			// Fingerprinted files are immutable - cache for 1 year
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
		}
	}
}

// ValidCacheControl reports whether policy is a known cache policy.
func ValidCacheControl(policy string) bool {
	switch policy {
	case "", CacheControlNone, CacheControlProduction:
		return true
	}
	return false
}

// isFingerprinted checks if a file name carries a content hash,
// e.g. "bundle.a1b2c3d4.js".
func isFingerprinted(name string) bool {
	parts := strings.Split(path.Base(name), ".")
	if len(parts) < 3 {
		return false
	}

	// Hashes are 8+ hex characters before the extension
	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

func etagMatches(ifNoneMatchHeader, etag string) bool {
	if ifNoneMatchHeader == "" || etag == "" {
		return false
	}
	// Handle lists: If-None-Match: "abc", W/"def"
	for _, part := range strings.Split(ifNoneMatchHeader, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == "*" || candidate == etag {
			return true
		}
		if strings.HasPrefix(candidate, "W/") && strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
