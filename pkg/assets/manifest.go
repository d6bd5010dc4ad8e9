package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ManifestName is the manifest file looked up next to the client bundle.
const ManifestName = "manifest.json"

// Manifest maps asset names to their fingerprinted names:
//
//	{"bundle.js": "bundle.a1b2c3d4.js"}
//
// It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// LoadManifest reads name from src. A missing manifest yields an empty one,
// so unfingerprinted asset trees work unchanged.
func LoadManifest(ctx context.Context, src Source, name string) (*Manifest, error) {
	a, err := src.Open(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return NewManifest(), nil
	}
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	if err := json.Unmarshal(a.Body, &entries); err != nil {
		return nil, fmt.Errorf("assets: parse %s: %w", name, err)
	}
	if entries == nil {
		entries = make(map[string]string)
	}
	return &Manifest{entries: entries}, nil
}

// Resolve returns the fingerprinted name for source, or source unchanged.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Set adds or updates an entry in the manifest.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[source] = resolved
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
