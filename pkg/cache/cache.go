// Package cache stores pipeline results keyed by content hashes.
//
// Backends:
//   - FileCache: one JSON file per entry, for the CLI
//   - RedisCache: shared cache for `placard serve` deployments
//   - MongoCache: document store with a TTL index
//   - NullCache: caching disabled
//
// Keys are produced by a Keyer so that callers never assemble them by hand.
// A layout is keyed by the hash of its definition and the engine options; an
// artifact by the hash of the layout and the emitter options.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry type.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLIcon     = 24 * time.Hour
)

// Keyer generates cache keys.
type Keyer interface {
	// IconKey keys a resolved icon.
	IconKey(source, key string) string

	// LayoutKey keys a computed layout.
	LayoutKey(definitionHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the definition that change a layout.
type LayoutKeyOpts struct {
	// OptionsHash is the hash of the serialized engine options.
	OptionsHash string `json:"options_hash"`
	FontFloor   int    `json:"font_floor"`
	Tolerance   int    `json:"tolerance"`
}

// ArtifactKeyOpts are the inputs besides the layout that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Grid   bool    `json:"grid,omitempty"`
	Icons  string  `json:"icons,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// IconKey returns "icon:<source>:<key>".
func (DefaultKeyer) IconKey(source, key string) string {
	return "icon:" + source + ":" + key
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(definitionHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", definitionHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
