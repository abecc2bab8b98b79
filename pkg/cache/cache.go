// Package cache stores solver reports and rendered artifacts so repeated
// requests for the same point set skip the expensive brute-force run.
//
// Three backends implement [Cache]:
//   - [FileCache] for the CLI (one JSON file per entry under the XDG cache dir)
//   - [RedisCache] for the HTTP server when several instances share results
//   - [NullCache] when caching is disabled
//
// Keys are produced by a [Keyer] from content hashes, so identical point
// sets map to identical keys regardless of where they came from.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. The boolean is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs for cached entries.
const (
	ReportTTL   = 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeReport   = "report"
	KeyTypeArtifact = "artifact"
)

// ReportKeyOpts are the inputs that change a solver report.
type ReportKeyOpts struct {
	Solvers []string `json:"solvers"`
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Title  string  `json:"title,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ReportKey returns the key for a report on the point set with the given hash.
	ReportKey(pointsHash string, opts ReportKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from a scene
	// (points plus report) with the given hash.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey implements Keyer.
func (DefaultKeyer) ReportKey(pointsHash string, opts ReportKeyOpts) string {
	return hashKey(KeyTypeReport, pointsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, sceneHash, opts)
}
