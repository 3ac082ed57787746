package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer builds cache keys for pipeline stages and HTTP responses.
//
// Keys embed every option that affects the stage output, so two runs share an
// entry only when they would produce byte-identical results.
type Keyer interface {
	// TraceKey generates a key for paths traced from the mask with the
	// given content hash.
	TraceKey(maskHash string, opts TraceKeyOpts) string

	// RefineKey generates a key for refined paths derived from the traced
	// paths with the given content hash.
	RefineKey(pathsHash string, opts RefineKeyOpts) string

	// ArtifactKey generates a key for an artifact rendered from the refined
	// paths with the given content hash.
	ArtifactKey(pathsHash string, opts ArtifactKeyOpts) string

	// HTTPKey generates a key for a cached HTTP response.
	HTTPKey(namespace, key string) string
}

// TraceKeyOpts are the options that change trace output.
type TraceKeyOpts struct {
	MinPoints int     `json:"min_points"`
	BridgeGap float64 `json:"bridge_gap"`
	Traversal string  `json:"traversal"`
	Threshold int     `json:"threshold"`
	Invert    bool    `json:"invert"`
}

// RefineKeyOpts are the options that change refine output. Worker count is
// deliberately absent: parallel filtering is deterministic per path.
type RefineKeyOpts struct {
	Filters        string  `json:"filters"`
	MergeTolerance float64 `json:"merge_tolerance"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	StrokeWidth float64 `json:"stroke_width"`
}

// DefaultKeyer is the standard key scheme described in the package
// documentation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TraceKey generates a key for traced paths.
func (k *DefaultKeyer) TraceKey(maskHash string, opts TraceKeyOpts) string {
	return hashKey("trace", maskHash, opts)
}

// RefineKey generates a key for refined paths.
func (k *DefaultKeyer) RefineKey(pathsHash string, opts RefineKeyOpts) string {
	return hashKey("refine", pathsHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(pathsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", pathsHash, opts)
}

// HTTPKey generates a key for HTTP response caching.
// The key stays human-readable for easy debugging.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
