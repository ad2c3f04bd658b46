// Package compiler drives the host compiler against generated sources
// and caches the resulting Artifact by content fingerprint: a
// sync.RWMutex-guarded map keyed by a content hash instead of by name
// and mtime, since a content hash never goes stale and there is
// nothing for an IsValid/mtime check to do here.
package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"

	"github.com/codingersid/gottl/host"
)

// ArtifactCache maps a fingerprint to its compiled Artifact, shared
// process-wide. Safe for concurrent use.
type ArtifactCache struct {
	mu        sync.RWMutex
	artifacts map[string]*host.Artifact
}

// NewArtifactCache creates an empty cache.
func NewArtifactCache() *ArtifactCache {
	return &ArtifactCache{artifacts: make(map[string]*host.Artifact)}
}

// Get returns the cached artifact for fingerprint, if present.
func (c *ArtifactCache) Get(fingerprint string) (*host.Artifact, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.artifacts[fingerprint]
	return a, ok
}

// Set stores artifact under fingerprint.
func (c *ArtifactCache) Set(fingerprint string, artifact *host.Artifact) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.artifacts[fingerprint] = artifact
}

// Size reports the number of cached artifacts.
func (c *ArtifactCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.artifacts)
}

// Fingerprint computes a stable hash over a bundle's generated
// sources, sorted by name and separated by a record separator byte --
// the cache key. sha256 is used rather than md5 for collision
// resistance; the fingerprint only keys the cache and never names a
// file on disk.
func Fingerprint(sources map[string]string) string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	const recordSep = byte(0x1e)
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{recordSep})
		h.Write([]byte(sources[name]))
		h.Write([]byte{recordSep})
	}
	return hex.EncodeToString(h.Sum(nil))
}
