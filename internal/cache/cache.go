package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores parsed datasets keyed by content hash, so repeated loads
// of the same item file or catalog skip re-parsing.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from raw dataset bytes. Hashing the content
// rather than the path means an edited file never serves a stale parse.
func Key(data []byte) string {
	hash := sha256.Sum256(data)
	return "argcoder:v1:" + hex.EncodeToString(hash[:])
}

// Nop is a Cache that stores nothing; used when caching is disabled.
type Nop struct{}

func (Nop) Get(string) ([]byte, bool)               { return nil, false }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error                     { return nil }
func (Nop) Clear() error                            { return nil }
