// Package cache provides the TTL cache in front of the external fetchers.
// The engine itself is stateless; only fetch results are cached.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface the fetchers consume.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
	Clear()
}

// Key generates a cache key from a fetch target (handle or URL).
func Key(kind, target string) string {
	hash := sha256.Sum256([]byte(kind + ":" + target))
	return "forge:v1:" + hex.EncodeToString(hash[:])
}
