// Package cache provides the memoization layers used by the flagging
// pipeline: a memory layer for per-value compose results and a disk
// layer for whole processed tables keyed by input and vocabulary.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the shared caching contract.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a stable cache key from its parts, typically a vocabulary
// fingerprint plus the field and raw text, or an input-file digest.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return "radflag:v1:" + hex.EncodeToString(sum[:])
}
