// Package cache provides the response cache used to short-circuit repeated
// questions. Two implementations are available: a Redis-backed client for
// deployments and an in-memory client for development and tests. Both are
// safe for concurrent use.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// ErrCacheMiss indicates the key is not present (or has expired).
var ErrCacheMiss = errors.New("cache miss")

// Client is the cache interface the assistant depends on.
type Client interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix removes every key starting with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
	// Close releases the client's resources.
	Close() error
}

// Key joins parts into a colon-separated cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// QuestionKey derives a bounded cache key from a free-form question. The
// question is normalized (trimmed, lowercased) before hashing so trivially
// different phrasings of the same text share an entry.
func QuestionKey(question string) string {
	norm := strings.ToLower(strings.TrimSpace(question))
	sum := sha256.Sum256([]byte(norm))
	return Key("answers", hex.EncodeToString(sum[:8]))
}
