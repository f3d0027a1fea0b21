// Package cache provides the tagged result cache that sits between the API
// and its backing stores.
//
// Entries are opaque byte payloads (handlers store marshalled JSON) with a
// per-entry TTL and an optional set of tags. Flushing a tag removes every
// entry carrying it, which is how a single user's cached listings are
// invalidated without touching anyone else's. Entries stored without tags
// (word details, word listings) only ever expire by TTL.
package cache

import (
	"context"
	"time"
)

// Store is the cache capability injected into services. TryGet is a single
// atomic read: there is no separate Has that could succeed while a
// concurrent eviction makes the follow-up Get miss.
type Store interface {
	TryGet(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte, tags []string, ttl time.Duration) error
	Flush(ctx context.Context, tag string) error
	// Ping reports whether the backend is reachable, for health checks.
	Ping(ctx context.Context) error
}
