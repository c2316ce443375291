package cache

import (
	"time"
)

// Backend defines the common capability surface every cache backend
// implementation provides. A namespace is bound to exactly one Backend at
// construction time and never branches on the backend kind afterwards.
type Backend[V any] interface {
	// Get retrieves a value by key; an absent or expired entry is a miss
	Get(key string) (V, bool)

	// Set adds or updates a value without TTL (never expires)
	Set(key string, value V) error

	// SetWithTTL adds or updates a value; ttl <= 0 means the entry never
	// expires, which is distinct from expiring immediately
	SetWithTTL(key string, value V, ttl time.Duration) error

	// Delete removes a value by key; true iff an entry existed
	Delete(key string) (bool, error)

	// Exists checks if a valid (non-expired) entry exists without updating
	// recency, hit count or the hit/miss counters
	Exists(key string) bool

	// Clear removes all entries owned by this store; cumulative counters
	// are kept
	Clear() error

	// SweepExpired eagerly removes every expired entry and reports how many
	// were removed
	SweepExpired() (int, error)

	// Stats returns a point-in-time snapshot of the store's counters
	Stats() Snapshot

	// TopEntries returns up to limit entries ordered by hit count descending
	TopEntries(limit int) []EntryInfo

	// Close releases backend resources
	Close() error
}
