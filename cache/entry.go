package cache

import "time"

type entry[V any] struct {
	key          string
	value        V
	createdAt    time.Time
	expiresAt    time.Time // zero = never expires
	hitCount     int64
	lastAccessAt time.Time
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// EntryInfo is a diagnostic view of a cached entry.
type EntryInfo struct {
	Key        string  `json:"key"`
	Hits       int64   `json:"hits"`
	AgeSeconds float64 `json:"ageSeconds"`
	LastAccess string  `json:"lastAccess"` // ISO8601
}
