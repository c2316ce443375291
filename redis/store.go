// Package redis implements the remote cache backend over a shared redis
// instance. Values cross a JSON serialization boundary; TTL handling is
// delegated to redis' own expiry mechanism.
package redis

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/dlshle/cachesvc/cache"
	"github.com/dlshle/cachesvc/errors"
	"github.com/dlshle/cachesvc/logging"
)

// RemoteStore adapts a redis backend to the cache.Backend surface.
//
// Availability policy: reads (Get/Exists) degrade to absent when the backend
// is unreachable, writes (Set/Delete) surface the failure so the caller can
// retry or proceed uncached. A value that fails to encode on Set is a hard
// error, never a silent miss; a value that fails to decode on Get is deleted
// (read-repair) and treated as a miss.
type RemoteStore[V any] struct {
	client     *RedisClient
	keyPrefix  string
	defaultTTL time.Duration
	logger     logging.Logger

	hits   int64
	misses int64
}

// NewRemoteStore creates a store whose keys all live under keyPrefix. The
// client may be shared by several namespaces; the prefix keeps them apart.
func NewRemoteStore[V any](client *RedisClient, keyPrefix string, defaultTTL time.Duration) *RemoteStore[V] {
	return &RemoteStore[V]{
		client:     client,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
		logger:     logging.GlobalLogger.WithPrefix("[RemoteStore:" + keyPrefix + "]"),
	}
}

func (s *RemoteStore[V]) Get(key string) (V, bool) {
	var zero V
	data, err := s.client.Get(s.prefixed(key))
	if IsNotFoundErr(err) {
		atomic.AddInt64(&s.misses, 1)
		return zero, false
	}
	if err != nil {
		// backend unavailable: favor availability, treat as absent
		s.logger.Warnf("get %s degraded to miss: %v", key, err)
		atomic.AddInt64(&s.misses, 1)
		return zero, false
	}
	var value V
	if err = json.Unmarshal([]byte(data), &value); err != nil {
		// read-repair: drop the corrupted entry
		s.logger.Errorf("corrupted entry %s deleted: %v", key, err)
		s.client.Delete(s.prefixed(key))
		atomic.AddInt64(&s.misses, 1)
		return zero, false
	}
	atomic.AddInt64(&s.hits, 1)
	return value, true
}

func (s *RemoteStore[V]) Set(key string, value V) error {
	return s.SetWithTTL(key, value, s.defaultTTL)
}

func (s *RemoteStore[V]) SetWithTTL(key string, value V, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Errorf("unable to serialize value for key %s: %v", key, err)
	}
	if err = s.client.SetWithExpiration(s.prefixed(key), string(data), ttl); err != nil {
		return errors.WrapWithStackTrace(err)
	}
	return nil
}

func (s *RemoteStore[V]) Delete(key string) (bool, error) {
	count, err := s.client.Delete(s.prefixed(key))
	if err != nil {
		return false, errors.WrapWithStackTrace(err)
	}
	return count > 0, nil
}

func (s *RemoteStore[V]) Exists(key string) bool {
	exists, err := s.client.Exists(s.prefixed(key))
	if err != nil {
		s.logger.Warnf("exists %s degraded to false: %v", key, err)
		return false
	}
	return exists
}

// Clear removes every key under this store's prefix, never a global flush.
func (s *RemoteStore[V]) Clear() error {
	if _, err := s.client.DeleteByPrefix(s.keyPrefix + keySeparator); err != nil {
		return errors.WrapWithStackTrace(err)
	}
	return nil
}

// SweepExpired is a no-op: redis expires keys on its own.
func (s *RemoteStore[V]) SweepExpired() (int, error) {
	return 0, nil
}

// Stats reports locally tracked hit/miss counters; size, capacity, evictions
// and expirations are not observable from this side of the wire.
func (s *RemoteStore[V]) Stats() cache.Snapshot {
	return cache.Snapshot{
		Size:        cache.Unknown,
		Capacity:    cache.Unknown,
		Hits:        atomic.LoadInt64(&s.hits),
		Misses:      atomic.LoadInt64(&s.misses),
		Evictions:   cache.Unknown,
		Expirations: cache.Unknown,
	}
}

// TopEntries is not observable for a remote backend.
func (s *RemoteStore[V]) TopEntries(limit int) []cache.EntryInfo {
	return nil
}

// Close is a no-op when the client is shared; the service closes clients it
// owns once all namespaces are shut down.
func (s *RemoteStore[V]) Close() error {
	return nil
}

const keySeparator = ":"

func (s *RemoteStore[V]) prefixed(key string) string {
	return s.keyPrefix + keySeparator + key
}
