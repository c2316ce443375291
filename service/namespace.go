package service

import (
	"time"

	"github.com/dlshle/cachesvc/async"
	"github.com/dlshle/cachesvc/cache"
	"github.com/dlshle/cachesvc/logging"
)

// Producer computes the value for a missing key.
type Producer func() (any, error)

// Namespace is the per-namespace handle business services hold on to. It is
// bound to one backend at construction and applies the namespace's default
// TTL to writes that do not carry an explicit one.
type Namespace struct {
	name    string
	backend cache.Backend[any]
	group   async.RequestGroup // nil unless singleFlight is configured
	logger  logging.Logger
}

func newNamespace(name string, backend cache.Backend[any], singleFlight bool) *Namespace {
	ns := &Namespace{
		name:    name,
		backend: backend,
		logger:  logging.GlobalLogger.WithPrefix("[Namespace:" + name + "]"),
	}
	if singleFlight {
		ns.group = async.NewRequestGroup()
	}
	return ns
}

func (n *Namespace) Name() string {
	return n.name
}

func (n *Namespace) Get(key string) (any, bool) {
	return n.backend.Get(key)
}

func (n *Namespace) Set(key string, value any) error {
	return n.backend.Set(key, value)
}

func (n *Namespace) SetWithTTL(key string, value any, ttl time.Duration) error {
	return n.backend.SetWithTTL(key, value, ttl)
}

func (n *Namespace) Delete(key string) (bool, error) {
	return n.backend.Delete(key)
}

func (n *Namespace) Exists(key string) bool {
	return n.backend.Exists(key)
}

func (n *Namespace) Clear() error {
	return n.backend.Clear()
}

func (n *Namespace) SweepExpired() (int, error) {
	return n.backend.SweepExpired()
}

func (n *Namespace) Stats() cache.Snapshot {
	return n.backend.Stats()
}

func (n *Namespace) TopEntries(limit int) []cache.EntryInfo {
	return n.backend.TopEntries(limit)
}

// GetOrCompute returns the cached value for key, or invokes producer on a
// miss, caches its result with the namespace default TTL and returns it. A
// valid hit never invokes producer. Unless singleFlight is configured,
// concurrent misses on the same key may each invoke producer (last write
// wins), which is only acceptable for idempotent producers.
func (n *Namespace) GetOrCompute(key string, producer Producer) (any, error) {
	return n.getOrCompute(key, producer, 0, true)
}

// GetOrComputeWithTTL is GetOrCompute with an explicit TTL for the computed
// value; ttl <= 0 caches it without expiry.
func (n *Namespace) GetOrComputeWithTTL(key string, producer Producer, ttl time.Duration) (any, error) {
	return n.getOrCompute(key, producer, ttl, false)
}

func (n *Namespace) getOrCompute(key string, producer Producer, ttl time.Duration, useDefaultTTL bool) (any, error) {
	if value, ok := n.backend.Get(key); ok {
		return value, nil
	}
	if n.group != nil {
		return n.group.Do(key, func() (any, error) {
			// an earlier flight may have populated the key while we waited
			if value, ok := n.backend.Get(key); ok {
				return value, nil
			}
			return n.computeAndStore(key, producer, ttl, useDefaultTTL)
		})
	}
	return n.computeAndStore(key, producer, ttl, useDefaultTTL)
}

// computeAndStore runs producer outside any store lock so a slow computation
// never blocks unrelated readers of the namespace.
func (n *Namespace) computeAndStore(key string, producer Producer, ttl time.Duration, useDefaultTTL bool) (any, error) {
	value, err := producer()
	if err != nil {
		// producer failures propagate untouched; nothing is cached
		return nil, err
	}
	if useDefaultTTL {
		err = n.backend.Set(key, value)
	} else {
		err = n.backend.SetWithTTL(key, value, ttl)
	}
	if err != nil {
		// the computed value is still valid, only caching it failed
		n.logger.Warnf("failed to cache computed value for key %s: %v", key, err)
	}
	return value, nil
}
