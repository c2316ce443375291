// Package store implements the disk cache backend on top of badger. It is an
// opt-in backend kind for namespaces whose working set should live off-heap;
// the default backend stays in-memory.
package store

import (
	"encoding/json"
	"sync/atomic"
	"time"

	badger "github.com/dgraph-io/badger/v3"

	"github.com/dlshle/cachesvc/cache"
	"github.com/dlshle/cachesvc/errors"
	"github.com/dlshle/cachesvc/logging"
)

// DiskStore adapts a namespace-private badger DB to the cache.Backend
// surface. TTL is delegated to badger's native entry expiry; values cross the
// same JSON serialization boundary as the remote backend, with the same
// hard-error-on-write and read-repair-on-read rules.
type DiskStore[V any] struct {
	db         *badger.DB
	defaultTTL time.Duration
	logger     logging.Logger

	hits   int64
	misses int64
}

// NewDiskStore opens (or creates) the badger DB at dbPath. Each disk
// namespace owns its whole DB directory, so Clear can drop everything without
// touching other namespaces.
func NewDiskStore[V any](dbPath string, defaultTTL time.Duration) (*DiskStore[V], error) {
	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	if err != nil {
		return nil, errors.WrapWithStackTrace(err)
	}
	return &DiskStore[V]{
		db:         db,
		defaultTTL: defaultTTL,
		logger:     logging.GlobalLogger.WithPrefix("[DiskStore:" + dbPath + "]"),
	}, nil
}

func (s *DiskStore[V]) Get(key string) (V, bool) {
	var (
		zero V
		data []byte
	)
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		atomic.AddInt64(&s.misses, 1)
		return zero, false
	}
	if err != nil {
		s.logger.Warnf("get %s degraded to miss: %v", key, err)
		atomic.AddInt64(&s.misses, 1)
		return zero, false
	}
	var value V
	if err = json.Unmarshal(data, &value); err != nil {
		// read-repair: drop the corrupted entry
		s.logger.Errorf("corrupted entry %s deleted: %v", key, err)
		s.Delete(key)
		atomic.AddInt64(&s.misses, 1)
		return zero, false
	}
	atomic.AddInt64(&s.hits, 1)
	return value, true
}

func (s *DiskStore[V]) Set(key string, value V) error {
	return s.SetWithTTL(key, value, s.defaultTTL)
}

func (s *DiskStore[V]) SetWithTTL(key string, value V, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Errorf("unable to serialize value for key %s: %v", key, err)
	}
	err = s.db.Update(func(tx *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return tx.SetEntry(e)
	})
	if err != nil {
		return errors.WrapWithStackTrace(err)
	}
	return nil
}

func (s *DiskStore[V]) Delete(key string) (bool, error) {
	existed := false
	err := s.db.Update(func(tx *badger.Txn) error {
		if _, err := tx.Get([]byte(key)); err == badger.ErrKeyNotFound {
			return nil
		} else if err != nil {
			return err
		}
		existed = true
		return tx.Delete([]byte(key))
	})
	if err != nil {
		return false, errors.WrapWithStackTrace(err)
	}
	return existed, nil
}

func (s *DiskStore[V]) Exists(key string) bool {
	err := s.db.View(func(tx *badger.Txn) error {
		_, err := tx.Get([]byte(key))
		return err
	})
	if err != nil && err != badger.ErrKeyNotFound {
		s.logger.Warnf("exists %s degraded to false: %v", key, err)
	}
	return err == nil
}

// Clear drops the entire DB; it is namespace-private so nothing else shares it.
func (s *DiskStore[V]) Clear() error {
	if err := s.db.DropAll(); err != nil {
		return errors.WrapWithStackTrace(err)
	}
	return nil
}

// SweepExpired reclaims value-log space; badger already hides expired entries
// on read, so no removals are reported.
func (s *DiskStore[V]) SweepExpired() (int, error) {
	// gc removes only one file at a time, keep running till it errors
	for s.db.RunValueLogGC(0.7) == nil {
	}
	return 0, nil
}

func (s *DiskStore[V]) Stats() cache.Snapshot {
	return cache.Snapshot{
		Size:        s.countKeys(),
		Capacity:    cache.Unknown,
		Hits:        atomic.LoadInt64(&s.hits),
		Misses:      atomic.LoadInt64(&s.misses),
		Evictions:   0,
		Expirations: cache.Unknown,
	}
}

// TopEntries is not observable: per-entry hit counts are not persisted.
func (s *DiskStore[V]) TopEntries(limit int) []cache.EntryInfo {
	return nil
}

func (s *DiskStore[V]) Close() error {
	return s.db.Close()
}

func (s *DiskStore[V]) countKeys() int {
	count := 0
	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := tx.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		s.logger.Warnf("key count failed: %v", err)
		return cache.Unknown
	}
	return count
}
