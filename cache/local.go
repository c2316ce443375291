package cache

import (
	"container/list"
	"sort"
	"sync"
	"time"
)

// LocalStore is the bounded in-memory LRU+TTL engine. Recency is maintained
// by a doubly linked list plus a key index, giving O(1) move-to-front and
// O(1) eviction of the least recently used entry.
//
// All operations acquire the store mutex for their full duration and perform
// no I/O while holding it.
type LocalStore[V any] struct {
	capacity   int
	defaultTTL time.Duration
	items      map[string]*list.Element
	list       *list.List // front = most recently used
	mutex      sync.RWMutex

	hits        int64
	misses      int64
	evictions   int64
	expirations int64
}

// NewLocalStore creates a local store with the specified capacity. Set uses
// defaultTTL; defaultTTL <= 0 means entries never expire unless an explicit
// TTL is given.
func NewLocalStore[V any](capacity int, defaultTTL time.Duration) *LocalStore[V] {
	if capacity < 0 {
		capacity = 0
	}
	return &LocalStore[V]{
		capacity:   capacity,
		defaultTTL: defaultTTL,
		items:      make(map[string]*list.Element),
		list:       list.New(),
	}
}

// Get retrieves a value by key, bumping the entry to most recently used.
func (s *LocalStore[V]) Get(key string) (V, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var zero V
	element, exists := s.items[key]
	if !exists {
		s.misses++
		return zero, false
	}
	e := element.Value.(*entry[V])
	now := time.Now()
	if e.expired(now) {
		// lazily expired on access
		s.removeElement(element)
		s.misses++
		s.expirations++
		return zero, false
	}
	s.hits++
	e.hitCount++
	e.lastAccessAt = now
	s.list.MoveToFront(element)
	return e.value, true
}

// Set adds or updates a value with the store's default TTL.
func (s *LocalStore[V]) Set(key string, value V) error {
	return s.SetWithTTL(key, value, s.defaultTTL)
}

// SetWithTTL adds or updates a value. Replacing an existing key is not an
// eviction; only capacity removals count toward the eviction counter.
func (s *LocalStore[V]) SetWithTTL(key string, value V, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if element, exists := s.items[key]; exists {
		s.removeElement(element)
	}

	now := time.Now()
	e := &entry[V]{
		key:          key,
		value:        value,
		createdAt:    now,
		lastAccessAt: now,
	}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	s.items[key] = s.list.PushFront(e)

	// trim after insert so a capacity-0 store immediately evicts whatever it
	// just inserted instead of growing past its bound
	for s.list.Len() > s.capacity {
		s.evictOldest()
	}
	return nil
}

// Delete removes a value by key; true iff an entry existed.
func (s *LocalStore[V]) Delete(key string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	element, exists := s.items[key]
	if !exists {
		return false, nil
	}
	s.removeElement(element)
	return true, nil
}

// Exists reports whether a valid entry is present. It is a pure peek: no
// recency bump, no hit count update, no hit/miss accounting. An entry found
// expired is still removed and counted as an expiration.
func (s *LocalStore[V]) Exists(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	element, exists := s.items[key]
	if !exists {
		return false
	}
	if element.Value.(*entry[V]).expired(time.Now()) {
		s.removeElement(element)
		s.expirations++
		return false
	}
	return true
}

// Clear removes all entries; cumulative stats counters are kept.
func (s *LocalStore[V]) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.items = make(map[string]*list.Element)
	s.list.Init()
	return nil
}

// SweepExpired eagerly removes every expired entry.
func (s *LocalStore[V]) SweepExpired() (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	removed := 0
	for element := s.list.Back(); element != nil; {
		prev := element.Prev()
		if element.Value.(*entry[V]).expired(now) {
			s.removeElement(element)
			removed++
		}
		element = prev
	}
	s.expirations += int64(removed)
	return removed, nil
}

// Stats returns a point-in-time snapshot of the store's counters.
func (s *LocalStore[V]) Stats() Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return Snapshot{
		Size:        s.list.Len(),
		Capacity:    s.capacity,
		Hits:        s.hits,
		Misses:      s.misses,
		Evictions:   s.evictions,
		Expirations: s.expirations,
	}
}

// TopEntries returns up to limit entries ordered by hit count descending.
// It does not mutate recency or any counter.
func (s *LocalStore[V]) TopEntries(limit int) []EntryInfo {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := time.Now()
	infos := make([]EntryInfo, 0, s.list.Len())
	for element := s.list.Front(); element != nil; element = element.Next() {
		e := element.Value.(*entry[V])
		if e.expired(now) {
			continue
		}
		infos = append(infos, EntryInfo{
			Key:        e.key,
			Hits:       e.hitCount,
			AgeSeconds: now.Sub(e.createdAt).Seconds(),
			LastAccess: e.lastAccessAt.Format(time.RFC3339),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Hits > infos[j].Hits
	})
	if limit >= 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos
}

// Len returns the number of items currently held, including not yet swept
// expired entries.
func (s *LocalStore[V]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.list.Len()
}

// Keys returns all keys in the store.
func (s *LocalStore[V]) Keys() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	return keys
}

func (s *LocalStore[V]) Close() error {
	return s.Clear()
}

// evictOldest removes the least recently used entry and counts the eviction.
func (s *LocalStore[V]) evictOldest() {
	element := s.list.Back()
	if element != nil {
		s.removeElement(element)
		s.evictions++
	}
}

func (s *LocalStore[V]) removeElement(element *list.Element) {
	e := element.Value.(*entry[V])
	delete(s.items, e.key)
	s.list.Remove(element)
}
