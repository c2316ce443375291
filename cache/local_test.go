package cache

import (
	"testing"
	"time"

	"github.com/dlshle/cachesvc/test_utils"
)

func TestLocalStoreLRU(t *testing.T) {
	test_utils.NewGroup("local store lru", "recency ordering and capacity bounds").Cases(
		test_utils.New("evicts the least recently used key past capacity", func() {
			store := NewLocalStore[int](2, 0)
			store.Set("a", 1)
			store.Set("b", 2)
			store.Set("c", 3)
			_, found := store.Get("a")
			test_utils.AssertFalse(found)
			bVal, found := store.Get("b")
			test_utils.AssertTrue(found)
			test_utils.AssertEquals(bVal, 2)
			cVal, found := store.Get("c")
			test_utils.AssertTrue(found)
			test_utils.AssertEquals(cVal, 3)
			test_utils.AssertEquals(store.Stats().Evictions, int64(1))
		}),
		test_utils.New("get bumps the key to most recently used", func() {
			store := NewLocalStore[int](2, 0)
			store.Set("a", 1)
			store.Set("b", 2)
			store.Get("a")
			store.Set("c", 3)
			aVal, found := store.Get("a")
			test_utils.AssertTrue(found)
			test_utils.AssertEquals(aVal, 1)
			_, found = store.Get("b")
			test_utils.AssertFalse(found)
			cVal, found := store.Get("c")
			test_utils.AssertTrue(found)
			test_utils.AssertEquals(cVal, 3)
		}),
		test_utils.New("size never exceeds capacity", func() {
			store := NewLocalStore[int](5, 0)
			for i := 0; i < 100; i++ {
				store.Set(string(rune('a'+i%26))+"-key", i)
				test_utils.AssertTrue(store.Len() <= 5)
			}
		}),
		test_utils.New("replacing an existing key does not count as an eviction", func() {
			store := NewLocalStore[int](2, 0)
			store.Set("a", 1)
			store.Set("a", 10)
			test_utils.AssertEquals(store.Stats().Evictions, int64(0))
			test_utils.AssertEquals(store.Len(), 1)
			aVal, found := store.Get("a")
			test_utils.AssertTrue(found)
			test_utils.AssertEquals(aVal, 10)
		}),
		test_utils.New("capacity zero evicts every entry it just inserted", func() {
			store := NewLocalStore[int](0, 0)
			store.Set("a", 1)
			test_utils.AssertEquals(store.Len(), 0)
			_, found := store.Get("a")
			test_utils.AssertFalse(found)
			test_utils.AssertEquals(store.Stats().Evictions, int64(1))
			test_utils.AssertEquals(store.Stats().UsagePercent(), float64(0))
		}),
	).Do(t)
}

func TestLocalStoreTTL(t *testing.T) {
	test_utils.NewGroup("local store ttl", "lazy and eager expiration").Cases(
		test_utils.New("entry expires after its ttl", func() {
			store := NewLocalStore[string](10, 0)
			store.SetWithTTL("x", "v", time.Millisecond*50)
			xVal, found := store.Get("x")
			test_utils.AssertTrue(found)
			test_utils.AssertEquals(xVal, "v")

			time.Sleep(time.Millisecond * 80)
			_, found = store.Get("x")
			test_utils.AssertFalse(found)
			test_utils.AssertEquals(store.Stats().Expirations, int64(1))
		}),
		test_utils.New("ttl <= 0 never expires", func() {
			store := NewLocalStore[string](10, 0)
			store.SetWithTTL("forever", "v", 0)
			time.Sleep(time.Millisecond * 30)
			_, found := store.Get("forever")
			test_utils.AssertTrue(found)
		}),
		test_utils.New("sweep removes every expired entry", func() {
			store := NewLocalStore[int](10, 0)
			store.SetWithTTL("a", 1, time.Millisecond*20)
			store.SetWithTTL("b", 2, time.Millisecond*20)
			store.SetWithTTL("c", 3, time.Millisecond*20)
			store.Set("keep", 4)
			time.Sleep(time.Millisecond * 50)
			removed, err := store.SweepExpired()
			test_utils.AssertNil(err)
			test_utils.AssertEquals(removed, 3)
			test_utils.AssertEquals(store.Len(), 1)
			test_utils.AssertEquals(store.Stats().Expirations, int64(3))
		}),
		test_utils.New("exists is a pure peek", func() {
			store := NewLocalStore[int](2, 0)
			store.Set("a", 1)
			store.Set("b", 2)
			test_utils.AssertTrue(store.Exists("a"))
			test_utils.AssertFalse(store.Exists("nope"))
			snapshot := store.Stats()
			test_utils.AssertEquals(snapshot.Hits, int64(0))
			test_utils.AssertEquals(snapshot.Misses, int64(0))

			// exists must not have bumped recency, so a is still the oldest
			store.Set("c", 3)
			_, found := store.Get("a")
			test_utils.AssertFalse(found)
		}),
		test_utils.New("exists on an expired entry reports absent", func() {
			store := NewLocalStore[int](10, 0)
			store.SetWithTTL("x", 1, time.Millisecond*20)
			time.Sleep(time.Millisecond * 50)
			test_utils.AssertFalse(store.Exists("x"))
			test_utils.AssertEquals(store.Stats().Expirations, int64(1))
			test_utils.AssertEquals(store.Stats().Misses, int64(0))
		}),
		test_utils.New("default ttl applies to plain set", func() {
			store := NewLocalStore[string](10, time.Millisecond*40)
			store.Set("x", "v")
			_, found := store.Get("x")
			test_utils.AssertTrue(found)
			time.Sleep(time.Millisecond * 70)
			_, found = store.Get("x")
			test_utils.AssertFalse(found)
		}),
	).Do(t)
}

func TestLocalStoreStats(t *testing.T) {
	test_utils.NewGroup("local store stats", "counter semantics").Cases(
		test_utils.New("hit rate is hits over requests", func() {
			store := NewLocalStore[int](10, 0)
			store.Set("a", 1)
			store.Set("b", 2)
			store.Set("c", 3)
			store.Get("a")
			store.Get("b")
			store.Get("c")
			for i := 0; i < 7; i++ {
				store.Get("missing")
			}
			snapshot := store.Stats()
			test_utils.AssertEquals(snapshot.Hits, int64(3))
			test_utils.AssertEquals(snapshot.Misses, int64(7))
			test_utils.AssertEquals(snapshot.HitRatePercent(), float64(30))
		}),
		test_utils.New("hit rate is zero before any request", func() {
			store := NewLocalStore[int](10, 0)
			test_utils.AssertEquals(store.Stats().HitRatePercent(), float64(0))
		}),
		test_utils.New("delete on an absent key is a no-op", func() {
			store := NewLocalStore[int](10, 0)
			store.Set("a", 1)
			before := store.Stats()
			deleted, err := store.Delete("nope")
			test_utils.AssertNil(err)
			test_utils.AssertFalse(deleted)
			after := store.Stats()
			test_utils.AssertEquals(before, after)

			deleted, err = store.Delete("a")
			test_utils.AssertNil(err)
			test_utils.AssertTrue(deleted)
			test_utils.AssertEquals(store.Len(), 0)
		}),
		test_utils.New("clear keeps cumulative counters", func() {
			store := NewLocalStore[int](10, 0)
			store.Set("a", 1)
			store.Get("a")
			store.Get("missing")
			test_utils.AssertNil(store.Clear())
			snapshot := store.Stats()
			test_utils.AssertEquals(snapshot.Size, 0)
			test_utils.AssertEquals(snapshot.Hits, int64(1))
			test_utils.AssertEquals(snapshot.Misses, int64(1))
		}),
	).Do(t)
}

func TestLocalStoreTopEntries(t *testing.T) {
	test_utils.NewGroup("local store top entries", "diagnostic snapshot").Cases(
		test_utils.New("orders by hit count descending", func() {
			store := NewLocalStore[int](10, 0)
			store.Set("a", 1)
			store.Set("b", 2)
			store.Set("c", 3)
			store.Get("a")
			store.Get("a")
			store.Get("a")
			store.Get("b")
			top := store.TopEntries(2)
			test_utils.AssertEquals(len(top), 2)
			test_utils.AssertEquals(top[0].Key, "a")
			test_utils.AssertEquals(top[0].Hits, int64(3))
			test_utils.AssertEquals(top[1].Key, "b")
			_, err := time.Parse(time.RFC3339, top[0].LastAccess)
			test_utils.AssertNil(err)
			test_utils.AssertTrue(top[0].AgeSeconds >= 0)
		}),
		test_utils.New("does not mutate recency", func() {
			store := NewLocalStore[int](2, 0)
			store.Set("a", 1)
			store.Set("b", 2)
			store.TopEntries(10)
			store.Set("c", 3)
			_, found := store.Get("a")
			test_utils.AssertFalse(found)
		}),
	).Do(t)
}

func TestLocalStoreConcurrentAccess(t *testing.T) {
	store := NewLocalStore[int](64, 0)
	writer := func() {
		for i := 0; i < 200; i++ {
			store.Set(string(rune('a'+i%26)), i)
		}
	}
	reader := func() {
		for i := 0; i < 200; i++ {
			store.Get(string(rune('a' + i%26)))
			store.Exists(string(rune('a' + i%26)))
			store.Stats()
		}
	}
	test_utils.NewGroup("local store concurrency", "no torn state under parallel access").
		Concurrently("parallel readers and writers", "", writer, writer, reader, reader).
		Then("store stays within capacity", func() {
			test_utils.AssertTrue(store.Len() <= 64)
		}).Do(t)
}
