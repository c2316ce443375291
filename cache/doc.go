// Package cache provides the core bounded in-memory LRU+TTL store together
// with the Backend interface every cache backend (local, redis, disk)
// implements, so namespaces can be bound to any of them interchangeably.
//
// Example usage:
//
//	// Create a local store holding up to 100 entries, no default TTL
//	store := cache.NewLocalStore[int](100, 0)
//
//	// Set a value with TTL
//	store.SetWithTTL("key1", 42, time.Minute)
//
//	// Get a value
//	if val, ok := store.Get("key1"); ok {
//		fmt.Println("Value:", val)
//	}
//
//	// Inspect counters
//	snapshot := store.Stats()
//	fmt.Println(snapshot.HitRatePercent())
package cache
