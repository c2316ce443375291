// Package gr_context provides goroutine-scoped key value storage. It is used
// to attach contextual data (e.g. logging context such as the request or
// namespace being served) to the current goroutine without threading it
// through every call in the cache path.
package gr_context

import (
	"strconv"
	"strings"
	"sync"

	"github.com/petermattis/goid"
)

var (
	mutex sync.RWMutex
	store = make(map[string]any)
)

func Put(key string, v any) {
	mutex.Lock()
	defer mutex.Unlock()
	store[scopedKey(key)] = v
}

func Get(key string) any {
	mutex.RLock()
	defer mutex.RUnlock()
	return store[scopedKey(key)]
}

func GetByPrefix(prefix string) map[string]any {
	mutex.RLock()
	defer mutex.RUnlock()
	scoped := scopedKey(prefix)
	res := make(map[string]any)
	for k, v := range store {
		if strings.HasPrefix(k, scoped) {
			res[k[len(scopedKey("")):]] = v
		}
	}
	return res
}

func Delete(key string) {
	mutex.Lock()
	defer mutex.Unlock()
	delete(store, scopedKey(key))
}

func ClearByPrefix(prefix string) {
	mutex.Lock()
	defer mutex.Unlock()
	scoped := scopedKey(prefix)
	for k := range store {
		if strings.HasPrefix(k, scoped) {
			delete(store, k)
		}
	}
}

func Clear() {
	ClearByPrefix("")
}

// scopedKey prefixes the key with the current goroutine ID so entries from
// different goroutines never collide.
func scopedKey(key string) string {
	return strconv.FormatInt(goid.Get(), 10) + "/" + key
}
