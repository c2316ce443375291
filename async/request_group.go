package async

import "sync"

// RequestGroup de-duplicates concurrent invocations by key: while one call for
// a key is in flight, later callers wait for it and share its result instead
// of invoking fn again. Used by the cache service to give memoized producers
// optional single-flight semantics on cold keys.
type RequestGroup interface {
	Do(key string, fn func() (any, error)) (any, error)
}

type inFlightCall struct {
	res      any
	err      error
	waitable *WaitLock
}

func (c *inFlightCall) waitAndGet() (any, error) {
	c.waitable.Wait()
	return c.res, c.err
}

type requestGroup struct {
	calls  map[string]*inFlightCall
	rwLock *sync.RWMutex
}

func NewRequestGroup() RequestGroup {
	return requestGroup{
		calls:  make(map[string]*inFlightCall),
		rwLock: new(sync.RWMutex),
	}
}

func (g requestGroup) Do(key string, fn func() (any, error)) (any, error) {
	call := g.get(key)
	if call == nil {
		call = g.create(key, fn)
	}
	return call.waitAndGet()
}

func (g requestGroup) create(key string, fn func() (any, error)) (call *inFlightCall) {
	var (
		callExists bool
		waitLock   *WaitLock
	)
	g.withWrite(func() {
		existing := g.calls[key]
		if existing != nil && !existing.waitable.IsOpen() {
			call = existing
			callExists = true
			return
		}
		waitLock = NewWaitLock()
		call = &inFlightCall{nil, nil, waitLock}
		g.calls[key] = call
	})
	if callExists {
		return
	}
	call.res, call.err = fn()
	g.withWrite(func() {
		waitLock.Open()
		delete(g.calls, key)
	})
	return
}

func (g requestGroup) get(key string) (call *inFlightCall) {
	g.withRead(func() {
		call = g.calls[key]
	})
	return
}

func (g requestGroup) withRead(cb func()) {
	g.rwLock.RLock()
	defer g.rwLock.RUnlock()
	cb()
}

func (g requestGroup) withWrite(cb func()) {
	g.rwLock.Lock()
	defer g.rwLock.Unlock()
	cb()
}
