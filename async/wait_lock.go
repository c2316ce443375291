package async

import "sync"

// WaitLock is a reusable one-shot gate: goroutines block on Wait until some
// other goroutine calls Open.
type WaitLock struct {
	mutex  sync.Mutex
	signal chan struct{}
	open   bool
}

func NewWaitLock() *WaitLock {
	return &WaitLock{
		signal: make(chan struct{}),
	}
}

func NewOpenWaitLock() *WaitLock {
	l := NewWaitLock()
	l.Open()
	return l
}

func (l *WaitLock) Wait() {
	l.mutex.Lock()
	signal := l.signal
	open := l.open
	l.mutex.Unlock()
	if open {
		return
	}
	<-signal
}

func (l *WaitLock) Open() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.open {
		return
	}
	l.open = true
	close(l.signal)
}

// Lock re-arms an opened gate so it can be waited on again.
func (l *WaitLock) Lock() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if !l.open {
		return
	}
	l.open = false
	l.signal = make(chan struct{})
}

func (l *WaitLock) IsOpen() bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.open
}
