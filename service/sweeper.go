package service

import (
	"sync"
	"time"

	"github.com/dlshle/cachesvc/logging"
)

// janitor periodically sweeps expired entries from every namespace on a
// single worker goroutine. A sweep failure in one namespace is logged and
// skipped; it never stops the janitor or affects other namespaces. stop
// returns within one sweep interval.
type janitor struct {
	service  *Service
	interval time.Duration
	logger   logging.Logger
	stopOnce sync.Once
	stopC    chan struct{}
	doneC    chan struct{}
}

func newJanitor(service *Service, interval time.Duration) *janitor {
	return &janitor{
		service:  service,
		interval: interval,
		logger:   logging.GlobalLogger.WithPrefix("[CacheJanitor]"),
		stopC:    make(chan struct{}),
		doneC:    make(chan struct{}),
	}
}

func (j *janitor) start() {
	go j.run()
}

func (j *janitor) run() {
	defer close(j.doneC)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			j.sweepAll()
		case <-j.stopC:
			return
		}
	}
}

func (j *janitor) sweepAll() {
	for name, ns := range j.service.namespaces {
		removed, err := ns.SweepExpired()
		if err != nil {
			j.logger.Errorf("sweep of namespace %s failed: %v", name, err)
			continue
		}
		if removed > 0 {
			j.logger.Debugf("swept %d expired entries from namespace %s", removed, name)
		}
	}
}

func (j *janitor) stop() {
	j.stopOnce.Do(func() {
		close(j.stopC)
	})
	<-j.doneC
}
