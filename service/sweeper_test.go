package service

import (
	"testing"
	"time"

	"github.com/dlshle/cachesvc/test_utils"
)

func TestJanitor(t *testing.T) {
	svc, _ := New(Config{
		SweepIntervalSeconds: -1, // swept by the janitor under test instead
		Namespaces: map[string]NamespaceConfig{
			"volatile": {Capacity: 16},
			"stable":   {Capacity: 16},
		},
	})
	defer svc.Close()
	j := newJanitor(svc, time.Millisecond*40)

	test_utils.NewGroup("janitor", "eager background expiration").Cases(
		test_utils.New("sweeps expired entries from every namespace", func() {
			volatile, err := svc.Namespace("volatile")
			test_utils.AssertNil(err)
			volatile.SetWithTTL("a", 1, time.Millisecond*20)
			volatile.SetWithTTL("b", 2, time.Millisecond*20)
			volatile.Set("keep", 3)
			stable, err := svc.Namespace("stable")
			test_utils.AssertNil(err)
			stable.Set("forever", 4)

			j.start()
			time.Sleep(time.Millisecond * 100)

			test_utils.AssertEquals(volatile.Stats().Size, 1)
			test_utils.AssertEquals(volatile.Stats().Expirations, int64(2))
			test_utils.AssertEquals(stable.Stats().Size, 1)
			test_utils.AssertEquals(stable.Stats().Expirations, int64(0))
		}),
		test_utils.New("stop returns within one sweep interval", func() {
			start := time.Now()
			j.stop()
			test_utils.AssertTrue(time.Since(start) < time.Millisecond*80)
		}),
	).Do(t)
}
