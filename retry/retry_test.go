package retry

import (
	"testing"
	"time"

	"github.com/dlshle/cachesvc/errors"
	"github.com/dlshle/cachesvc/test_utils"
)

func TestRetry(t *testing.T) {
	test_utils.NewGroup("retry", "").Cases(
		test_utils.New("succeeds without retrying", func() {
			attempts := 0
			err := Retry(func() error {
				attempts++
				return nil
			})
			test_utils.AssertNil(err)
			test_utils.AssertEquals(attempts, 1)
		}),
		test_utils.New("single attempt surfaces the error", func() {
			attempts := 0
			err := Retry(func() error {
				attempts++
				return errors.Error("transient")
			})
			test_utils.AssertNonNil(err)
			test_utils.AssertEquals(attempts, 1)
		}),
		test_utils.New("backoff keeps trying until success", func() {
			attempts := 0
			err := RetryWithBackoff(func() error {
				attempts++
				if attempts < 3 {
					return errors.Error("transient")
				}
				return nil
			}, WithRetryOptions(&RetryOptions{
				MaxRetries: 5,
				Interval:   time.Millisecond,
				Backoff:    2,
			}))
			test_utils.AssertNil(err)
			test_utils.AssertEquals(attempts, 3)
		}),
		test_utils.New("backoff gives up after max attempts", func() {
			attempts := 0
			err := RetryWithBackoff(func() error {
				attempts++
				return errors.Error("still down")
			}, WithRetryOptions(&RetryOptions{
				MaxRetries: 3,
				Interval:   time.Millisecond,
				Backoff:    1,
			}))
			test_utils.AssertNonNil(err)
			test_utils.AssertEquals(attempts, 3)
		}),
		test_utils.New("typed variant returns the result", func() {
			res, err := RetryWithBackoff1(func() (int, error) {
				return 42, nil
			}, WithRetryOptions(&RetryOptions{MaxRetries: 2}))
			test_utils.AssertNil(err)
			test_utils.AssertEquals(res, 42)
		}),
	).Do(t)
}
