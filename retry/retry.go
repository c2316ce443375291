package retry

import "time"

// RetryOptions controls how many attempts a task gets and how the pause
// between attempts grows. Backoff multiplies the interval after each failure.
type RetryOptions struct {
	MaxRetries int
	Interval   time.Duration
	Backoff    float32
}

type RetryOpt func(*RetryOptions) *RetryOptions

func WithRetryOptions(options *RetryOptions) RetryOpt {
	return func(ro *RetryOptions) *RetryOptions {
		return options
	}
}

func singleAttemptOpt(ro *RetryOptions) *RetryOptions {
	ro.MaxRetries = 1
	return ro
}

// Retry runs task once regardless of the configured attempt count.
func Retry(task func() error, opts ...RetryOpt) error {
	return RetryWithBackoff(task, append(opts, singleAttemptOpt)...)
}

// RetryWithBackoff runs task until it succeeds or MaxRetries attempts are
// exhausted, sleeping a growing interval between attempts. The last error is
// returned when every attempt fails.
func RetryWithBackoff(task func() error, opts ...RetryOpt) (err error) {
	cfg := &RetryOptions{
		MaxRetries: 1,
		Backoff:    1,
	}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 1
	}
	interval := cfg.Interval
	for attempt := 0; attempt < cfg.MaxRetries; attempt++ {
		if err = task(); err == nil {
			return nil
		}
		if attempt < cfg.MaxRetries-1 && interval > 0 {
			time.Sleep(interval)
			interval = time.Duration(float32(interval) * cfg.Backoff)
		}
	}
	return
}

func Retry1[T any](task func() (T, error), opts ...RetryOpt) (T, error) {
	return RetryWithBackoff1(task, append(opts, singleAttemptOpt)...)
}

func RetryWithBackoff1[T any](task func() (T, error), opts ...RetryOpt) (res T, err error) {
	err = RetryWithBackoff(func() error {
		res, err = task()
		return err
	}, opts...)
	return
}
