package redis

import (
	"time"

	goredis "github.com/go-redis/redis"

	"github.com/dlshle/cachesvc/retry"
)

const ErrNotFoundStr = "redis: nil"

// write commands are retried on transient failures; reads are not, a miss
// there is handled by the store's degradation policy
var writeRetryOpts = retry.WithRetryOptions(&retry.RetryOptions{
	MaxRetries: 3,
	Interval:   time.Millisecond * 50,
	Backoff:    2,
})

// RedisClient is a thin wrapper around go-redis carrying the cache's
// connection and timeout configuration. Timeouts apply to every command; on
// timeout the underlying client surfaces an error and the store decides how
// to degrade.
type RedisClient struct {
	client *goredis.Client
}

func NewRedisClient(addr, password string, timeout time.Duration) *RedisClient {
	return &RedisClient{
		client: goredis.NewClient(&goredis.Options{
			Addr:         addr,
			Password:     password,
			DialTimeout:  timeout,
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		}),
	}
}

func (c *RedisClient) Ping() error {
	return c.client.Ping().Err()
}

func (c *RedisClient) Get(key string) (string, error) {
	return c.client.Get(key).Result()
}

// SetWithExpiration stores a value; ttl <= 0 stores without expiry.
func (c *RedisClient) SetWithExpiration(key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return retry.RetryWithBackoff(func() error {
		return c.client.Set(key, value, ttl).Err()
	}, writeRetryOpts)
}

func (c *RedisClient) Delete(key string) (int64, error) {
	return retry.RetryWithBackoff1(func() (int64, error) {
		return c.client.Del(key).Result()
	}, writeRetryOpts)
}

func (c *RedisClient) Exists(key string) (bool, error) {
	count, err := c.client.Exists(key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByPrefix scans and removes every key under prefix. It never issues a
// FLUSH: other namespaces sharing the backend must stay intact.
func (c *RedisClient) DeleteByPrefix(prefix string) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, nextCursor, err := c.client.Scan(cursor, prefix+"*", 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			count, err := c.client.Del(keys...).Result()
			deleted += count
			if err != nil {
				return deleted, err
			}
		}
		if nextCursor == 0 {
			return deleted, nil
		}
		cursor = nextCursor
	}
}

func (c *RedisClient) Close() error {
	return c.client.Close()
}

func IsNotFoundErr(err error) bool {
	return err == goredis.Nil
}
