// Package service routes cache calls by (namespace, key) across a fixed set
// of independently configured namespaces, aggregates their statistics and
// runs the background janitor. A Service is constructed once at process
// startup and passed to consumers by reference; there is no ambient global
// cache instance.
package service

import (
	"time"

	"github.com/dlshle/cachesvc/cache"
	"github.com/dlshle/cachesvc/errors"
	"github.com/dlshle/cachesvc/logging"
	"github.com/dlshle/cachesvc/redis"
	"github.com/dlshle/cachesvc/store"
)

// ErrUnknownNamespace is returned for namespace names that were never
// registered. Lookups are deliberately fail-closed: routing a typo to a
// shared catch-all namespace would silently pollute it across features.
var ErrUnknownNamespace = errors.Error("unknown cache namespace")

type Service struct {
	namespaces map[string]*Namespace
	clients    map[string]*redis.RedisClient // shared per endpoint, owned by the service
	janitor    *janitor
	logger     logging.Logger
}

// New validates cfg and builds every configured namespace. Configuration
// problems are fatal here rather than surfacing later mid-request.
func New(cfg Config) (*Service, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Service{
		namespaces: make(map[string]*Namespace),
		clients:    make(map[string]*redis.RedisClient),
		logger:     logging.GlobalLogger.WithPrefix("[CacheService]"),
	}
	for name, nsCfg := range cfg.Namespaces {
		backend, err := s.buildBackend(cfg, nsCfg)
		if err != nil {
			s.closeAll()
			return nil, err
		}
		s.namespaces[name] = newNamespace(name, backend, nsCfg.SingleFlight)
	}
	if cfg.SweepIntervalSeconds > 0 {
		s.janitor = newJanitor(s, time.Duration(cfg.SweepIntervalSeconds)*time.Second)
		s.janitor.start()
	}
	return s, nil
}

// Namespace resolves a registered namespace handle.
func (s *Service) Namespace(name string) (*Namespace, error) {
	ns, exists := s.namespaces[name]
	if !exists {
		return nil, ErrUnknownNamespace
	}
	return ns, nil
}

func (s *Service) Get(namespace, key string) (any, bool, error) {
	ns, err := s.Namespace(namespace)
	if err != nil {
		return nil, false, err
	}
	value, found := ns.Get(key)
	return value, found, nil
}

func (s *Service) Set(namespace, key string, value any) error {
	ns, err := s.Namespace(namespace)
	if err != nil {
		return err
	}
	return ns.Set(key, value)
}

func (s *Service) SetWithTTL(namespace, key string, value any, ttl time.Duration) error {
	ns, err := s.Namespace(namespace)
	if err != nil {
		return err
	}
	return ns.SetWithTTL(key, value, ttl)
}

func (s *Service) Delete(namespace, key string) (bool, error) {
	ns, err := s.Namespace(namespace)
	if err != nil {
		return false, err
	}
	return ns.Delete(key)
}

func (s *Service) Exists(namespace, key string) (bool, error) {
	ns, err := s.Namespace(namespace)
	if err != nil {
		return false, err
	}
	return ns.Exists(key), nil
}

func (s *Service) Clear(namespace string) error {
	ns, err := s.Namespace(namespace)
	if err != nil {
		return err
	}
	return ns.Clear()
}

func (s *Service) GetOrCompute(namespace, key string, producer Producer) (any, error) {
	ns, err := s.Namespace(namespace)
	if err != nil {
		return nil, err
	}
	return ns.GetOrCompute(key, producer)
}

func (s *Service) GetOrComputeWithTTL(namespace, key string, producer Producer, ttl time.Duration) (any, error) {
	ns, err := s.Namespace(namespace)
	if err != nil {
		return nil, err
	}
	return ns.GetOrComputeWithTTL(key, producer, ttl)
}

func (s *Service) TopEntries(namespace string, limit int) ([]cache.EntryInfo, error) {
	ns, err := s.Namespace(namespace)
	if err != nil {
		return nil, err
	}
	return ns.TopEntries(limit), nil
}

// ServiceStats aggregates per-namespace snapshots with a computed grand
// total. Dimensions a backend reports as Unknown are skipped in the total
// rather than poisoning the sums.
type ServiceStats struct {
	Namespaces map[string]cache.Snapshot `json:"namespaces"`
	Total      cache.Snapshot            `json:"total"`
}

func (s *Service) Stats() ServiceStats {
	stats := ServiceStats{
		Namespaces: make(map[string]cache.Snapshot, len(s.namespaces)),
	}
	for name, ns := range s.namespaces {
		snapshot := ns.Stats()
		stats.Namespaces[name] = snapshot
		addKnown(&stats.Total.Size, snapshot.Size)
		addKnown(&stats.Total.Capacity, snapshot.Capacity)
		addKnown64(&stats.Total.Hits, snapshot.Hits)
		addKnown64(&stats.Total.Misses, snapshot.Misses)
		addKnown64(&stats.Total.Evictions, snapshot.Evictions)
		addKnown64(&stats.Total.Expirations, snapshot.Expirations)
	}
	return stats
}

// Close stops the janitor and releases every backend and shared client.
func (s *Service) Close() error {
	if s.janitor != nil {
		s.janitor.stop()
	}
	return s.closeAll()
}

func (s *Service) closeAll() error {
	multiErr := errors.NewMultiError()
	for name, ns := range s.namespaces {
		if err := ns.backend.Close(); err != nil {
			multiErr.Add(errors.Errorf("closing namespace %s: %v", name, err))
		}
	}
	for endpoint, client := range s.clients {
		if err := client.Close(); err != nil {
			multiErr.Add(errors.Errorf("closing redis client %s: %v", endpoint, err))
		}
	}
	if multiErr.Size() > 0 {
		return multiErr
	}
	return nil
}

func (s *Service) buildBackend(cfg Config, nsCfg NamespaceConfig) (cache.Backend[any], error) {
	defaultTTL := time.Duration(nsCfg.DefaultTTLSeconds) * time.Second
	switch nsCfg.Backend {
	case BackendLocal:
		return cache.NewLocalStore[any](nsCfg.Capacity, defaultTTL), nil
	case BackendRemote:
		return redis.NewRemoteStore[any](s.clientFor(cfg, nsCfg.RemoteEndpoint), nsCfg.KeyPrefix, defaultTTL), nil
	case BackendDisk:
		return store.NewDiskStore[any](nsCfg.DiskPath, defaultTTL)
	default:
		// unreachable after validate
		return nil, errors.Errorf("unknown backend kind %s", nsCfg.Backend)
	}
}

// clientFor returns the shared client for an endpoint, creating it on first
// use so several remote namespaces reuse one connection pool.
func (s *Service) clientFor(cfg Config, endpoint string) *redis.RedisClient {
	if client, exists := s.clients[endpoint]; exists {
		return client
	}
	client := redis.NewRedisClient(endpoint, cfg.RemotePassword, time.Duration(cfg.RemoteTimeoutMs)*time.Millisecond)
	s.clients[endpoint] = client
	return client
}

func addKnown(total *int, value int) {
	if value != cache.Unknown {
		*total += value
	}
}

func addKnown64(total *int64, value int64) {
	if value >= 0 {
		*total += value
	}
}
