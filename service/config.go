package service

import (
	"encoding/json"
	"os"

	"github.com/dlshle/cachesvc/errors"
)

type BackendKind string

const (
	BackendLocal  BackendKind = "local"
	BackendRemote BackendKind = "remote"
	BackendDisk   BackendKind = "disk"
)

// NamespaceConfig configures one cache namespace. Namespaces are fully
// independent: capacity, TTL and backend of one never affect another.
type NamespaceConfig struct {
	Capacity          int         `json:"capacity"`
	DefaultTTLSeconds int         `json:"defaultTTLSeconds"` // 0 = never expire
	Backend           BackendKind `json:"backend"`
	RemoteEndpoint    string      `json:"remoteEndpoint"` // remote only, falls back to Config.RemoteAddr
	KeyPrefix         string      `json:"keyPrefix"`      // remote only, defaults to the namespace name
	DiskPath          string      `json:"diskPath"`       // disk only
	SingleFlight      bool        `json:"singleFlight"`   // de-duplicate concurrent computes per key
}

// Config is the process-wide cache configuration, read once at startup.
type Config struct {
	DefaultToRemote      bool                       `json:"defaultToRemote"`
	RemoteAddr           string                     `json:"remoteAddr"`
	RemotePassword       string                     `json:"remotePassword"`
	RemoteTimeoutMs      int                        `json:"remoteTimeoutMs"`
	SweepIntervalSeconds int                        `json:"sweepIntervalSeconds"` // 0 = default, < 0 disables the janitor
	Namespaces           map[string]NamespaceConfig `json:"namespaces"`
}

func LoadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WrapWithStackTrace(err)
	}
	if err = json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Errorf("malformed cache config %s: %v", path, err)
	}
	return cfg, nil
}

const (
	defaultSweepIntervalSeconds = 60
	defaultRemoteTimeoutMs      = 3000
)

func (c Config) withDefaults() Config {
	if c.SweepIntervalSeconds == 0 {
		c.SweepIntervalSeconds = defaultSweepIntervalSeconds
	}
	if c.RemoteTimeoutMs <= 0 {
		c.RemoteTimeoutMs = defaultRemoteTimeoutMs
	}
	namespaces := make(map[string]NamespaceConfig, len(c.Namespaces))
	for name, nsCfg := range c.Namespaces {
		if nsCfg.Backend == "" {
			if c.DefaultToRemote {
				nsCfg.Backend = BackendRemote
			} else {
				nsCfg.Backend = BackendLocal
			}
		}
		if nsCfg.Backend == BackendRemote {
			if nsCfg.RemoteEndpoint == "" {
				nsCfg.RemoteEndpoint = c.RemoteAddr
			}
			if nsCfg.KeyPrefix == "" {
				nsCfg.KeyPrefix = name
			}
		}
		namespaces[name] = nsCfg
	}
	c.Namespaces = namespaces
	return c
}

// validate rejects configurations the service cannot safely run with;
// failures here are fatal at startup.
func (c Config) validate() error {
	for name, nsCfg := range c.Namespaces {
		switch nsCfg.Backend {
		case BackendLocal:
			if nsCfg.Capacity <= 0 {
				return errors.Errorf("namespace %s: local backend requires a positive capacity, got %d", name, nsCfg.Capacity)
			}
		case BackendRemote:
			if nsCfg.RemoteEndpoint == "" {
				return errors.Errorf("namespace %s: remote backend requires an endpoint", name)
			}
		case BackendDisk:
			if nsCfg.DiskPath == "" {
				return errors.Errorf("namespace %s: disk backend requires a db path", name)
			}
		default:
			return errors.Errorf("namespace %s: unknown backend kind %s", name, nsCfg.Backend)
		}
		if nsCfg.DefaultTTLSeconds < 0 {
			return errors.Errorf("namespace %s: negative default TTL %d", name, nsCfg.DefaultTTLSeconds)
		}
	}
	return nil
}
