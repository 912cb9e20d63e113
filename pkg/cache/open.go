package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendNone  = "none"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend    string `toml:"backend"`    // file (default), none, redis or mongo
	Dir        string `toml:"dir"`        // file backend directory
	URL        string `toml:"url"`        // redis:// or mongodb:// URL
	Database   string `toml:"database"`   // mongo only
	Collection string `toml:"collection"` // mongo only
	Prefix     string `toml:"prefix"`     // redis key prefix
	KeyPrefix  string `toml:"key_prefix"` // namespace for every pipeline key, any backend
}

// Keyer returns the keyer for cfg: the default keyer, scoped by KeyPrefix
// when one is set.
func (cfg Config) Keyer() Keyer {
	if cfg.KeyPrefix == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(NewDefaultKeyer(), cfg.KeyPrefix)
}

// Open creates the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache requires a directory")
		}
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	case BackendRedis:
		if cfg.URL == "" {
			return nil, fmt.Errorf("redis cache requires a url")
		}
		c, err := NewRedisCache(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		if cfg.Prefix != "" {
			c.prefix = cfg.Prefix
		}
		return c, nil
	case BackendMongo:
		if cfg.URL == "" {
			return nil, fmt.Errorf("mongo cache requires a url")
		}
		c, err := NewMongoCache(ctx, cfg.URL, cfg.Database, cfg.Collection)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
