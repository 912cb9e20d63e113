package cache

import (
	"context"
	"time"
)

// NullCache backs --no-cache and the "none" backend: every lookup misses and
// writes are dropped, so each run encodes, lays out and renders from scratch.
// It does not implement Clearer; "cache clear" uses that to
// report that caching is off.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
