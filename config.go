package dcsdata

import "github.com/noa-physics/dcsdata/internal/core"

// cacheConfig wraps core.CacheConfig, keeping internal types out of the
// public option signature.
type cacheConfig struct {
	core.CacheConfig
}

func (c cacheConfig) toCoreConfig() core.CacheConfig {
	return c.CacheConfig
}
