package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/roomgen/pkg/observability"
)

// Instrument wraps c so every lookup and write is reported to the cache
// hooks, labelled with the key's prefix ("dungeon", "artifact").
func Instrument(c Cache) Cache {
	return &instrumented{Cache: c}
}

type instrumented struct {
	Cache
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

// keyType returns the key segment naming its kind, skipping any scope
// prefix.
func keyType(key string) string {
	for _, t := range []string{prefixDungeon, prefixArtifact} {
		if strings.Contains(key, t+":") {
			return t
		}
	}
	return "other"
}
