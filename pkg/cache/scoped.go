package cache

import "github.com/matzehuels/roomgen/pkg/generator"

// ScopedKeyer prefixes every key of an inner keyer, so several deployments
// can share one Redis without colliding:
//
//	keyer := cache.NewScopedKeyer(nil, "roomgen:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DungeonKey(opts generator.Options) string {
	return k.prefix + k.inner.DungeonKey(opts)
}

func (k *ScopedKeyer) ArtifactKey(dungeonHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dungeonHash, opts)
}
