package cache

import "github.com/matzehuels/roomgen/pkg/generator"

// Key prefixes.
const (
	prefixDungeon  = "dungeon"
	prefixArtifact = "artifact"
)

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	CellSize int    `json:"cell_size,omitempty"`
	Glyphs   bool   `json:"glyphs,omitempty"`
	Outlines bool   `json:"outlines,omitempty"`
	Labels   bool   `json:"labels,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DungeonKey identifies a generated dungeon by its options.
	DungeonKey(opts generator.Options) string

	// ArtifactKey identifies a rendered artifact of a dungeon.
	ArtifactKey(dungeonHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the inputs into "prefix:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DungeonKey(opts generator.Options) string {
	return hashKey(prefixDungeon, opts)
}

func (DefaultKeyer) ArtifactKey(dungeonHash string, opts ArtifactKeyOpts) string {
	return hashKey(prefixArtifact, dungeonHash, opts)
}
