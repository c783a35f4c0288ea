// Package store persists dungeon snapshots by ID.
//
// Backends:
//   - [MemoryStore]: process-local, for tests and a standalone server
//   - [FileStore]: one JSON file per dungeon, for the CLI
//   - [MongoStore]: MongoDB collection, for shared deployments
//
// Put assigns a UUID when the snapshot has none. Get returns [ErrNotFound]
// for unknown IDs. List returns summaries, newest first.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/roomgen/pkg/dungeon"
	"github.com/matzehuels/roomgen/pkg/errors"
)

// ErrNotFound is returned for unknown dungeon IDs.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "dungeon not found")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Summary is the listing view of a stored dungeon.
type Summary struct {
	ID        string    `json:"id"`
	Seed      uint64    `json:"seed"`
	Height    int       `json:"height"`
	Width     int       `json:"width"`
	Rooms     int       `json:"rooms"`
	Density   float64   `json:"density"`
	CreatedAt time.Time `json:"created_at"`
}

// Summarize builds the summary of d.
func Summarize(d *dungeon.Dungeon) Summary {
	return Summary{
		ID:        d.ID,
		Seed:      d.Seed,
		Height:    d.Size.H,
		Width:     d.Size.W,
		Rooms:     len(d.Rooms),
		Density:   d.Density,
		CreatedAt: d.CreatedAt,
	}
}

// Store is a dungeon snapshot repository.
type Store interface {
	// Put saves d, assigning an ID if it has none, and returns the ID.
	Put(ctx context.Context, d *dungeon.Dungeon) (string, error)

	// Get loads a snapshot. Unknown IDs yield ErrNotFound.
	Get(ctx context.Context, id string) (*dungeon.Dungeon, error)

	// List returns up to limit summaries, newest first.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a snapshot. Unknown IDs yield ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
