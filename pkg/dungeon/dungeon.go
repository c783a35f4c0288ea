package dungeon

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/roomgen/pkg/area"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/generator"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/render"
	"github.com/matzehuels/roomgen/pkg/room"
	"github.com/matzehuels/roomgen/pkg/roomgraph"
)

// =============================================================================
// Types
// =============================================================================

// Dungeon is a generated map plus the parameters that produced it.
type Dungeon struct {
	ID        string          `json:"id,omitempty" bson:"-"`
	Seed      uint64          `json:"seed" bson:"-"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	Size      geom.Size       `json:"size" bson:"size"`
	Target    float64         `json:"target" bson:"target"`
	Density   float64         `json:"density" bson:"density"`
	Rooms     []Room          `json:"rooms" bson:"rooms"`
	Edges     []Edge          `json:"edges" bson:"edges"`
	Stats     generator.Stats `json:"stats" bson:"stats"`
	Tiles     render.Sheet    `json:"tiles" bson:"tiles"`
}

// Room is one placed room in map coordinates.
type Room struct {
	ID     int        `json:"id" bson:"id"`
	Kind   string     `json:"kind" bson:"kind"`
	Origin geom.Point `json:"origin" bson:"origin"`
	Size   geom.Size  `json:"size" bson:"size"`
	Volume int        `json:"volume" bson:"volume"`
}

// Edge links two adjacent rooms. B lies beyond A along Direction.
type Edge struct {
	A         int            `json:"a" bson:"a"`
	B         int            `json:"b" bson:"b"`
	Direction string         `json:"direction" bson:"direction"`
	Entrance  *room.Entrance `json:"entrance,omitempty" bson:"entrance,omitempty"`
}

// =============================================================================
// Conversion
// =============================================================================

// FromResult snapshots a finished generation. The ID is left empty; see
// [Dungeon.EnsureID].
func FromResult(res *generator.Result) *Dungeon {
	d := &Dungeon{
		Seed:      res.Seed,
		CreatedAt: time.Now().UTC(),
		Size:      res.Size,
		Target:    res.Target,
		Density:   res.Density,
		Stats:     res.Stats(),
		Tiles:     render.NewSheet(render.Composite(res.Tree)),
	}
	for _, a := range res.Rooms() {
		d.Rooms = append(d.Rooms, Room{
			ID:     int(a.ID()),
			Kind:   a.Kind,
			Origin: res.Tree.AbsoluteOrigin(a.ID()),
			Size:   a.Size(),
			Volume: a.Volume(),
		})
	}
	for _, e := range res.Graph.Edges() {
		d.Edges = append(d.Edges, Edge{
			A:         int(e.A),
			B:         int(e.B),
			Direction: e.Direction.String(),
			Entrance:  e.Entrance,
		})
	}
	return d
}

// EnsureID assigns a random UUID if d has no ID and returns the ID.
func (d *Dungeon) EnsureID() string {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return d.ID
}

// Canvas rebuilds the composited tiles.
func (d *Dungeon) Canvas() (*render.Canvas, error) {
	return d.Tiles.Canvas()
}

// Outlines returns each room's bounding box for SVG output.
func (d *Dungeon) Outlines() []render.Outline {
	out := make([]render.Outline, len(d.Rooms))
	for i, r := range d.Rooms {
		out[i] = render.Outline{ID: r.ID, Origin: r.Origin, Size: r.Size}
	}
	return out
}

// Graph rebuilds the room graph from the recorded rooms and edges.
func (d *Dungeon) Graph() (*roomgraph.Graph, error) {
	g := roomgraph.New()
	for _, r := range d.Rooms {
		g.Push(area.ID(r.ID))
	}
	for _, e := range d.Edges {
		dir, err := geom.ParseDirection(e.Direction)
		if err != nil {
			return nil, err
		}
		if err := g.Link(roomgraph.Edge{A: area.ID(e.A), B: area.ID(e.B), Direction: dir, Entrance: e.Entrance}); err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.A, e.B, err)
		}
	}
	return g, nil
}

// RoomLabel returns a DOT label function naming rooms by ID and kind.
func (d *Dungeon) RoomLabel() func(area.ID) string {
	kinds := make(map[area.ID]string, len(d.Rooms))
	for _, r := range d.Rooms {
		kinds[area.ID(r.ID)] = r.Kind
	}
	return func(id area.ID) string {
		return fmt.Sprintf("%d %s", id, kinds[id])
	}
}

// Validate checks that the snapshot is internally consistent.
func (d *Dungeon) Validate() error {
	if err := errors.ValidateDimensions(d.Size.H, d.Size.W); err != nil {
		return err
	}
	if d.Tiles.Size != d.Size {
		return errors.New(errors.ErrCodeInvalidInput, "tile sheet is %s, dungeon is %s", d.Tiles.Size, d.Size)
	}
	ids := make(map[int]bool, len(d.Rooms))
	for _, r := range d.Rooms {
		ids[r.ID] = true
	}
	for _, e := range d.Edges {
		if !ids[e.A] || !ids[e.B] {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d-%d references an unknown room", e.A, e.B)
		}
	}
	return nil
}

// =============================================================================
// Serialization
// =============================================================================

// Marshal encodes d as indented JSON.
func Marshal(d *Dungeon) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal decodes and validates a snapshot.
func Unmarshal(data []byte) (*Dungeon, error) {
	var d Dungeon
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dungeon")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Write encodes d to w.
func Write(w io.Writer, d *Dungeon) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes and validates a snapshot from r. It does not close r.
func Read(r io.Reader) (*Dungeon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data)
}

// Export writes d to a JSON file at path.
func Export(d *Dungeon, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, d)
}

// Import reads a snapshot from the JSON file at path.
func Import(path string) (*Dungeon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
