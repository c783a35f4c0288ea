package generator

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/roomgen/pkg/area"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/observability"
	"github.com/matzehuels/roomgen/pkg/room"
	"github.com/matzehuels/roomgen/pkg/roomgraph"
	"github.com/matzehuels/roomgen/pkg/tiles"
)

// State is the driver's position in its lifecycle.
type State int

// Generator states.
const (
	Seeding State = iota
	Growing
	Done
)

func (s State) String() string {
	switch s {
	case Seeding:
		return "seeding"
	case Growing:
		return "growing"
	case Done:
		return "done"
	}
	return "unknown"
}

// minRoomSide keeps sampled rooms large enough for a floor cell.
const minRoomSide = 3

// Generator drives room placement for one map.
type Generator struct {
	opts      Options
	rng       *rand.Rand
	tree      *area.Tree
	graph     *roomgraph.Graph
	roomRange room.DimensionRange

	state      State
	frontier   []area.ID
	retired    mapset.Set[area.ID]
	iterations int
}

// New validates opts and prepares an empty map.
func New(opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	size := opts.Size()
	return &Generator{
		opts:  opts,
		rng:   rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef)),
		tree:  area.NewTree(area.New(tiles.NewGrid(size, tiles.Wall), "map")),
		graph: roomgraph.New(),
		roomRange: room.FromSize(size, opts.RoomMin, opts.RoomMax).
			Clamp(geom.Sz(minRoomSide, minRoomSide), size),
		retired: mapset.New[area.ID](),
	}, nil
}

// State returns the current state.
func (g *Generator) State() State { return g.state }

// Tree returns the area tree built so far.
func (g *Generator) Tree() *area.Tree { return g.tree }

// Graph returns the room graph built so far.
func (g *Generator) Graph() *roomgraph.Graph { return g.graph }

// Frontier returns the rooms still eligible to grow neighbours.
func (g *Generator) Frontier() []area.ID { return slices.Clone(g.frontier) }

// Density returns the map's current density.
func (g *Generator) Density() float64 { return g.tree.Root().Density() }

// Step performs one transition. It is a no-op once Done.
func (g *Generator) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch g.state {
	case Seeding:
		return g.seed(ctx)
	case Growing:
		if g.Density() >= g.opts.Density || len(g.frontier) == 0 {
			g.state = Done
			return nil
		}
		g.iterations++
		return g.grow(ctx)
	}
	return nil
}

// Run steps until Done and returns the result.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	hooks := observability.Generation()
	start := time.Now()
	hooks.OnGenerateStart(ctx, g.opts.Seed, g.opts.Height, g.opts.Width)

	var err error
	for g.state != Done && err == nil {
		err = g.Step(ctx)
	}
	duration := time.Since(start)
	hooks.OnGenerateComplete(ctx, g.graph.Len(), g.Density(), duration, err)
	if err != nil {
		return nil, err
	}
	return g.result(duration), nil
}

// Generate runs a full generation with opts.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	g, err := New(opts)
	if err != nil {
		return nil, err
	}
	return g.Run(ctx)
}

// =============================================================================
// Transitions
// =============================================================================

func (g *Generator) seed(ctx context.Context) error {
	root := g.tree.Root()
	for attempt := 1; attempt <= g.opts.Retries; attempt++ {
		r, err := g.sampleRoom()
		if err != nil {
			return err
		}
		o, ok := area.Choose(g.rng, root.FitIn(r))
		if !ok {
			continue
		}
		id, err := g.tree.PlaceAt(0, r, o)
		if err != nil {
			return err
		}
		g.graph.Push(id)
		g.frontier = append(g.frontier, id)
		observability.Generation().OnRoomPlaced(ctx, int(id), r.Kind, attempt)
		g.state = Growing
		return nil
	}
	g.state = Done
	return nil
}

func (g *Generator) grow(ctx context.Context) error {
	i := g.rng.IntN(len(g.frontier))
	nid := g.frontier[i]
	neighbour, _ := g.tree.Get(nid)

	for attempt := 1; attempt <= g.opts.Retries; attempt++ {
		r, err := g.sampleRoom()
		if err != nil {
			return err
		}
		pts, err := g.tree.FitNextToContext(ctx, g.opts.Parallel, 0, r, nid)
		if err != nil {
			return err
		}
		o, ok := area.Choose(g.rng, pts)
		if !ok {
			continue
		}
		id, err := g.tree.PlaceAt(0, r, o)
		if err != nil {
			return err
		}
		g.graph.Push(id)
		if err := g.link(neighbour, r); err != nil {
			return err
		}
		g.frontier = append(g.frontier, id)
		observability.Generation().OnRoomPlaced(ctx, int(id), r.Kind, attempt)
		return nil
	}

	g.frontier = slices.Delete(g.frontier, i, i+1)
	g.retired.Put(nid)
	observability.Generation().OnRoomRetired(ctx, int(nid))
	return nil
}

// link records the edge between a and its new neighbour b, choosing one
// entrance across any side they share.
func (g *Generator) link(a, b *area.Area) error {
	sides := room.Facing(a, b)
	edge := roomgraph.Edge{A: a.ID(), B: b.ID()}
	if len(sides) > 0 {
		edge.Direction = sides[0]
	}

	type option struct {
		d geom.Direction
		e room.Entrance
	}
	var options []option
	for _, d := range sides {
		for _, e := range room.FindEntrances(a, b, d) {
			options = append(options, option{d, e})
		}
	}
	if len(options) > 0 {
		pick := options[g.rng.IntN(len(options))]
		edge.Direction = pick.d
		edge.Entrance = &pick.e
		if g.opts.CarveEntrances {
			room.CarveEntrance(a, b, pick.e)
		}
	}
	return g.graph.Link(edge)
}

func (g *Generator) sampleRoom() (*area.Area, error) {
	size := g.roomRange.Sample(g.rng)
	v := room.Rect()
	switch p := g.rng.Float64(); {
	case p < g.opts.LShapeChance:
		v = room.LShape()
	case p < g.opts.LShapeChance+g.opts.FurnishChance:
		v = room.Furnish()
	}
	return room.New(size, v, g.rng)
}

func (g *Generator) result(d time.Duration) *Result {
	return &Result{
		Tree:       g.tree,
		Graph:      g.graph,
		Seed:       g.opts.Seed,
		Size:       g.opts.Size(),
		Target:     g.opts.Density,
		Density:    g.Density(),
		Iterations: g.iterations,
		Retired:    g.retired.Size(),
		Frontier:   len(g.frontier),
		Duration:   d,
	}
}
