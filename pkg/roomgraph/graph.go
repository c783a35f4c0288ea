// Package roomgraph records which placed rooms are adjacent.
//
// Nodes wrap [area.ID] values. [Graph.Link] connects two nodes in both
// directions and remembers the placement direction plus an optional entrance,
// so later passes can carve passages. [Graph.Reachable] and
// [Graph.IsConnected] answer connectivity queries with a breadth-first search.
package roomgraph

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/roomgen/pkg/area"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/room"
)

// Edge connects two rooms. B lies directly beyond A along Direction.
type Edge struct {
	A         area.ID        `json:"a"`
	B         area.ID        `json:"b"`
	Direction geom.Direction `json:"direction"`
	Entrance  *room.Entrance `json:"entrance,omitempty"`
}

// Node is a room and its neighbours in link order.
type Node struct {
	Room       area.ID   `json:"room"`
	Neighbours []area.ID `json:"neighbours"`
}

// Graph is an adjacency list over placed rooms.
type Graph struct {
	nodes []*Node
	index map[area.ID]int
	edges []Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{index: make(map[area.ID]int)}
}

// Push adds a node for id. It reports false if the node already exists.
func (g *Graph) Push(id area.ID) bool {
	if _, ok := g.index[id]; ok {
		return false
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, &Node{Room: id})
	return true
}

// Has reports whether id is a node.
func (g *Graph) Has(id area.ID) bool {
	_, ok := g.index[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Rooms returns the node IDs in push order.
func (g *Graph) Rooms() []area.ID {
	out := make([]area.ID, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.Room
	}
	return out
}

// Nodes returns a copy of every node.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = Node{Room: n.Room, Neighbours: slices.Clone(n.Neighbours)}
	}
	return out
}

// Edges returns the links in creation order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// Neighbours returns id's neighbours in link order.
func (g *Graph) Neighbours(id area.ID) []area.ID {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return slices.Clone(g.nodes[i].Neighbours)
}

// AddNeighbour records b as a neighbour of a, in one direction only.
func (g *Graph) AddNeighbour(a, b area.ID) error {
	i, ok := g.index[a]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "room %d is not in the graph", a)
	}
	if !g.Has(b) {
		return errors.New(errors.ErrCodeNotFound, "room %d is not in the graph", b)
	}
	if !slices.Contains(g.nodes[i].Neighbours, b) {
		g.nodes[i].Neighbours = append(g.nodes[i].Neighbours, b)
	}
	return nil
}

// Link connects e.A and e.B in both directions and records e.
func (g *Graph) Link(e Edge) error {
	if err := g.AddNeighbour(e.A, e.B); err != nil {
		return err
	}
	if err := g.AddNeighbour(e.B, e.A); err != nil {
		return err
	}
	g.edges = append(g.edges, e)
	return nil
}

// SetEntrance attaches an entrance to the edge between a and b.
func (g *Graph) SetEntrance(a, b area.ID, e room.Entrance) bool {
	for i := range g.edges {
		ed := &g.edges[i]
		if (ed.A == a && ed.B == b) || (ed.A == b && ed.B == a) {
			ed.Entrance = &e
			return true
		}
	}
	return false
}

// Reachable returns every node reachable from start, in breadth-first order.
func (g *Graph) Reachable(start area.ID) []area.ID {
	if !g.Has(start) {
		return nil
	}
	visited := mapset.New[area.ID]()
	queue := []area.ID{start}
	var out []area.ID

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited.Has(cur) {
			continue
		}
		visited.Put(cur)
		out = append(out, cur)

		for _, n := range g.nodes[g.index[cur]].Neighbours {
			if !visited.Has(n) {
				queue = append(queue, n)
			}
		}
	}
	return out
}

// Unreachable returns the nodes not reachable from start, in push order.
func (g *Graph) Unreachable(start area.ID) []area.ID {
	seen := mapset.New[area.ID]()
	for _, id := range g.Reachable(start) {
		seen.Put(id)
	}
	var out []area.ID
	for _, n := range g.nodes {
		if !seen.Has(n.Room) {
			out = append(out, n.Room)
		}
	}
	return out
}

// IsConnected reports whether every node is reachable from the first one.
// An empty graph is connected.
func (g *Graph) IsConnected() bool {
	if len(g.nodes) == 0 {
		return true
	}
	return len(g.Reachable(g.nodes[0].Room)) == len(g.nodes)
}
