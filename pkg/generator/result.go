package generator

import (
	"time"

	"github.com/matzehuels/roomgen/pkg/area"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/roomgraph"
)

// Result is a finished generation run.
type Result struct {
	Tree       *area.Tree
	Graph      *roomgraph.Graph
	Seed       uint64
	Size       geom.Size
	Target     float64
	Density    float64
	Iterations int
	Retired    int
	Frontier   int
	Duration   time.Duration
}

// Rooms returns the placed rooms in placement order.
func (r *Result) Rooms() []*area.Area {
	root := r.Tree.Root()
	var out []*area.Area
	for _, id := range root.Children() {
		a, _ := r.Tree.Get(id)
		out = append(out, a)
	}
	return out
}

// Stats summarises a result.
type Stats struct {
	Rooms      int            `json:"rooms"`
	Kinds      map[string]int `json:"kinds"`
	Edges      int            `json:"edges"`
	Entrances  int            `json:"entrances"`
	Density    float64        `json:"density"`
	Target     float64        `json:"target"`
	Iterations int            `json:"iterations"`
	Retired    int            `json:"retired"`
	Connected  bool           `json:"connected"`
}

// Stats computes summary figures for r.
func (r *Result) Stats() Stats {
	s := Stats{
		Kinds:      map[string]int{},
		Density:    r.Density,
		Target:     r.Target,
		Iterations: r.Iterations,
		Retired:    r.Retired,
		Connected:  r.Graph.IsConnected(),
	}
	for _, a := range r.Rooms() {
		s.Rooms++
		s.Kinds[a.Kind]++
	}
	for _, e := range r.Graph.Edges() {
		s.Edges++
		if e.Entrance != nil {
			s.Entrances++
		}
	}
	return s
}
