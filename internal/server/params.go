package server

import (
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/roomgen/pkg/pipeline"
)

// queryParser reads typed query parameters, keeping the first error.
type queryParser struct {
	q   url.Values
	err error
}

func (p *queryParser) has(name string) bool { return p.q.Has(name) }

func (p *queryParser) fail(name, value, want string) {
	if p.err == nil {
		p.err = badRequest("query parameter %s=%q is not %s", name, value, want)
	}
}

func (p *queryParser) intParam(name string) int {
	v := p.q.Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(name, v, "an integer")
	}
	return n
}

func (p *queryParser) uintParam(name string) uint64 {
	v := p.q.Get(name)
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.fail(name, v, "an unsigned integer")
	}
	return n
}

func (p *queryParser) floatParam(name string) float64 {
	v := p.q.Get(name)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(name, v, "a number")
	}
	return f
}

// boolParam treats a bare parameter (?labels) as true.
func (p *queryParser) boolParam(name string) bool {
	if !p.q.Has(name) {
		return false
	}
	v := p.q.Get(name)
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(name, v, "a boolean")
	}
	return b
}

func (p *queryParser) strParam(name, fallback string) string {
	if v := strings.TrimSpace(p.q.Get(name)); v != "" {
		return v
	}
	return fallback
}

// generateQuery reads generation and render options. A missing seed is
// drawn at random.
func generateQuery(q url.Values) (pipeline.Options, error) {
	p := &queryParser{q: q}
	o := pipeline.Options{
		Height:        p.intParam("height"),
		Width:         p.intParam("width"),
		Density:       p.floatParam("density"),
		Retries:       p.intParam("retries"),
		RoomMin:       p.floatParam("room_min"),
		RoomMax:       p.floatParam("room_max"),
		FurnishChance: p.floatParam("furnish"),
		NoEntrances:   p.boolParam("no_entrances"),
	}
	var seed *uint64
	if p.has("seed") {
		v := p.uintParam("seed")
		seed = &v
	}
	o.Seed = seedOrRandom(seed)
	if p.has("l_shape") {
		v := p.floatParam("l_shape")
		o.LShapeChance = &v
	}
	renderQuery(p, &o, pipeline.FormatJSON)
	return o, p.err
}

// renderQuery reads a single format and the render flags into o.
func renderQuery(p *queryParser, o *pipeline.Options, defaultFormat string) {
	o.Formats = []string{strings.ToLower(p.strParam("format", defaultFormat))}
	o.CellSize = p.intParam("cell_size")
	o.Glyphs = p.boolParam("glyphs")
	o.Outlines = p.boolParam("outlines")
	o.Labels = p.boolParam("labels")
}

// seedOrRandom returns *seed, or a random seed when it is nil.
func seedOrRandom(seed *uint64) uint64 {
	if seed == nil {
		return rand.Uint64()
	}
	return *seed
}
