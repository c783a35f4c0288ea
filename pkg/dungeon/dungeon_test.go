package dungeon

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/generator"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/render"
	"github.com/matzehuels/roomgen/pkg/roomgraph"
)

func generate(t *testing.T, seed uint64) *Dungeon {
	t.Helper()
	opts := generator.DefaultOptions(seed)
	opts.Height, opts.Width = 30, 30
	res, err := generator.Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	return FromResult(res)
}

func TestFromResult(t *testing.T) {
	d := generate(t, 12)
	if d.Seed != 12 || d.Size != geom.Sz(30, 30) {
		t.Errorf("seed/size = %d/%v", d.Seed, d.Size)
	}
	if len(d.Rooms) == 0 {
		t.Fatal("no rooms")
	}
	if len(d.Edges) != len(d.Rooms)-1 {
		t.Errorf("%d edges for %d rooms", len(d.Edges), len(d.Rooms))
	}
	if d.Stats.Rooms != len(d.Rooms) {
		t.Errorf("Stats.Rooms = %d, want %d", d.Stats.Rooms, len(d.Rooms))
	}
	if d.ID != "" {
		t.Errorf("ID = %q before EnsureID", d.ID)
	}
	id := d.EnsureID()
	if id == "" || d.EnsureID() != id {
		t.Error("EnsureID is not stable")
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	d := generate(t, 3)
	d.EnsureID()

	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatal(err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != d.ID || got.Seed != d.Seed || len(got.Rooms) != len(d.Rooms) {
		t.Errorf("round trip changed header: %+v", got)
	}

	want, _ := d.Canvas()
	c, err := got.Canvas()
	if err != nil {
		t.Fatal(err)
	}
	if render.Text(c) != render.Text(want) {
		t.Error("round trip changed tiles")
	}
}

func TestExportImport(t *testing.T) {
	d := generate(t, 8)
	path := filepath.Join(t.TempDir(), "dungeon.json")
	if err := Export(d, path); err != nil {
		t.Fatal(err)
	}
	got, err := Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Density != d.Density {
		t.Errorf("Density = %v, want %v", got.Density, d.Density)
	}
	if _, err := Import(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Import of a missing file succeeded")
	}
}

func TestGraph(t *testing.T) {
	d := generate(t, 5)
	g, err := d.Graph()
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != len(d.Rooms) || !g.IsConnected() {
		t.Errorf("graph has %d rooms, connected %v", g.Len(), g.IsConnected())
	}
	dot := roomgraph.ToDOT(g, roomgraph.DOTOptions{Label: d.RoomLabel()})
	if !bytes.Contains([]byte(dot), []byte("graph G {")) {
		t.Errorf("ToDOT() = %q", dot)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"malformed", `{"seed":`, errors.ErrCodeInvalidFormat},
		{"tiny", `{"size":{"h":1,"w":1},"tiles":{"size":{"h":1,"w":1}}}`, errors.ErrCodeInvalidInput},
		{"sheet size", `{"size":{"h":3,"w":3},"tiles":{"size":{"h":4,"w":3}}}`, errors.ErrCodeInvalidInput},
		{"dangling edge", `{"size":{"h":3,"w":3},"tiles":{"size":{"h":3,"w":3}},"rooms":[{"id":1}],"edges":[{"a":1,"b":2}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Unmarshal() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}
