package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomgen/pkg/cache"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/pipeline"
)

// loadedViewModel returns a viewer holding a generated 30x40 map in a
// 10x20 viewport.
func loadedViewModel(t *testing.T) viewModel {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, log.NewWithOptions(io.Discard, log.Options{}))
	m := newViewModel(context.Background(), runner, pipeline.Options{Seed: 42, Height: 30, Width: 40})

	msg := m.Init()()
	dm, ok := msg.(dungeonMsg)
	if !ok {
		t.Fatalf("Init produced %T, want dungeonMsg", msg)
	}
	if dm.err != nil {
		t.Fatal(dm.err)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 10 + viewChrome})
	next, _ = next.Update(dm)
	return next.(viewModel)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m viewModel, keys ...string) viewModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(viewModel)
	}
	return m
}

func TestViewLoads(t *testing.T) {
	m := loadedViewModel(t)
	if m.loading || m.dungeon == nil || m.canvas == nil {
		t.Fatalf("model not loaded: loading=%v", m.loading)
	}
	if got := m.canvas.Size(); got != geom.Sz(30, 40) {
		t.Errorf("canvas size = %v", got)
	}
	if !strings.Contains(m.View(), "seed 42") {
		t.Error("view should show the seed")
	}
}

func TestViewScrollClamps(t *testing.T) {
	m := loadedViewModel(t)

	m = press(m, "down", "j")
	if m.offset != geom.Pt(2, 0) {
		t.Errorf("offset = %v, want (2,0)", m.offset)
	}

	m = press(m, "k", "k", "k", "h")
	if m.offset != geom.Pt(0, 0) {
		t.Errorf("offset = %v, want clamped to origin", m.offset)
	}

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = "l"
	}
	m = press(m, keys...)
	if want := geom.Pt(0, 40-20); m.offset != want {
		t.Errorf("offset = %v, want %v", m.offset, want)
	}
}

func TestViewReseed(t *testing.T) {
	m := loadedViewModel(t)

	next, cmd := m.Update(key("n"))
	m = next.(viewModel)
	if cmd == nil || !m.loading || m.opts.Seed != 43 {
		t.Fatalf("n: cmd=%v loading=%v seed=%d", cmd != nil, m.loading, m.opts.Seed)
	}

	// Further reseeds wait for the pending generation.
	next, cmd = m.Update(key("p"))
	if cmd != nil || next.(viewModel).opts.Seed != 43 {
		t.Error("reseed while loading should be ignored")
	}

	if !strings.Contains(m.View(), "generating") {
		t.Error("view should report loading")
	}
}

func TestViewLabelsAndQuit(t *testing.T) {
	m := loadedViewModel(t)

	m = press(m, "i")
	if !m.labels {
		t.Error("i should toggle labels on")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}
