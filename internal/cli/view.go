package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/dungeon"
	"github.com/matzehuels/roomgen/pkg/geom"
	"github.com/matzehuels/roomgen/pkg/pipeline"
	"github.com/matzehuels/roomgen/pkg/render"
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		opts    pipeline.Options
		lShape  float64
		noCache bool
	)
	defaultGenerateFlags(&opts, &lShape)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse dungeons in the terminal",
		Long: `Open a full-screen viewer. Scroll with the arrow keys or hjkl, press n/p
to step the seed, r for a random seed, i to toggle room ids and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyGenerateFlags(cmd, &opts, lShape)
			if err := opts.ValidateForGenerate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			// The alternate screen owns the terminal; keep log lines off it.
			runner.Logger = log.NewWithOptions(io.Discard, log.Options{})
			opts.Logger = runner.Logger

			p := tea.NewProgram(newViewModel(ctx, runner, opts), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}

	addGenerateFlags(cmd, &opts, &lShape)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// =============================================================================
// viewModel - Interactive dungeon viewer
// =============================================================================

// viewChrome is the number of terminal rows used by the header and footer.
const viewChrome = 3

// viewModel is the bubbletea model for `roomgen view`.
type viewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options

	dungeon  *dungeon.Dungeon
	canvas   *render.Canvas
	labelled *render.Canvas
	cached   bool
	loading  bool
	err      error

	labels bool
	offset geom.Point
	width  int
	height int
}

// dungeonMsg delivers a finished generation to the model.
type dungeonMsg struct {
	dungeon *dungeon.Dungeon
	canvas  *render.Canvas
	cached  bool
	err     error
}

func newViewModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) viewModel {
	return viewModel{ctx: ctx, runner: runner, opts: opts, loading: true, width: 80, height: 24}
}

func (m viewModel) Init() tea.Cmd {
	return m.generate(m.opts.Seed)
}

// generate runs the pipeline for seed off the UI goroutine.
func (m viewModel) generate(seed uint64) tea.Cmd {
	opts := m.opts
	opts.Seed = seed
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		d, hit, err := runner.GenerateWithCacheInfo(ctx, opts)
		if err != nil {
			return dungeonMsg{err: err}
		}
		c, err := d.Canvas()
		return dungeonMsg{dungeon: d, canvas: c, cached: hit, err: err}
	}
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.offset = m.clamp(m.offset)

	case dungeonMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.dungeon, m.canvas, m.cached = msg.dungeon, msg.canvas, msg.cached
			m.labelled = pipeline.Labelled(msg.dungeon, msg.canvas)
			m.offset = m.clamp(m.offset)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.offset = m.clamp(m.offset.Add(geom.Pt(-1, 0)))
		case "down", "j":
			m.offset = m.clamp(m.offset.Add(geom.Pt(1, 0)))
		case "left", "h":
			m.offset = m.clamp(m.offset.Add(geom.Pt(0, -1)))
		case "right", "l":
			m.offset = m.clamp(m.offset.Add(geom.Pt(0, 1)))
		case "i":
			m.labels = !m.labels
		case "n":
			return m.reseed(m.opts.Seed + 1)
		case "p":
			return m.reseed(m.opts.Seed - 1)
		case "r":
			return m.reseed(rand.Uint64())
		}
	}
	return m, nil
}

func (m viewModel) reseed(seed uint64) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.opts.Seed = seed
	m.loading = true
	return m, m.generate(seed)
}

// viewport is the map area left after the header and footer.
func (m viewModel) viewport() geom.Size {
	return geom.Sz(max(m.height-viewChrome, 1), max(m.width, 1))
}

// clamp keeps the viewport inside the map.
func (m viewModel) clamp(p geom.Point) geom.Point {
	if m.canvas == nil {
		return geom.Point{}
	}
	size, vp := m.canvas.Size(), m.viewport()
	return geom.Pt(
		min(max(p.Y, 0), max(size.H-vp.H, 0)),
		min(max(p.X, 0), max(size.W-vp.W, 0)),
	)
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("roomgen"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  seed %d", m.opts.Seed)))
	switch {
	case m.loading:
		b.WriteString(StyleDim.Render("  generating..."))
	case m.err != nil:
		b.WriteString("  " + StyleWarning.Render(m.err.Error()))
	case m.dungeon != nil:
		status := iconFresh
		if m.cached {
			status = iconCached
		}
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %d rooms · %.0f%% dense · %s",
			len(m.dungeon.Rooms), m.dungeon.Density*100, status)))
	}
	b.WriteString("\n")

	if m.canvas != nil {
		c := m.canvas
		if m.labels {
			c = m.labelled
		}
		size, vp := c.Size(), m.viewport()
		window := geom.Sz(min(vp.H, size.H), min(vp.W, size.W))
		b.WriteString(render.ANSI(c.Crop(m.offset, window)))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("arrows/hjkl: scroll  n/p: seed  r: random  i: room ids  q: quit"))

	return b.String()
}
