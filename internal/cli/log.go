// Package cli implements the roomgen command-line interface.
//
// Commands generate dungeons, re-render saved snapshots, export the room
// graph, browse maps interactively and serve the HTTP API.
//
// # Commands
//
//   - generate: grow a dungeon and write text, ANSI, JSON, SVG or graph output
//   - render: re-render a saved dungeon snapshot
//   - graph: export the room adjacency graph as DOT, SVG or PNG
//   - view: browse a dungeon in the terminal, reseeding on demand
//   - serve: run the HTTP API
//   - store: list, show and delete saved dungeons
//   - cache, config: manage the artifact cache and the TOML profile
//
// # Logging
//
// Diagnostics go to stderr through charmbracelet/log; --verbose (-v) adds
// per-stage timings. A run logs one summary line with the dungeon's seed,
// room count and density, e.g.
//
//	14:32:01.45 INFO generated dungeon seed=42 rooms=31 density=0.512 cached=false elapsed=38ms
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomgen/pkg/dungeon"
)

// newLogger returns a logger stamping lines as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a command. Stages log at debug level with their own
// duration; done logs the summary with the total.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

// stage logs the time spent since the previous stage.
func (p *progress) stage(name string, keyvals ...any) {
	now := time.Now()
	kv := append([]any{"stage", name, "took", now.Sub(p.last).Round(time.Microsecond)}, keyvals...)
	p.logger.Debug("stage finished", kv...)
	p.last = now
}

// done logs msg with keyvals and the total elapsed time.
func (p *progress) done(msg string, keyvals ...any) {
	kv := append(keyvals[:len(keyvals):len(keyvals)], "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, kv...)
}

// dungeonFields are the key/value pairs every summary line carries.
func dungeonFields(d *dungeon.Dungeon) []any {
	return []any{
		"seed", d.Seed,
		"rooms", len(d.Rooms),
		"density", fmt.Sprintf("%.3f", d.Density),
	}
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default when ctx carries no logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
