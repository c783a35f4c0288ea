package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomgen/pkg/dungeon"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("placed room") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("placed room") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("placed room") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("frontier exhausted") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("wrote output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("generated dungeon", "seed", 42, "cached", true)

	out := buf.String()
	for _, want := range []string{"generated dungeon", "seed=42", "cached=true", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestProgressStage(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		wantStage bool
	}{
		{"hidden at info", log.InfoLevel, false},
		{"shown at debug", log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prog := newProgress(newLogger(&buf, tt.level))
			prog.stage("render", "formats", "txt,svg")

			out := buf.String()
			if got := strings.Contains(out, "stage=render"); got != tt.wantStage {
				t.Fatalf("stage logged = %v, want %v (output %q)", got, tt.wantStage, out)
			}
			if tt.wantStage && !strings.Contains(out, "took=") {
				t.Errorf("output %q missing stage duration", out)
			}
		})
	}
}

func TestDungeonFields(t *testing.T) {
	d := &dungeon.Dungeon{Seed: 7, Density: 0.51234, Rooms: make([]dungeon.Room, 3)}
	want := []any{"seed", uint64(7), "rooms", 3, "density", "0.512"}

	got := dungeonFields(d)
	if len(got) != len(want) {
		t.Fatalf("dungeonFields() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dungeonFields()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// done must not grow the caller's slice in place.
	fields := dungeonFields(d)
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("rendered dungeon", fields...)
	if len(fields) != len(want) {
		t.Errorf("fields mutated to %v", fields)
	}
	if !strings.Contains(buf.String(), "rooms=3") {
		t.Errorf("summary %q missing room count", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to a default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext should return the stored logger")
	}
	got.Info("hello")
	if buf.Len() == 0 {
		t.Error("stored logger should write to its buffer")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatal("debug should be hidden at info level")
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if buf.Len() == 0 {
		t.Error("debug should be shown after SetLogLevel")
	}
}
