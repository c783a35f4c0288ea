package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestToStdout(t *testing.T) {
	tests := []struct {
		output  string
		formats []string
		want    bool
	}{
		{"", []string{"text"}, true},
		{"", []string{"ansi"}, true},
		{"", []string{"dot"}, true},
		{"", []string{"svg"}, false},
		{"", []string{"text", "svg"}, false},
		{"-", []string{"svg"}, true},
		{"map.txt", []string{"text"}, false},
	}
	for _, tt := range tests {
		if got := toStdout(tt.output, tt.formats); got != tt.want {
			t.Errorf("toStdout(%q, %v) = %v, want %v", tt.output, tt.formats, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "explicit file",
			output:  "out/level.svg",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "out/level.svg"},
		},
		{
			name:    "base path",
			output:  "out/level",
			formats: []string{"svg", "json"},
			want:    map[string]string{"svg": "out/level.svg", "json": "out/level.json"},
		},
		{
			name:    "extension trimmed for many",
			output:  "level.svg",
			formats: []string{"svg", "graph-svg"},
			want:    map[string]string{"svg": "level.svg", "graph-svg": "level.graph.svg"},
		},
		{
			name:    "fallback",
			formats: []string{"json"},
			want:    map[string]string{"json": "dungeon-7.json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "dungeon-7", tt.formats)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("path[%s] = %q, want %q", f, got[f], want)
				}
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	artifacts := map[string][]byte{
		"text": []byte("###\n"),
		"json": []byte("{}"),
	}

	t.Run("stdout", func(t *testing.T) {
		var buf bytes.Buffer
		paths, err := writeArtifacts(&buf, "", "x", []string{"text"}, artifacts)
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) != 0 || buf.String() != "###\n" {
			t.Errorf("paths %v, output %q", paths, buf.String())
		}
	})

	t.Run("files", func(t *testing.T) {
		var buf bytes.Buffer
		base := filepath.Join(t.TempDir(), "nested", "map")
		paths, err := writeArtifacts(&buf, base, "x", []string{"text", "json"}, artifacts)
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) != 2 {
			t.Fatalf("paths = %v", paths)
		}
		if buf.Len() != 0 {
			t.Errorf("unexpected stdout %q", buf.String())
		}
		data, err := os.ReadFile(base + ".json")
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "{}" {
			t.Errorf("json = %q", data)
		}
	})
}
