package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/roomgen/pkg/pipeline"
)

// terminalFormats can be written straight to stdout.
var terminalFormats = map[string]bool{
	pipeline.FormatText: true,
	pipeline.FormatANSI: true,
	pipeline.FormatDOT:  true,
}

// toStdout reports whether artifacts go to stdout instead of files: when
// output is "-", or unset with exactly one terminal format requested.
func toStdout(output string, formats []string) bool {
	if output == "-" {
		return true
	}
	return output == "" && len(formats) == 1 && terminalFormats[formats[0]]
}

// outputPaths maps each format to its file. A single format with an
// explicit extension is written to output as given; otherwise output (or
// fallback) is a base path that each format's extension is appended to.
func outputPaths(output, fallback string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = fallback
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, f := range formats {
		paths[f] = base + pipeline.Extension(f)
	}
	return paths
}

// writeArtifacts writes artifacts in format order, either to w or to files.
// It returns the paths written, empty when writing to w.
func writeArtifacts(w io.Writer, output, fallback string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if toStdout(output, formats) {
		for _, f := range formats {
			if _, err := w.Write(artifacts[f]); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	paths := outputPaths(output, fallback, formats)
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", f, err)
		}
		written = append(written, path)
	}
	return written, nil
}
