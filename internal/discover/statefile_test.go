// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadStateJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "state.json", `{"a": 1, "b": "ready"}`)

	st, err := LoadState(path)
	if err != nil {
		t.Fatal(err)
	}
	if st["a"].AsNumber() != 1 {
		t.Errorf("a = %v, want 1", st["a"].AsNumber())
	}
	if st["b"].AsString() != "ready" {
		t.Errorf("b = %q, want ready", st["b"].AsString())
	}
}

func TestLoadStateYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "state.yaml", "a: 1\nnested:\n  ready: true\n")

	st, err := LoadState(path)
	if err != nil {
		t.Fatal(err)
	}
	if !st["nested"].AsMapping()["ready"].AsBool() {
		t.Error("nested.ready = false, want true")
	}
}

func TestLoadStateErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		path   string
		errSub string
	}{
		{
			name:   "missing file",
			path:   filepath.Join(dir, "absent.json"),
			errSub: "reading state file",
		},
		{
			name:   "invalid json",
			path:   writeFile(t, dir, "bad.json", `{"a": `),
			errSub: "parsing state file",
		},
		{
			name:   "invalid yaml",
			path:   writeFile(t, dir, "bad.yaml", "a: [unclosed\n"),
			errSub: "parsing state file",
		},
		{
			name:   "non-mapping top level",
			path:   writeFile(t, dir, "list.json", `[1, 2, 3]`),
			errSub: "must be a mapping",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadState(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("error %q does not contain %q", err, tt.errSub)
			}
		})
	}
}

func TestLoadContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ctx.yaml", `
dependencies:
  app: [runtime]
constraints:
  budget: 100
domain_mappings:
  financial: [budget, revenue]
`)

	ctx, err := LoadContext(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.Dependencies["app"]; len(got) != 1 || got[0] != "runtime" {
		t.Errorf("dependencies = %v", ctx.Dependencies)
	}
	if ctx.Constraints["budget"] != 100 {
		t.Errorf("constraints = %v", ctx.Constraints)
	}
}
