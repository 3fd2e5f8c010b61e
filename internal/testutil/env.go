package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Dirs are the per-test roots an isolated environment points amcui at.
type Dirs struct {
	Config string
	State  string
	Cache  string
}

// Isolate points the XDG roots at fresh temp dirs and clears every AMCUI_
// variable so tests never read the developer's own config.
func Isolate(t *testing.T) Dirs {
	t.Helper()

	root := t.TempDir()
	dirs := Dirs{
		Config: filepath.Join(root, "config"),
		State:  filepath.Join(root, "state"),
		Cache:  filepath.Join(root, "cache"),
	}

	t.Setenv("XDG_CONFIG_HOME", dirs.Config)
	t.Setenv("XDG_STATE_HOME", dirs.State)
	t.Setenv("XDG_CACHE_HOME", dirs.Cache)

	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "AMCUI_") {
			t.Setenv(name, "")
			os.Unsetenv(name) //nolint:errcheck // restored by t.Setenv cleanup
		}
	}

	return dirs
}

// WriteFile writes data under dir, creating parents, and returns the path.
func WriteFile(t *testing.T, dir, name, data string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}
