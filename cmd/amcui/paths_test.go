package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/amc-launcher/amcui/internal/testutil"
)

func TestPathsCmd_JSON(t *testing.T) {
	dirs := testutil.Isolate(t)
	t.Setenv("AMCUI_HOST_URL", "ws://127.0.0.1:7777/ui")

	out, buf := testWriter()
	out.JSON = true

	if err := executeWith(t, newPathsCmd(), out); err != nil {
		t.Fatalf("paths should succeed: %v", err)
	}

	var info PathsInfo
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	want := PathsInfo{
		ConfigRoot:   filepath.Join(dirs.Config, "amcui"),
		StateRoot:    filepath.Join(dirs.State, "amcui"),
		CacheRoot:    filepath.Join(dirs.Cache, "amcui"),
		ConfigFile:   filepath.Join(dirs.Config, "amcui", "config.yaml"),
		MockSnapshot: filepath.Join(dirs.Config, "amcui", "mock.jsonc"),
		LogFile:      filepath.Join(dirs.State, "amcui", "logs", "amcui.log"),
		HostURL:      "ws://127.0.0.1:7777/ui",
		HostMode:     "auto",
	}

	if info != want {
		t.Errorf("paths = %+v\nwant %+v", info, want)
	}
}

func TestPathsCmd_ConfiguredSnapshotWins(t *testing.T) {
	testutil.Isolate(t)
	t.Setenv("AMCUI_STANDALONE_SNAPSHOT", "/srv/fixtures/offline.jsonc")

	out, buf := testWriter()
	out.JSON = true

	if err := executeWith(t, newPathsCmd(), out); err != nil {
		t.Fatalf("paths should succeed: %v", err)
	}

	var info PathsInfo
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	if info.MockSnapshot != "/srv/fixtures/offline.jsonc" {
		t.Errorf("mock_snapshot = %q", info.MockSnapshot)
	}
}
