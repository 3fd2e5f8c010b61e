package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAssertGolden_Matching(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		t.Fatal(err)
	}

	want := "status  Ready\nmode    live\n"
	if err := os.WriteFile(filepath.Join("testdata", "view.golden"), []byte(want), 0o644); err != nil {
		t.Fatal(err)
	}

	inner := &testing.T{}
	AssertGolden(inner, want, "view.golden")

	if inner.Failed() {
		t.Error("AssertGolden failed on identical content")
	}
}

func TestGoldenPath(t *testing.T) {
	got := GoldenPath("doctor_all_pass.golden")

	want := filepath.Join("testdata", "doctor_all_pass.golden")
	if got != want {
		t.Errorf("GoldenPath() = %q, want %q", got, want)
	}
}
