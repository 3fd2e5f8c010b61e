package doctor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/amc-launcher/amcui/internal/config"
	"github.com/amc-launcher/amcui/internal/testutil"
)

func hostURL(t *testing.T) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func deadURL(t *testing.T) string {
	t.Helper()

	server := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	server.Close()

	return url
}

func resultByName(t *testing.T, results []Result, name string) Result {
	t.Helper()

	for _, r := range results {
		if r.Name == name {
			return r
		}
	}

	t.Fatalf("no result named %q in %+v", name, results)

	return Result{}
}

func TestRunner_HostCheck(t *testing.T) {
	tests := []struct {
		name   string
		env    func(t *testing.T) map[string]string
		status Status
		detail bool
	}{
		{
			name:   "no url",
			env:    func(*testing.T) map[string]string { return nil },
			status: StatusWarn,
			detail: true,
		},
		{
			name:   "standalone mode",
			env:    func(*testing.T) map[string]string { return map[string]string{"AMCUI_HOST_MODE": "standalone"} },
			status: StatusPass,
		},
		{
			name:   "stdio mode",
			env:    func(*testing.T) map[string]string { return map[string]string{"AMCUI_HOST_MODE": "stdio"} },
			status: StatusPass,
		},
		{
			name:   "reachable host",
			env:    func(t *testing.T) map[string]string { return map[string]string{"AMCUI_HOST_URL": hostURL(t)} },
			status: StatusPass,
		},
		{
			name:   "unreachable host",
			env:    func(t *testing.T) map[string]string { return map[string]string{"AMCUI_HOST_URL": deadURL(t)} },
			status: StatusFail,
			detail: true,
		},
		{
			name:   "invalid settings",
			env:    func(*testing.T) map[string]string { return map[string]string{"AMCUI_HOST_MODE": "carrier-pigeon"} },
			status: StatusWarn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.Isolate(t)

			for k, v := range tt.env(t) {
				t.Setenv(k, v)
			}

			got := resultByName(t, New(config.Load()).Run(t.Context()), "Launcher Host")

			if got.Status != tt.status {
				t.Errorf("status = %v (%s), want %v", got.Status, got.Message, tt.status)
			}

			if (got.Detail != "") != tt.detail {
				t.Errorf("detail = %q, want present=%v", got.Detail, tt.detail)
			}
		})
	}
}

func TestRunner_ConfigCheck(t *testing.T) {
	testutil.Isolate(t)
	t.Setenv("AMCUI_HOST_URL", "http://launcher.local/ui")

	got := resultByName(t, New(config.Load()).Run(t.Context()), "Config")

	if got.Status != StatusFail {
		t.Fatalf("status = %v, want fail", got.Status)
	}

	if !strings.Contains(got.Detail, "ws://") {
		t.Errorf("detail = %q, want scheme hint", got.Detail)
	}
}

func TestRunner_SnapshotCheck(t *testing.T) {
	t.Run("built-in", func(t *testing.T) {
		testutil.Isolate(t)

		got := resultByName(t, New(config.Load()).Run(t.Context()), "Standalone Snapshot")
		if got.Status != StatusPass || got.Message != "Built-in snapshot" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("configured file", func(t *testing.T) {
		dirs := testutil.Isolate(t)
		path := testutil.WriteFile(t, dirs.Config, "fixture.jsonc", `{
			// hand-edited
			"status": "Ready",
			"skins": [{"id": "s1", "name": "Steve", "variant": "classic"}],
		}`)
		t.Setenv("AMCUI_STANDALONE_SNAPSHOT", path)

		got := resultByName(t, New(config.Load()).Run(t.Context()), "Standalone Snapshot")
		if got.Status != StatusPass {
			t.Fatalf("status = %v: %s %s", got.Status, got.Message, got.Detail)
		}

		if !strings.Contains(got.Message, "1 skins") {
			t.Errorf("message = %q", got.Message)
		}
	})

	t.Run("configured file is broken", func(t *testing.T) {
		dirs := testutil.Isolate(t)
		path := testutil.WriteFile(t, dirs.Config, "broken.json", `{"skins": 7}`)
		t.Setenv("AMCUI_STANDALONE_SNAPSHOT", path)

		got := resultByName(t, New(config.Load()).Run(t.Context()), "Standalone Snapshot")
		if got.Status != StatusFail || got.Detail == "" {
			t.Errorf("got %+v, want fail with detail", got)
		}
	})

	t.Run("default file is broken", func(t *testing.T) {
		dirs := testutil.Isolate(t)
		testutil.WriteFile(t, dirs.Config, "amcui/mock.jsonc", `not json`)

		got := resultByName(t, New(config.Load()).Run(t.Context()), "Standalone Snapshot")
		if got.Status != StatusWarn {
			t.Errorf("got %+v, want warn", got)
		}
	})
}

func TestRunner_LogFileCheck(t *testing.T) {
	dirs := testutil.Isolate(t)

	got := resultByName(t, New(config.Load()).Run(t.Context()), "Log File")
	if got.Status != StatusPass {
		t.Fatalf("got %+v", got)
	}

	if !strings.HasPrefix(got.Message, dirs.State) {
		t.Errorf("log file %q not under state root %q", got.Message, dirs.State)
	}
}

func TestRunner_CustomChecksRunInOrder(t *testing.T) {
	r := &Runner{}
	r.AddCheck("first", func(context.Context) Result { return Result{Status: StatusPass} })
	r.AddCheck("second", func(context.Context) Result { return Result{Status: StatusFail, Message: "boom"} })

	results := r.Run(t.Context())

	if len(results) != 2 || results[0].Name != "first" || results[1].Name != "second" {
		t.Fatalf("results = %+v", results)
	}

	passed, failed, warnings := Summary(results)
	if passed != 1 || failed != 1 || warnings != 0 {
		t.Errorf("Summary() = %d, %d, %d", passed, failed, warnings)
	}
}

func TestStatus_MarshalText(t *testing.T) {
	for status, want := range map[Status]string{StatusPass: "pass", StatusWarn: "warn", StatusFail: "fail", Status(9): "unknown"} {
		got, err := status.MarshalText()
		if err != nil || string(got) != want {
			t.Errorf("MarshalText(%d) = %q, %v; want %q", status, got, err, want)
		}
	}
}

func TestRenderResults(t *testing.T) {
	var lines []string

	record := func(prefix string) func(string, ...any) {
		return func(format string, args ...any) {
			lines = append(lines, prefix+fmt.Sprintf(format, args...))
		}
	}

	RenderResults([]Result{
		{Name: "Config", Status: StatusPass, Message: "ok"},
		{Name: "Launcher Host", Status: StatusFail, Message: "ws://x", Detail: "refused"},
		{Name: "Version", Status: StatusWarn, Message: "Development build"},
	}, record("+ "), record("! "), record("x "), record("  "))

	want := []string{
		"+ Config           ok",
		"x Launcher Host    ws://x",
		"      refused",
		"! Version          Development build",
	}

	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("RenderResults() =\n%s\nwant\n%s", strings.Join(lines, "\n"), strings.Join(want, "\n"))
	}
}
