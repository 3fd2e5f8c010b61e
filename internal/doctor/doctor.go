// Package doctor runs amcui health checks.
//
// Each check inspects one thing a working UI depends on: the config file,
// the launcher host, the standalone snapshot and the log file.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amc-launcher/amcui/internal/buildinfo"
	"github.com/amc-launcher/amcui/internal/config"
	"github.com/amc-launcher/amcui/internal/launcher"
	"github.com/amc-launcher/amcui/internal/paths"
	"github.com/amc-launcher/amcui/internal/transport"
)

const hostProbeTimeout = 3 * time.Second

// Status represents the result of a diagnostic check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusWarn indicates a non-critical issue.
	StatusWarn
	// StatusFail indicates a critical failure.
	StatusFail
)

// String returns the lower-case status name used in JSON output.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result holds the outcome of a single check.
type Result struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Check is a diagnostic check function.
type Check func(ctx context.Context) Result

// Runner executes diagnostic checks.
type Runner struct {
	cfg    *config.Config
	checks []namedCheck
}

type namedCheck struct {
	name  string
	check Check
}

// New creates a runner with the default checks reading cfg.
func New(cfg *config.Config) *Runner {
	r := &Runner{cfg: cfg}

	r.AddCheck("Config", r.checkConfig)
	r.AddCheck("Launcher Host", r.checkHost)
	r.AddCheck("Standalone Snapshot", r.checkSnapshot)
	r.AddCheck("Log File", checkLogFile)
	r.AddCheck("Version", checkVersion)

	return r
}

// AddCheck registers a diagnostic check.
func (r *Runner) AddCheck(name string, check Check) {
	r.checks = append(r.checks, namedCheck{name: name, check: check})
}

// Run executes all registered checks in order.
func (r *Runner) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(r.checks))

	for _, nc := range r.checks {
		result := nc.check(ctx)
		result.Name = nc.name
		results = append(results, result)
	}

	return results
}

// Summary returns counts of passed, failed, and warning checks.
func Summary(results []Result) (passed, failed, warnings int) {
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		case StatusWarn:
			warnings++
		}
	}

	return passed, failed, warnings
}

func (r *Runner) transportConfig() transport.Config {
	return transport.Config{
		Mode:     r.cfg.HostMode(),
		URL:      r.cfg.HostURL(),
		Encoding: r.cfg.HostEncoding(),
		Outbox:   r.cfg.HostOutbox(),
	}
}

func (r *Runner) checkConfig(context.Context) Result {
	tc := r.transportConfig()

	if err := tc.Validate(); err != nil {
		return Result{
			Status:  StatusFail,
			Message: "Host settings are invalid",
			Detail:  err.Error(),
		}
	}

	where := "defaults only"
	if file, err := paths.ConfigFile(); err == nil {
		if _, statErr := os.Stat(file); statErr == nil {
			where = file
		}
	}

	return Result{
		Status:  StatusPass,
		Message: fmt.Sprintf("mode=%s encoding=%s outbox=%d (%s)", r.cfg.HostMode(), r.cfg.HostEncoding(), r.cfg.HostOutbox(), where),
	}
}

func (r *Runner) checkHost(ctx context.Context) Result {
	tc := r.transportConfig()

	switch {
	case tc.Validate() != nil:
		return Result{Status: StatusWarn, Message: "Skipped (invalid host settings)"}
	case tc.Mode == transport.ModeStandalone:
		return Result{Status: StatusPass, Message: "Standalone mode, no host expected"}
	case tc.Mode == transport.ModeStdio:
		return Result{Status: StatusPass, Message: "stdio (the launcher spawns amcui)"}
	case tc.URL == "":
		return Result{
			Status:  StatusWarn,
			Message: "No host configured, the UI will run standalone",
			Detail:  "Set host.url to connect to a running launcher",
		}
	}

	probeCtx, cancel := context.WithTimeout(ctx, hostProbeTimeout)
	defer cancel()

	start := time.Now()

	ws, err := transport.Dial(probeCtx, tc.URL, transport.Options{})
	if err != nil {
		return Result{
			Status:  StatusFail,
			Message: tc.URL,
			Detail:  err.Error(),
		}
	}

	elapsed := time.Since(start)
	_ = ws.Close()

	return Result{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s (%dms)", tc.URL, elapsed.Milliseconds()),
	}
}

func (r *Runner) checkSnapshot(context.Context) Result {
	path := r.cfg.StandaloneSnapshot()
	explicit := path != ""

	if !explicit {
		fallback, err := paths.MockSnapshotFile()
		if err != nil {
			return Result{Status: StatusPass, Message: "Built-in snapshot"}
		}

		if _, statErr := os.Stat(fallback); errors.Is(statErr, os.ErrNotExist) {
			return Result{Status: StatusPass, Message: "Built-in snapshot"}
		}

		path = fallback
	}

	state, err := launcher.LoadMockFile(path)
	if err != nil {
		status := StatusWarn
		if explicit {
			status = StatusFail
		}

		return Result{Status: status, Message: path, Detail: err.Error()}
	}

	if violations := state.Violations(); len(violations) > 0 {
		return Result{
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s (%d inconsistencies)", path, len(violations)),
			Detail:  violations[0],
		}
	}

	return Result{
		Status: StatusPass,
		Message: fmt.Sprintf("%s (%d skins, %d mods, %d shop items)",
			path, len(state.Skins), len(state.Mods), len(state.Shop.Items)),
	}
}

func checkLogFile(context.Context) Result {
	path, err := paths.DefaultLogFile()
	if err != nil {
		return Result{Status: StatusWarn, Message: "Cannot resolve log file", Detail: err.Error()}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return Result{Status: StatusFail, Message: path, Detail: err.Error()}
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Result{Status: StatusFail, Message: path, Detail: err.Error()}
	}

	_ = f.Close()

	return Result{Status: StatusPass, Message: path}
}

func checkVersion(context.Context) Result {
	if buildinfo.Version == "dev" {
		return Result{Status: StatusWarn, Message: "Development build"}
	}

	return Result{Status: StatusPass, Message: "v" + buildinfo.Version}
}

// RenderResults writes one aligned line per result through the given
// output functions, followed by any detail in muted text.
func RenderResults(results []Result, successFn, warningFn, failureFn, mutedFn func(format string, args ...any)) {
	maxNameLen := 0
	for _, r := range results {
		maxNameLen = max(maxNameLen, len(r.Name))
	}

	for _, r := range results {
		report := successFn

		switch r.Status {
		case StatusWarn:
			report = warningFn
		case StatusFail:
			report = failureFn
		}

		report("%-*s%s", maxNameLen+4, r.Name, r.Message)

		if r.Detail != "" {
			mutedFn("    %s", r.Detail)
		}
	}
}
