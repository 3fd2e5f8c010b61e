package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amc-launcher/amcui/internal/bridge"
	"github.com/amc-launcher/amcui/internal/config"
	clierrors "github.com/amc-launcher/amcui/internal/errors"
	"github.com/amc-launcher/amcui/internal/launcher"
	"github.com/amc-launcher/amcui/internal/observability"
	"github.com/amc-launcher/amcui/internal/output"
	"github.com/amc-launcher/amcui/internal/terminal"
	"github.com/amc-launcher/amcui/internal/transport"
)

// watchEvent is one line of `amcui watch` output.
type watchEvent struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Busy    *bool  `json:"busy,omitempty"`
}

func newWatchCmd() *cobra.Command {
	var host hostFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream status and log lines from the host",
		Long: `Connect to the launcher host, perform the same handshake as the UI and
print every change it pushes: mode, status, busy flag, auth messages, log
lines and a summary of each new snapshot. Runs until interrupted or until the
host goes away.`,
		Example: `  amcui watch
  amcui watch --json | jq -r 'select(.type == "log") | .message'`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := output.FromContext(ctx)
			logger := observability.FromContext(ctx)
			tc := host.transportConfig(config.Load())

			conn, err := connectHost(ctx, cmd.CommandPath(), tc, hostTransportOptions(logger))
			if err != nil {
				return err
			}
			defer conn.Close()

			// In stdio mode stdout belongs to the host.
			if tc.Mode == transport.ModeStdio {
				out.Out = out.Err
			}

			session := bridge.New(conn, bridge.WithLogger(logger), bridge.WithDropHook(dropLogger(logger)))

			var prev bridge.View

			session.Subscribe(func(view bridge.View) {
				for _, ev := range diffViews(prev, view) {
					printWatchEvent(out, ev)
				}

				prev = view
			})

			session.Mount(ctx)
			defer session.Unmount()

			return waitForHost(ctx, conn)
		},
	}

	host.register(cmd, false)

	return cmd
}

// waitForHost blocks until ctx ends (a clean exit) or the host leaves.
func waitForHost(ctx context.Context, conn transport.Conn) error {
	select {
	case <-ctx.Done():
		return nil
	case <-conn.Done():
		return clierrors.HostDisconnected()
	}
}

func printWatchEvent(out *output.Writer, ev watchEvent) {
	if out.JSON {
		_ = out.PrintJSONLine(ev)
		return
	}

	switch {
	case ev.Busy != nil && *ev.Busy:
		out.Print("[busy] started\n")
	case ev.Busy != nil:
		out.Print("[busy] finished\n")
	default:
		out.Print("[%s] %s\n", ev.Type, terminal.Sanitize(ev.Message))
	}
}

// diffViews lists what changed from prev to next, in a fixed order.
func diffViews(prev, next bridge.View) []watchEvent {
	var events []watchEvent

	if next.Mode != prev.Mode {
		events = append(events, watchEvent{Type: "mode", Message: string(next.Mode)})
	}

	if next.Mode == bridge.ModeLive && !sameStateIgnoringStatus(prev.State, next.State) {
		events = append(events, watchEvent{Type: "state", Message: stateSummary(next.State)})
	}

	if next.State.Status != prev.State.Status {
		events = append(events, watchEvent{Type: "status", Message: next.State.Status})
	}

	if next.State.Busy != prev.State.Busy {
		busy := next.State.Busy
		events = append(events, watchEvent{Type: "busy", Busy: &busy})
	}

	if next.AuthMessage != prev.AuthMessage {
		if next.AuthMessage == "" {
			events = append(events, watchEvent{Type: "auth_clear"})
		} else {
			events = append(events, watchEvent{Type: "auth_message", Message: next.AuthMessage})
		}
	}

	for _, line := range newLogLines(prev.Logs, next.Logs) {
		events = append(events, watchEvent{Type: "log", Message: line})
	}

	return events
}

func sameStateIgnoringStatus(a, b launcher.State) bool {
	a.Status, b.Status = "", ""
	a.Busy, b.Busy = false, false

	return reflect.DeepEqual(a, b)
}

func stateSummary(s launcher.State) string {
	return fmt.Sprintf("account=%s version=%s skins=%d mods=%d points=%d",
		s.AccountName("none"), s.EffectiveVersion(), len(s.Skins), len(s.Mods), s.Shop.Points)
}

// newLogLines returns the lines of next that prev did not end with. The log
// buffer only appends (evicting from the front) or is replaced wholesale, so
// the longest suffix of prev that prefixes next marks the seen lines.
func newLogLines(prev, next []string) []string {
	for k := min(len(prev), len(next)); k > 0; k-- {
		if reflect.DeepEqual(prev[len(prev)-k:], next[:k]) {
			return next[k:]
		}
	}

	return next
}
