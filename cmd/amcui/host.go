package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amc-launcher/amcui/internal/bridge"
	"github.com/amc-launcher/amcui/internal/codec"
	"github.com/amc-launcher/amcui/internal/config"
	"github.com/amc-launcher/amcui/internal/envelope"
	clierrors "github.com/amc-launcher/amcui/internal/errors"
	"github.com/amc-launcher/amcui/internal/launcher"
	"github.com/amc-launcher/amcui/internal/paths"
	"github.com/amc-launcher/amcui/internal/transport"
)

// hostFlags are the connection flags shared by every command that talks to
// the launcher host. Set flags override the config file.
type hostFlags struct {
	url        string
	stdio      bool
	standalone bool
	encoding   string
}

func (f *hostFlags) register(cmd *cobra.Command, allowStandalone bool) {
	cmd.Flags().StringVar(&f.url, "host-url", "", "Launcher host WebSocket URL (overrides host.url)")
	cmd.Flags().BoolVar(&f.stdio, "stdio", false, "Talk to the launcher over stdin/stdout")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "Outbound frame encoding: json, cbor (overrides host.encoding)")

	exclusive := []string{"host-url", "stdio"}

	if allowStandalone {
		cmd.Flags().BoolVar(&f.standalone, "standalone", false, "Ignore any configured host and preview the snapshot")

		exclusive = append(exclusive, "standalone")
	}

	cmd.MarkFlagsMutuallyExclusive(exclusive...)
}

// transportConfig merges the flags over cfg.
func (f *hostFlags) transportConfig(cfg *config.Config) transport.Config {
	tc := transport.Config{
		Mode:     cfg.HostMode(),
		URL:      cfg.HostURL(),
		Encoding: cfg.HostEncoding(),
		Outbox:   cfg.HostOutbox(),
	}

	switch {
	case f.standalone:
		tc.Mode = transport.ModeStandalone
	case f.stdio:
		tc.Mode = transport.ModeStdio
	case f.url != "":
		tc.URL = f.url
		if tc.Mode == transport.ModeStandalone || tc.Mode == transport.ModeStdio {
			tc.Mode = transport.ModeWebSocket
		}
	}

	if f.encoding != "" {
		tc.Encoding = f.encoding
	}

	return tc
}

// connectHost opens a transport that must reach a host. Unlike
// transport.Detect it never falls back to standalone.
func connectHost(ctx context.Context, command string, tc transport.Config, opts transport.Options) (transport.Conn, error) {
	if err := tc.Validate(); err != nil {
		return nil, clierrors.InvalidHostConfig(err)
	}

	switch {
	case tc.Mode == transport.ModeStandalone:
		return nil, clierrors.HostRequired(command)
	case tc.Mode == transport.ModeStdio:
		return transport.Detect(ctx, tc, opts)
	case tc.URL == "":
		return nil, clierrors.HostRequired(command)
	}

	conn, err := transport.Dial(ctx, tc.URL, hostOptions(tc, opts))
	if err != nil {
		return nil, clierrors.HostUnreachable(tc.URL, errors.Unwrap(err))
	}

	return conn, nil
}

func hostOptions(tc transport.Config, opts transport.Options) transport.Options {
	if c, err := codec.ByName(tc.Encoding); err == nil {
		opts.Codec = c
	}

	if tc.Outbox > 0 {
		opts.Outbox = tc.Outbox
	}

	return opts
}

// standaloneState picks the snapshot shown without a host: the --mock-file
// flag, then standalone.snapshot, then mock.jsonc in the config dir, then
// the built-in one.
func standaloneState(cfg *config.Config, flagPath string) (launcher.State, string, error) {
	path := flagPath
	if path == "" {
		path = cfg.StandaloneSnapshot()
	}

	if path == "" {
		fallback, err := paths.MockSnapshotFile()
		if err == nil {
			if _, statErr := os.Stat(fallback); statErr == nil {
				path = fallback
			}
		}
	}

	if path == "" {
		return launcher.Mock(), "built-in", nil
	}

	state, err := launcher.LoadMockFile(path)
	if err != nil {
		return launcher.State{}, path, clierrors.MockSnapshotInvalid(path, err)
	}

	return state, path, nil
}

// dropLogger logs every ignored host envelope at warn so operators see a
// host speaking a newer protocol.
func dropLogger(logger *slog.Logger) bridge.DropHook {
	return func(reason string, _ envelope.Envelope, err error) {
		attrs := []any{slog.String("reason", reason)}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		logger.Warn("host envelope ignored", attrs...)
	}
}

// hostTransportOptions routes frames that never decode to an envelope
// through the same warning as envelopes the session ignores.
func hostTransportOptions(logger *slog.Logger) transport.Options {
	drop := dropLogger(logger)

	return transport.Options{
		Logger: logger,
		OnMalformed: func(err error) {
			drop(bridge.DropMalformed, nil, err)
		},
	}
}
