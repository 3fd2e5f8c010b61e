package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/amc-launcher/amcui/internal/codec"
)

// Host modes.
const (
	ModeAuto       = "auto"
	ModeWebSocket  = "websocket"
	ModeStdio      = "stdio"
	ModeStandalone = "standalone"
)

// ErrInvalidConfig is returned by Detect for host settings it cannot act on.
var ErrInvalidConfig = errors.New("invalid host configuration")

// Config selects and parameterizes the host transport.
type Config struct {
	Mode     string
	URL      string
	Encoding string
	Outbox   int

	// Stdin and Stdout are the pipe ends for ModeStdio. They default to
	// os.Stdin and os.Stdout.
	Stdin  io.Reader
	Stdout io.Writer
}

// Modes lists the accepted Config.Mode values.
func Modes() []string {
	return []string{ModeAuto, ModeWebSocket, ModeStdio, ModeStandalone}
}

// Validate checks the mode and encoding without connecting.
func (c Config) Validate() error {
	switch c.mode() {
	case ModeAuto, ModeStandalone, ModeStdio:
	case ModeWebSocket:
		if c.URL == "" {
			return fmt.Errorf("%w: mode %q needs a host url", ErrInvalidConfig, ModeWebSocket)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q (want one of %s)",
			ErrInvalidConfig, c.Mode, strings.Join(Modes(), ", "))
	}

	if c.URL != "" && !strings.HasPrefix(c.URL, "ws://") && !strings.HasPrefix(c.URL, "wss://") {
		return fmt.Errorf("%w: host url %q must use ws:// or wss://", ErrInvalidConfig, c.URL)
	}

	if _, err := codec.ByName(c.encoding()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (c Config) mode() string {
	if c.Mode == "" {
		return ModeAuto
	}

	return strings.ToLower(c.Mode)
}

func (c Config) encoding() string {
	if c.Encoding == "" {
		return codec.NameJSON
	}

	return strings.ToLower(c.Encoding)
}

// Detect opens the transport cfg describes. A host URL selects WebSocket in
// auto mode; without one the UI runs standalone. A host that cannot be
// reached is not an error: Detect logs a warning and returns Standalone.
func Detect(ctx context.Context, cfg Config, opts Options) (Conn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts = opts.withDefaults()
	opts.Codec, _ = codec.ByName(cfg.encoding())

	if cfg.Outbox > 0 {
		opts.Outbox = cfg.Outbox
	}

	switch cfg.mode() {
	case ModeStandalone:
		return Standalone{}, nil

	case ModeStdio:
		stdin, stdout := cfg.Stdin, cfg.Stdout
		if stdin == nil {
			stdin = os.Stdin
		}

		if stdout == nil {
			stdout = os.Stdout
		}

		return NewPipe(stdin, stdout, opts), nil
	}

	if cfg.URL == "" {
		return Standalone{}, nil
	}

	ws, err := Dial(ctx, cfg.URL, opts)
	if err != nil {
		opts.Logger.Warn("host unreachable, running standalone",
			slog.String("host.url", cfg.URL),
			slog.String("error", err.Error()),
		)

		return Standalone{}, nil
	}

	opts.Logger.Debug("connected to host",
		slog.String("host.url", cfg.URL),
		slog.String("encoding", opts.Codec.Name()),
	)

	return ws, nil
}
