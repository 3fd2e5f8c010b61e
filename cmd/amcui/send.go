package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amc-launcher/amcui/internal/bridge"
	"github.com/amc-launcher/amcui/internal/codec"
	"github.com/amc-launcher/amcui/internal/config"
	"github.com/amc-launcher/amcui/internal/envelope"
	clierrors "github.com/amc-launcher/amcui/internal/errors"
	"github.com/amc-launcher/amcui/internal/intent"
	"github.com/amc-launcher/amcui/internal/observability"
	"github.com/amc-launcher/amcui/internal/output"
	"github.com/amc-launcher/amcui/internal/transport"
)

const sendFlushTimeout = 5 * time.Second

func newSendCmd() *cobra.Command {
	var (
		host   hostFlags
		dryRun bool
		wait   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send <kind> [key=value ...]",
		Short: "Send one intent to the launcher host",
		Long: `Send a single intent to the launcher host, after the same handshake the
UI performs. Arguments are key=value pairs named after the intent's fields.
For add_skin, file=<png> reads a skin from disk in place of dataUrl.

With --dry-run nothing is sent: the envelope is printed in the configured
encoding (JSON, or hex-encoded CBOR).`,
		Example: `  amcui send play
  amcui send set_version id=1.20.4
  amcui send mod_toggle fileName=sodium.jar enable=false
  amcui send add_skin file=./steve.png name=Steve variant=slim
  amcui send shop_buy id=cape_red --dry-run`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}

			return envelope.IntentKinds(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			logger := observability.FromContext(ctx)

			kind := args[0]

			it, err := buildIntent(kind, args[1:])
			if err != nil {
				return err
			}

			tc := host.transportConfig(config.Load())

			if dryRun {
				return printDryRun(out, tc, it)
			}

			conn, err := connectHost(ctx, cmd.CommandPath(), tc, hostTransportOptions(logger))
			if err != nil {
				return err
			}
			defer conn.Close()

			if tc.Mode == transport.ModeStdio {
				out.Out = out.Err
			}

			session := bridge.New(conn, bridge.WithLogger(logger), bridge.WithDropHook(dropLogger(logger)))

			views := make(chan bridge.View, 16)
			if wait > 0 {
				session.Subscribe(func(view bridge.View) {
					select {
					case views <- view:
					default:
					}
				})
			}

			session.Mount(ctx)
			defer session.Unmount()

			if wait > 0 {
				waitForSnapshot(ctx, out, conn, views, wait)
			}

			session.Send(it)

			flushCtx, cancel := context.WithTimeout(ctx, sendFlushTimeout)
			defer cancel()

			if err := transport.Flush(flushCtx, conn); err != nil {
				return clierrors.Wrap(clierrors.ExitNetwork, fmt.Sprintf("Could not deliver %s", kind), err).
					WithHint("The host stopped reading. Check that the launcher is still running")
			}

			out.Success("Sent %s", kind)

			if wait <= 0 {
				return nil
			}

			return printReply(ctx, out, conn, views, wait)
		},
	}

	host.register(cmd, false)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the encoded envelope instead of sending it")
	cmd.Flags().DurationVar(&wait, "wait", 0, "Wait this long for the host's next state or status and print it")

	return cmd
}

// buildIntent parses key=value arguments into an intent for kind.
func buildIntent(kind string, pairs []string) (envelope.Intent, error) {
	args := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, clierrors.InvalidIntentArgs(kind, fmt.Errorf("argument %q is not key=value", pair))
		}

		args[key] = value
	}

	if kind == string(envelope.KindAddSkin) {
		if err := inlineSkinFile(args); err != nil {
			return nil, clierrors.InvalidIntentArgs(kind, err)
		}
	}

	it, err := envelope.ParseIntent(kind, args)
	if errors.Is(err, envelope.ErrUnknownKind) {
		return nil, clierrors.UnknownIntent(kind, envelope.IntentKinds())
	}

	if err != nil {
		return nil, clierrors.InvalidIntentArgs(kind, err)
	}

	return it, nil
}

// inlineSkinFile replaces file=<path> with the dataUrl the host expects.
func inlineSkinFile(args map[string]string) error {
	path, ok := args["file"]
	if !ok {
		return nil
	}

	delete(args, "file")

	if _, both := args["dataUrl"]; both {
		return errors.New("pass either file or dataUrl, not both")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read skin: %w", err)
	}

	if !intent.IsPNG(data) {
		return fmt.Errorf("%s is not a PNG image", path)
	}

	args["dataUrl"] = intent.SkinDataURL(data)

	return nil
}

// printDryRun pushes it through a session over an in-memory host and prints
// the envelope that would have gone out.
func printDryRun(out *output.Writer, tc transport.Config, it envelope.Intent) error {
	c, err := codec.ByName(tc.Encoding)
	if err != nil {
		return clierrors.InvalidHostConfig(err)
	}

	host := transport.NewMemory()
	session := bridge.New(host)
	session.Mount(context.Background())
	host.Reset()
	session.Send(it)
	session.Unmount()

	sent := host.Sent()
	if len(sent) != 1 {
		return clierrors.New(clierrors.ExitGeneral, "Dry run produced no envelope")
	}

	data, err := envelope.Encode(c, sent[0])
	if err != nil {
		return clierrors.Wrap(clierrors.ExitGeneral, "Could not encode envelope", err)
	}

	if c.Name() == codec.NameCBOR {
		out.Print("%x\n", data)
		return nil
	}

	out.Print("%s\n", data)

	return nil
}

// waitForSnapshot shows a spinner until the host's first snapshot arrives.
// The intent is sent either way.
func waitForSnapshot(ctx context.Context, out *output.Writer, conn transport.Conn, views <-chan bridge.View, wait time.Duration) {
	if out.JSON {
		if !awaitView(ctx, conn, views, wait) {
			observability.FromContext(ctx).Warn("no snapshot before send", slog.Duration("wait", wait))
		}

		return
	}

	spin := out.Spinner("Waiting for the launcher state")
	spin.Start()

	if awaitView(ctx, conn, views, wait) {
		spin.StopWithSuccess("")
		return
	}

	spin.StopWithWarning(fmt.Sprintf("The host sent no snapshot within %s", wait))
}

// awaitView waits for the first live view, reporting false on timeout.
func awaitView(ctx context.Context, conn transport.Conn, views <-chan bridge.View, wait time.Duration) bool {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case view := <-views:
			if view.Mode == bridge.ModeLive {
				return true
			}
		case <-conn.Done():
			return false
		case <-timer.C:
			return false
		case <-ctx.Done():
			return false
		}
	}
}

// printReply prints the next view the host causes after the intent.
func printReply(ctx context.Context, out *output.Writer, conn transport.Conn, views <-chan bridge.View, wait time.Duration) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case view := <-views:
		if out.JSON {
			return out.PrintJSON(view.State)
		}

		out.KeyValues([]output.Field{
			{Key: "mode", Value: string(view.Mode)},
			{Key: "status", Value: view.State.Status},
			{Key: "busy", Value: fmt.Sprint(view.State.Busy)},
			{Key: "state", Value: stateSummary(view.State)},
		})

		return nil
	case <-conn.Done():
		return clierrors.HostDisconnected()
	case <-timer.C:
		out.Warning("No reply from the host within %s", wait)
		return nil
	case <-ctx.Done():
		return nil
	}
}
