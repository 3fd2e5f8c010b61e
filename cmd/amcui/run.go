package main

import (
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/amc-launcher/amcui/internal/bridge"
	"github.com/amc-launcher/amcui/internal/config"
	clierrors "github.com/amc-launcher/amcui/internal/errors"
	"github.com/amc-launcher/amcui/internal/observability"
	"github.com/amc-launcher/amcui/internal/output"
	"github.com/amc-launcher/amcui/internal/transport"
	"github.com/amc-launcher/amcui/internal/tui"
)

func newRunCmd() *cobra.Command {
	var (
		host     hostFlags
		mockFile string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the launcher UI",
		Long: `Open the full-screen launcher UI. With a reachable host the UI shows the
launcher state the host pushes and sends your actions back to it. Without one
(or when the host cannot be reached) it runs as a standalone preview over the
mock snapshot, and actions go nowhere.

With --stdio the launcher owns stdin and stdout, so the UI draws on the
controlling terminal instead.`,
		Example: `  amcui run
  amcui run --host-url ws://127.0.0.1:7777/ui
  amcui run --standalone --mock-file ./fixtures/busy.jsonc`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			logger := observability.FromContext(ctx)
			cfg := config.Load()
			tc := host.transportConfig(cfg)

			if err := tc.Validate(); err != nil {
				return clierrors.InvalidHostConfig(err)
			}

			programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}

			if tc.Mode == transport.ModeStdio {
				tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
				if err != nil {
					return clierrors.NotATerminal(cmd.CommandPath())
				}
				defer tty.Close()

				programOpts = append(programOpts, tea.WithInput(tty), tea.WithOutput(tty))
			} else if !out.Terminal().InteractiveEnabled() {
				return clierrors.NotATerminal(cmd.CommandPath())
			}

			mock, source, err := standaloneState(cfg, mockFile)
			if err != nil {
				return err
			}

			conn, err := transport.Detect(ctx, tc, hostTransportOptions(logger))
			if err != nil {
				return clierrors.InvalidHostConfig(err)
			}
			defer conn.Close()

			session := bridge.New(conn,
				bridge.WithLogger(logger),
				bridge.WithMockState(mock),
				bridge.WithDropHook(dropLogger(logger)),
			)

			model := tui.New(session)
			defer model.Close()

			session.Mount(ctx)
			defer session.Unmount()

			logger.Info("ui started",
				slog.Bool("host.present", conn.HostPresent()),
				slog.String("standalone.snapshot", source),
			)

			program := tea.NewProgram(model, programOpts...)

			if done := conn.Done(); done != nil {
				go func() {
					select {
					case <-done:
						program.Send(tui.HostLostMsg{})
					case <-ctx.Done():
					}
				}()
			}

			if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return clierrors.Wrap(clierrors.ExitGeneral, "Terminal UI failed", err)
			}

			if dropped := session.Dropped(); len(dropped) > 0 {
				logger.Info("ui stopped", slog.Any("dropped", dropped))
			}

			return nil
		},
	}

	host.register(cmd, true)
	cmd.Flags().StringVar(&mockFile, "mock-file", "", "JSON or JSONC snapshot to preview without a host")

	return cmd
}
