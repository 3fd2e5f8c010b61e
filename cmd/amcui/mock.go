package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/amc-launcher/amcui/internal/config"
	clierrors "github.com/amc-launcher/amcui/internal/errors"
	"github.com/amc-launcher/amcui/internal/launcher"
	"github.com/amc-launcher/amcui/internal/output"
	"github.com/amc-launcher/amcui/internal/paths"
	"github.com/amc-launcher/amcui/internal/prompt"
)

func newMockCmd() *cobra.Command {
	var (
		mockFile string
		write    bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Show the standalone snapshot",
		Long: `Show the launcher snapshot amcui renders when no host is attached.

The snapshot comes from --mock-file, then standalone.snapshot, then
mock.jsonc in the config directory, then the built-in one. Problems a real
host would never send (two current accounts, an equipped item that is not
owned) are reported as warnings.

With --write the built-in snapshot is saved as mock.jsonc in the config
directory so it can be edited. An existing file is replaced only after
confirmation or with --force.`,
		Example: `  amcui mock
  amcui mock --json
  amcui mock --mock-file ./fixtures/offline.jsonc
  amcui mock --write`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if write {
				prompter := prompt.New(out, os.Stdin)

				path, written, err := writeMockSnapshot(func(path string) (bool, error) {
					if force {
						return true, nil
					}

					ok, askErr := prompter.Confirm(fmt.Sprintf("Overwrite %s?", path), false)
					if errors.Is(askErr, prompt.ErrNotInteractive) {
						return false, clierrors.New(clierrors.ExitUsage, path+" already exists").
							WithHint("Pass --force to overwrite it")
					}

					return ok, askErr
				})
				if err != nil {
					return err
				}

				if !written {
					out.Muted("Kept the existing %s", path)
					return nil
				}

				out.Success("Wrote the built-in snapshot to %s", path)

				return nil
			}

			state, source, err := standaloneState(config.Load(), mockFile)
			if err != nil {
				return err
			}

			if out.JSON {
				return out.PrintJSON(state)
			}

			out.KeyValues(snapshotFields(&state, source))

			for _, problem := range state.Violations() {
				out.Warning("%s", problem)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&mockFile, "mock-file", "", "Snapshot file to show (JSON or JSONC)")
	cmd.Flags().BoolVar(&write, "write", false, "Save the built-in snapshot as mock.jsonc in the config directory")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing mock.jsonc with --write")
	cmd.MarkFlagsMutuallyExclusive("mock-file", "write")

	return cmd
}

func snapshotFields(state *launcher.State, source string) []output.Field {
	equipped := "none"
	if skin, ok := state.SelectedSkin(); ok {
		equipped = skin.Name
	}

	return []output.Field{
		{Key: "source", Value: source},
		{Key: "account", Value: fmt.Sprintf("%s (%s)", state.AccountName("Player"), state.AccountType("offline"))},
		{Key: "version", Value: state.EffectiveVersion()},
		{Key: "latest", Value: state.LatestLabel()},
		{Key: "status", Value: displayValue(state.Status)},
		{Key: "busy", Value: strconv.FormatBool(state.Busy)},
		{Key: "saved accounts", Value: strconv.Itoa(len(state.SavedAccounts))},
		{Key: "versions", Value: strconv.Itoa(len(state.Versions))},
		{Key: "skins", Value: fmt.Sprintf("%d (selected: %s)", len(state.Skins), equipped)},
		{Key: "mods", Value: strconv.Itoa(len(state.Mods))},
		{Key: "shop", Value: fmt.Sprintf("%d items, %d points", len(state.Shop.Items), state.Shop.Points)},
	}
}

// writeMockSnapshot saves the built-in snapshot as mock.jsonc. An existing
// file is only replaced when overwrite agrees.
func writeMockSnapshot(overwrite func(path string) (bool, error)) (string, bool, error) {
	path, err := paths.MockSnapshotFile()
	if err != nil {
		return "", false, clierrors.ConfigFailed("resolve mock snapshot path", err)
	}

	_, statErr := os.Stat(path)

	switch {
	case statErr == nil:
		ok, err := overwrite(path)
		if err != nil {
			return "", false, err
		}

		if !ok {
			return path, false, nil
		}
	case !errors.Is(statErr, fs.ErrNotExist):
		return "", false, clierrors.ConfigFailed("check mock snapshot", statErr)
	}

	data, err := json.MarshalIndent(launcher.Mock(), "", "  ")
	if err != nil {
		return "", false, clierrors.ConfigFailed("encode mock snapshot", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", false, clierrors.ConfigFailed("create config directory", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return "", false, clierrors.ConfigFailed("write mock snapshot", err)
	}

	return path, true, nil
}
