package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amc-launcher/amcui/internal/config"
	"github.com/amc-launcher/amcui/internal/output"
	"github.com/amc-launcher/amcui/internal/paths"
)

// PathsInfo holds all resolved paths for JSON output.
type PathsInfo struct {
	ConfigRoot   string `json:"config_root"`
	StateRoot    string `json:"state_root"`
	CacheRoot    string `json:"cache_root"`
	ConfigFile   string `json:"config_file"`
	MockSnapshot string `json:"mock_snapshot"`
	LogFile      string `json:"log_file"`
	HostURL      string `json:"host_url"`
	HostMode     string `json:"host_mode"`
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show where amcui stores files",
		Long: `Display all file and directory paths used by amcui.

Useful for debugging, scripting, and finding where to put a custom
standalone snapshot (mock.jsonc).`,
		Example: `  amcui paths
  amcui paths --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			info := resolvePathsInfo(config.Load())

			if out.JSON {
				return out.PrintJSON(info)
			}

			out.KeyValues([]output.Field{
				{Key: "Config root:", Value: info.ConfigRoot},
				{Key: "State root:", Value: info.StateRoot},
				{Key: "Cache root:", Value: info.CacheRoot},
			})
			out.Println()
			out.KeyValues([]output.Field{
				{Key: "Config file:", Value: info.ConfigFile},
				{Key: "Mock snapshot:", Value: info.MockSnapshot},
				{Key: "Log file:", Value: info.LogFile},
			})
			out.Println()
			out.KeyValues([]output.Field{
				{Key: "Host URL:", Value: displayValue(info.HostURL)},
				{Key: "Host mode:", Value: info.HostMode},
			})

			return nil
		},
	}
}

func resolvePathsInfo(cfg *config.Config) PathsInfo {
	info := PathsInfo{
		ConfigRoot:   resolveOrError(paths.ConfigRoot),
		StateRoot:    resolveOrError(paths.StateRoot),
		CacheRoot:    resolveOrError(paths.CacheRoot),
		ConfigFile:   resolveOrError(paths.ConfigFile),
		MockSnapshot: resolveOrError(paths.MockSnapshotFile),
		LogFile:      resolveOrError(paths.DefaultLogFile),
		HostURL:      cfg.HostURL(),
		HostMode:     cfg.HostMode(),
	}

	if configured := cfg.StandaloneSnapshot(); configured != "" {
		info.MockSnapshot = configured
	}

	return info
}

func resolveOrError(fn func() (string, error)) string {
	val, err := fn()
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}

	return val
}
