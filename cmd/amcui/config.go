package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/amc-launcher/amcui/internal/config"
	clierrors "github.com/amc-launcher/amcui/internal/errors"
	"github.com/amc-launcher/amcui/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View and modify amcui configuration settings.`,
	}

	cmd.AddCommand(newConfigListCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		Long: `Display every setting amcui reads with its current value. Values come
from AMCUI_* environment variables, then the config file, then defaults.`,
		Example: `  amcui config list
  amcui config list --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			cfg := config.Load()

			if out.JSON {
				return out.PrintJSON(cfg.All())
			}

			fields := make([]output.Field, 0, len(config.Settings))
			for _, setting := range config.Settings {
				fields = append(fields, output.Field{Key: setting.Key, Value: displayValue(cfg.Get(setting.Key))})
			}

			out.KeyValues(fields)
			out.Println()
			out.Println("Available settings:")

			for _, setting := range config.Settings {
				if setting.Default == "" {
					out.Print("  %-20s %s\n", setting.Key, setting.Description)
					continue
				}

				out.Print("  %-20s %s (default: %v)\n", setting.Key, setting.Description, setting.Default)
			}

			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Get a configuration value",
		Long:    `Retrieve and display the current value of a single configuration key.`,
		Example: `  amcui config get host.url`,
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return knownKeys(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			key := args[0]

			if !config.IsKnown(key) {
				return clierrors.InvalidConfigKey(key, knownKeys())
			}

			value := config.Load().Get(key)

			if out.JSON {
				return out.PrintJSON(map[string]any{key: value})
			}

			if value == nil || value == "" {
				out.Muted("%s is not set", key)
				return nil
			}

			out.Print("%s = %v\n", key, value)

			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  `Set a configuration key to the given value. The value is persisted to the config file.`,
		Example: `  amcui config set host.url ws://127.0.0.1:7777/ui
  amcui config set host.encoding cbor`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}

			return knownKeys(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			key, value := args[0], args[1]

			if !config.IsKnown(key) {
				return clierrors.InvalidConfigKey(key, knownKeys())
			}

			if err := config.Load().Set(key, value); err != nil {
				var parseErr *config.ValueError
				switch {
				case errors.Is(err, config.ErrUnknownKey):
					return clierrors.InvalidConfigKey(key, knownKeys())
				case errors.As(err, &parseErr):
					return clierrors.InvalidConfigValue(err)
				default:
					return clierrors.ConfigFailed("set config", err)
				}
			}

			out.Success("Set %s = %s", key, value)

			return nil
		},
	}
}

func knownKeys() []string {
	keys := make([]string, 0, len(config.Settings))
	for _, setting := range config.Settings {
		keys = append(keys, setting.Key)
	}

	sort.Strings(keys)

	return keys
}

func displayValue(v any) string {
	if v == nil || v == "" {
		return "(unset)"
	}

	return fmt.Sprint(v)
}
