// Package config handles amcui configuration using Viper.
//
// Configuration sources (in priority order):
//  1. Environment variables (AMCUI_*)
//  2. Config file (<user config dir>/amcui/config.yaml)
//  3. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/amc-launcher/amcui/internal/paths"
)

// Configuration keys.
const (
	KeyHostURL            = "host.url"
	KeyHostMode           = "host.mode"
	KeyHostEncoding       = "host.encoding"
	KeyHostOutbox         = "host.outbox"
	KeyStandaloneSnapshot = "standalone.snapshot"
)

const (
	// DefaultHostMode lets a configured URL decide between host and standalone.
	DefaultHostMode = "auto"
	// DefaultHostEncoding is the codec for outbound WebSocket frames.
	DefaultHostEncoding = "json"
	// DefaultHostOutbox is the number of intents buffered for a slow host.
	DefaultHostOutbox = 64
)

// ErrUnknownKey is returned by Set for keys amcui does not read.
var ErrUnknownKey = errors.New("unknown configuration key")

// ValueError reports a value a key cannot hold.
type ValueError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s must be %s, got %q", e.Key, e.Reason, e.Value)
}

// Setting describes one configuration key.
type Setting struct {
	Key         string
	Description string
	Default     any
}

// Settings lists every key amcui reads, in display order.
var Settings = []Setting{
	{KeyHostURL, "WebSocket URL of the launcher host (ws:// or wss://)", ""},
	{KeyHostMode, "Host transport: auto, websocket, stdio, standalone", DefaultHostMode},
	{KeyHostEncoding, "Outbound frame encoding: json, cbor", DefaultHostEncoding},
	{KeyHostOutbox, "Intents buffered before new ones are dropped", DefaultHostOutbox},
	{KeyStandaloneSnapshot, "JSON or JSONC launcher state shown without a host", ""},
}

// Config holds the amcui configuration.
type Config struct {
	v *viper.Viper
}

// Load reads configuration from all sources.
func Load() *Config {
	v := viper.New()

	for _, setting := range Settings {
		v.SetDefault(setting.Key, setting.Default)
	}

	if configDir, err := paths.ConfigRoot(); err == nil {
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("AMCUI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found, but warn on other errors)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file: %v\n", err)
		}
	}

	return &Config{v: v}
}

// Get returns a configuration value.
func (c *Config) Get(key string) any {
	return c.v.Get(key)
}

// GetString returns a configuration value as string.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt returns a configuration value as int.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// IsKnown reports whether key is a setting amcui reads.
func IsKnown(key string) bool {
	return slices.ContainsFunc(Settings, func(s Setting) bool { return s.Key == key })
}

// Set validates value for key and persists it to the config file.
func (c *Config) Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	c.v.Set(key, parsed)

	configFile, err := paths.ConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
		return err
	}

	return c.v.WriteConfigAs(configFile)
}

func parseValue(key, value string) (any, error) {
	switch key {
	case KeyHostOutbox:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, &ValueError{Key: key, Value: value, Reason: "a positive integer"}
		}

		return n, nil
	case KeyHostURL:
		if value != "" && !strings.HasPrefix(value, "ws://") && !strings.HasPrefix(value, "wss://") {
			return nil, &ValueError{Key: key, Value: value, Reason: "a ws:// or wss:// URL"}
		}

		return value, nil
	case KeyHostMode:
		switch value {
		case "auto", "websocket", "stdio", "standalone":
			return value, nil
		}

		return nil, &ValueError{Key: key, Value: value, Reason: "one of auto, websocket, stdio, standalone"}
	case KeyHostEncoding:
		switch value {
		case "json", "cbor":
			return value, nil
		}

		return nil, &ValueError{Key: key, Value: value, Reason: "json or cbor"}
	default:
		return value, nil
	}
}

// All returns all configuration as a map.
func (c *Config) All() map[string]any {
	return c.v.AllSettings()
}

// HostURL returns the configured host URL, empty when none is set.
func (c *Config) HostURL() string {
	return strings.TrimSpace(c.GetString(KeyHostURL))
}

// HostMode returns the configured host transport mode.
func (c *Config) HostMode() string {
	return c.GetString(KeyHostMode)
}

// HostEncoding returns the outbound frame encoding.
func (c *Config) HostEncoding() string {
	return c.GetString(KeyHostEncoding)
}

// HostOutbox returns the outbound queue size.
func (c *Config) HostOutbox() int {
	return c.GetInt(KeyHostOutbox)
}

// StandaloneSnapshot returns the configured mock snapshot path, if any.
func (c *Config) StandaloneSnapshot() string {
	return c.GetString(KeyStandaloneSnapshot)
}
