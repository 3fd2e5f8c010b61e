// Package errors provides structured CLI error types for amcui.
//
// CLIError wraps errors with user-facing messages, hints, and exit codes
// to provide consistent, actionable error output across all commands.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for CLI errors.
const (
	ExitSuccess = 0  // Successful execution
	ExitGeneral = 1  // General error
	ExitNetwork = 3  // Host connection error
	ExitConfig  = 4  // Configuration error
	ExitUsage   = 64 // Command line usage error (BSD convention)
)

// CLIError represents a user-facing CLI error with actionable guidance.
type CLIError struct {
	// Message is the primary error message shown to the user.
	Message string

	// Hint provides actionable guidance on how to fix the error.
	Hint string

	// Cause is the underlying error, if any.
	Cause error

	// Code is the exit code for the CLI.
	Code int
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New creates a new CLIError with the given message and exit code.
func New(code int, message string) *CLIError {
	return &CLIError{
		Message: message,
		Code:    code,
	}
}

// Wrap wraps an existing error with a CLIError.
func Wrap(code int, message string, cause error) *CLIError {
	return &CLIError{
		Message: message,
		Cause:   cause,
		Code:    code,
	}
}

// WithHint adds a hint to the error.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// As is a convenience function for errors.As with CLIError.
func As(err error, target **CLIError) bool {
	return errors.As(err, target)
}

// --- Common error constructors ---

// ConfigFailed returns an error for configuration save failures.
func ConfigFailed(operation string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Failed to %s", operation),
		Hint:    "Check file permissions for your amcui config directory or run 'amcui doctor'",
		Cause:   cause,
		Code:    ExitConfig,
	}
}

// InvalidConfigKey returns an error for a key amcui does not read.
func InvalidConfigKey(key string, known []string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Unknown configuration key: %s", key),
		Hint:    fmt.Sprintf("Known keys: %s", strings.Join(known, ", ")),
		Code:    ExitUsage,
	}
}

// InvalidConfigValue returns an error for a value a key cannot hold.
func InvalidConfigValue(cause error) *CLIError {
	return &CLIError{
		Message: "Invalid configuration value",
		Hint:    "Run 'amcui config list' to see each key and its allowed values",
		Cause:   cause,
		Code:    ExitUsage,
	}
}

// InvalidHostConfig returns an error for host settings that cannot be used.
func InvalidHostConfig(cause error) *CLIError {
	return &CLIError{
		Message: "Invalid host configuration",
		Hint:    "Check host.url, host.mode and host.encoding with 'amcui config list'",
		Cause:   cause,
		Code:    ExitConfig,
	}
}

// HostRequired returns an error for commands that cannot run standalone.
func HostRequired(command string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("'%s' needs a launcher host", command),
		Hint:    "Set one with 'amcui config set host.url ws://127.0.0.1:7777/ui', or pass --host-url or --stdio",
		Code:    ExitConfig,
	}
}

// HostUnreachable returns an error when the configured host cannot be dialed.
func HostUnreachable(url string, cause error) *CLIError {
	hint := "Start the launcher first, or run 'amcui run --standalone' to preview without it"

	if cause != nil {
		switch text := cause.Error(); {
		case containsAny(text, "connection refused"):
			hint = "Nothing is listening at that address. Start the launcher first"
		case containsAny(text, "bad handshake"):
			hint = "The address answered but is not a WebSocket endpoint. Check the path in host.url"
		case containsAny(text, "no such host"):
			hint = "The host name does not resolve. Check host.url"
		case containsAny(text, "timeout", "deadline exceeded"):
			hint = "The launcher did not answer in time. Check that it is running and reachable"
		}
	}

	return &CLIError{
		Message: fmt.Sprintf("Cannot reach launcher host at %s", url),
		Hint:    hint,
		Cause:   cause,
		Code:    ExitNetwork,
	}
}

// HostDisconnected returns an error when the host goes away mid-command.
func HostDisconnected() *CLIError {
	return &CLIError{
		Message: "Launcher host disconnected",
		Hint:    "Restart the launcher and run the command again",
		Code:    ExitNetwork,
	}
}

// UnknownIntent returns an error for an outbound kind that does not exist.
func UnknownIntent(kind string, known []string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Unknown intent: %s", kind),
		Hint:    fmt.Sprintf("Available intents: %s", strings.Join(known, ", ")),
		Code:    ExitUsage,
	}
}

// InvalidIntentArgs returns an error for intent arguments that do not fit.
func InvalidIntentArgs(kind string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Invalid arguments for %s", kind),
		Hint:    "Pass arguments as key=value pairs. Run 'amcui send --help' for each intent's keys",
		Cause:   cause,
		Code:    ExitUsage,
	}
}

// MockSnapshotInvalid returns an error for a standalone snapshot file that
// cannot be loaded.
func MockSnapshotInvalid(path string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Cannot load standalone snapshot %s", path),
		Hint:    "The file must hold one JSON object (comments allowed) shaped like a launcher state",
		Cause:   cause,
		Code:    ExitConfig,
	}
}

// NotATerminal returns an error when an interactive command has no TTY.
func NotATerminal(command string) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("'%s' needs an interactive terminal", command),
		Hint:    "Use 'amcui watch' for line-based output",
		Code:    ExitUsage,
	}
}

// containsAny checks if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrings {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}

	return false
}
