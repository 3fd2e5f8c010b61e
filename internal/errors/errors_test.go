package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/amc-launcher/amcui/internal/testutil"
)

func TestHostUnreachable(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		wantHint string
	}{
		{"no cause", nil, "Start the launcher first"},
		{"refused", stderrors.New("dial tcp 127.0.0.1:7777: connect: connection refused"), "Nothing is listening"},
		{"handshake", stderrors.New("websocket: bad handshake"), "not a WebSocket endpoint"},
		{"dns", stderrors.New("dial tcp: lookup launcher.invalid: no such host"), "does not resolve"},
		{"timeout", stderrors.New("i/o timeout"), "did not answer in time"},
		{"other", stderrors.New("tls: handshake failure"), "Start the launcher first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HostUnreachable("ws://127.0.0.1:7777/ui", tt.cause)

			if !strings.Contains(err.Hint, tt.wantHint) {
				t.Errorf("hint = %q, want to contain %q", err.Hint, tt.wantHint)
			}

			if err.Code != ExitNetwork {
				t.Errorf("code = %d, want %d", err.Code, ExitNetwork)
			}

			if tt.cause != nil && !stderrors.Is(err, tt.cause) {
				t.Error("cause is not unwrappable")
			}
		})
	}
}

func TestContainsAny(t *testing.T) {
	tests := []struct {
		s          string
		substrings []string
		want       bool
	}{
		{"connection refused", []string{"connection refused"}, true},
		{"Connection REFUSED", []string{"connection refused"}, true},
		{"some error", []string{"timeout", "refused"}, false},
		{"context deadline exceeded", []string{"timeout", "deadline exceeded"}, true},
		{"", []string{"test"}, false},
	}

	for _, tt := range tests {
		result := containsAny(tt.s, tt.substrings...)
		if result != tt.want {
			t.Errorf("containsAny(%q, %v) = %v, want %v", tt.s, tt.substrings, result, tt.want)
		}
	}
}

// TestAllErrorsHaveHints verifies that all error constructors provide actionable hints.
func TestAllErrorsHaveHints(t *testing.T) {
	tests := []struct {
		name string
		err  *CLIError
	}{
		{"ConfigFailed", ConfigFailed("test operation", nil)},
		{"InvalidConfigKey", InvalidConfigKey("api.url", []string{"host.url"})},
		{"InvalidConfigValue", InvalidConfigValue(nil)},
		{"InvalidHostConfig", InvalidHostConfig(nil)},
		{"HostRequired", HostRequired("amcui watch")},
		{"HostUnreachable", HostUnreachable("ws://x", nil)},
		{"HostDisconnected", HostDisconnected()},
		{"UnknownIntent", UnknownIntent("fly", []string{"play"})},
		{"InvalidIntentArgs", InvalidIntentArgs("shop_buy", nil)},
		{"MockSnapshotInvalid", MockSnapshotInvalid("mock.jsonc", nil)},
		{"NotATerminal", NotATerminal("amcui run")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Hint == "" {
				t.Errorf("%s() should have a hint, got empty string", tt.name)
			}

			if tt.err.Message == "" {
				t.Errorf("%s() should have a message, got empty string", tt.name)
			}
		})
	}
}

func TestCLIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *CLIError
		want string
	}{
		{
			name: "message only",
			err:  &CLIError{Message: "test error"},
			want: "test error",
		},
		{
			name: "message with cause",
			err:  &CLIError{Message: "test error", Cause: New(1, "underlying")},
			want: "test error: underlying",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCLIError_Unwrap(t *testing.T) {
	cause := New(1, "cause")
	err := &CLIError{Message: "wrapper", Cause: cause}

	if got := err.Unwrap(); got != cause { //nolint:errorlint // testing identity
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
}

func TestWithHint(t *testing.T) {
	err := New(1, "test").WithHint("do this")

	if err.Hint != "do this" {
		t.Errorf("WithHint() hint = %q, want %q", err.Hint, "do this")
	}
}

func TestWrap(t *testing.T) {
	cause := New(1, "cause")
	err := Wrap(ExitNetwork, "wrapped", cause)

	if err.Code != ExitNetwork {
		t.Errorf("Wrap() code = %d, want %d", err.Code, ExitNetwork)
	}

	if err.Cause != cause { //nolint:errorlint // testing struct field identity
		t.Errorf("Wrap() cause = %v, want %v", err.Cause, cause)
	}
}

// formatCLIError produces a deterministic string representation of a CLIError for golden file comparison.
func formatCLIError(err *CLIError) string {
	return fmt.Sprintf("Message: %s\nHint: %s\nCode: %d\n", err.Message, err.Hint, err.Code)
}

func TestErrorMessages_Golden(t *testing.T) {
	tests := []struct {
		name string
		err  *CLIError
	}{
		{"ConfigFailed", ConfigFailed("set config", nil)},
		{"InvalidConfigKey", InvalidConfigKey("api.url", []string{"host.url", "host.mode"})},
		{"InvalidConfigValue", InvalidConfigValue(nil)},
		{"InvalidHostConfig", InvalidHostConfig(nil)},
		{"HostRequired", HostRequired("amcui watch")},
		{"HostUnreachable", HostUnreachable("ws://127.0.0.1:7777/ui", nil)},
		{"HostDisconnected", HostDisconnected()},
		{"UnknownIntent", UnknownIntent("fly", []string{"play", "shop_buy"})},
		{"InvalidIntentArgs", InvalidIntentArgs("shop_buy", nil)},
		{"MockSnapshotInvalid", MockSnapshotInvalid("mock.jsonc", nil)},
		{"NotATerminal", NotATerminal("amcui run")},
	}

	var sb strings.Builder
	for _, tt := range tests {
		fmt.Fprintf(&sb, "--- %s ---\n", tt.name)
		sb.WriteString(formatCLIError(tt.err))
		sb.WriteString("\n")
	}

	testutil.AssertGolden(t, sb.String(), "error_messages.golden")
}
