package envelope

import (
	"encoding/json"
	"fmt"

	"github.com/amc-launcher/amcui/internal/launcher"
)

// Inbound is a narrowed host message. The set of implementations is closed.
type Inbound interface {
	Kind() Kind
	inbound()
}

// StateSnapshot replaces the whole launcher state.
type StateSnapshot struct {
	State launcher.State
}

// StatusUpdate replaces only the status line.
type StatusUpdate struct {
	Message string
}

// AuthMessage sets the account dialog's transient message.
type AuthMessage struct {
	Message string
}

// AuthClear clears the account dialog's transient message.
type AuthClear struct{}

// LogLine appends one line to the log buffer.
type LogLine struct {
	Message string
}

// LogHistory replaces the log buffer.
type LogHistory struct {
	Lines []string
}

func (StateSnapshot) Kind() Kind { return KindState }
func (StatusUpdate) Kind() Kind  { return KindStatus }
func (AuthMessage) Kind() Kind   { return KindAuthMessage }
func (AuthClear) Kind() Kind     { return KindAuthClear }
func (LogLine) Kind() Kind       { return KindLog }
func (LogHistory) Kind() Kind    { return KindLogHistory }

func (StateSnapshot) inbound() {}
func (StatusUpdate) inbound()  {}
func (AuthMessage) inbound()   {}
func (AuthClear) inbound()     {}
func (LogLine) inbound()       {}
func (LogHistory) inbound()    {}

// Narrow converts a wire record into a typed inbound message.
//
// A state payload must be a record whose fields have the expected types;
// fields it omits take their zero values and unknown fields are ignored so the
// host can add fields without breaking older UIs. Log history items that are
// not strings are skipped.
func Narrow(env Envelope) (Inbound, error) {
	kind, ok := env.Kind()
	if !ok {
		return nil, fmt.Errorf("%w: missing or non-string type", ErrMalformed)
	}

	switch kind {
	case KindState:
		payload, ok := env["state"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: state payload is not a record", ErrMalformed)
		}

		state, err := decodeState(payload)
		if err != nil {
			return nil, err
		}

		return StateSnapshot{State: state}, nil
	case KindStatus:
		message, err := stringField(env, kind, "message")
		if err != nil {
			return nil, err
		}

		return StatusUpdate{Message: message}, nil
	case KindAuthMessage:
		message, err := stringField(env, kind, "message")
		if err != nil {
			return nil, err
		}

		return AuthMessage{Message: message}, nil
	case KindAuthClear:
		return AuthClear{}, nil
	case KindLog:
		message, err := stringField(env, kind, "message")
		if err != nil {
			return nil, err
		}

		return LogLine{Message: message}, nil
	case KindLogHistory:
		items, ok := env["items"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: log_history items is not a list", ErrMalformed)
		}

		lines := make([]string, 0, len(items))
		for _, item := range items {
			if line, ok := item.(string); ok {
				lines = append(lines, line)
			}
		}

		return LogHistory{Lines: lines}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

func stringField(env Envelope, kind Kind, field string) (string, error) {
	value, ok := env[field].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s is not a string", ErrMalformed, kind, field)
	}

	return value, nil
}

// decodeState re-encodes the generic record and decodes it strictly typed.
// The record came out of a codec, so it always re-encodes as JSON.
func decodeState(payload map[string]any) (launcher.State, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return launcher.State{}, fmt.Errorf("%w: state payload: %w", ErrMalformed, err)
	}

	var state launcher.State
	if err := json.Unmarshal(data, &state); err != nil {
		return launcher.State{}, fmt.Errorf("%w: state payload: %w", ErrMalformed, err)
	}

	return state.Clone(), nil
}

// Host-side constructors. They build the records a host sends and are used by
// the in-memory transport and by tests.

// StateEnvelope builds a full snapshot record.
func StateEnvelope(state launcher.State) Envelope {
	data, err := json.Marshal(state)
	if err != nil {
		panic(fmt.Sprintf("envelope: launcher state is not encodable: %v", err))
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		panic(fmt.Sprintf("envelope: launcher state is not a record: %v", err))
	}

	return Envelope{TypeField: string(KindState), "state": payload}
}

// StatusEnvelope builds a status record.
func StatusEnvelope(message string) Envelope {
	return Envelope{TypeField: string(KindStatus), "message": message}
}

// AuthMessageEnvelope builds an auth_message record.
func AuthMessageEnvelope(message string) Envelope {
	return Envelope{TypeField: string(KindAuthMessage), "message": message}
}

// AuthClearEnvelope builds an auth_clear record.
func AuthClearEnvelope() Envelope {
	return Envelope{TypeField: string(KindAuthClear)}
}

// LogEnvelope builds a log record.
func LogEnvelope(message string) Envelope {
	return Envelope{TypeField: string(KindLog), "message": message}
}

// LogHistoryEnvelope builds a log_history record.
func LogHistoryEnvelope(lines []string) Envelope {
	items := make([]any, len(lines))
	for i, line := range lines {
		items[i] = line
	}

	return Envelope{TypeField: string(KindLogHistory), "items": items}
}
