package transport

import (
	"sync"

	"github.com/amc-launcher/amcui/internal/codec"
	"github.com/amc-launcher/amcui/internal/envelope"
)

// Memory is an in-process host. It records every intent it is sent and
// delivers envelopes pushed through Deliver synchronously, on the caller's
// goroutine.
type Memory struct {
	mu        sync.Mutex
	sent      []envelope.Envelope
	onIntent  func(m *Memory, env envelope.Envelope)
	malformed func(err error)

	subscribers listeners
}

// MemoryOption configures a Memory transport.
type MemoryOption func(*Memory)

// WithHostScript installs fn as the host's reaction to each intent. fn runs
// after the intent is recorded and may call Deliver.
func WithHostScript(fn func(m *Memory, env envelope.Envelope)) MemoryOption {
	return func(m *Memory) { m.onIntent = fn }
}

// WithMalformedHook is called for raw frames DeliverRaw cannot decode.
func WithMalformedHook(fn func(err error)) MemoryOption {
	return func(m *Memory) { m.malformed = fn }
}

// NewMemory returns a Memory transport with a host attached.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{malformed: func(error) {}}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// HostPresent reports true.
func (m *Memory) HostPresent() bool { return true }

// SendIntent records a copy of env and runs the host script, if any.
func (m *Memory) SendIntent(env envelope.Envelope) {
	recorded := roundTrip(env)

	m.mu.Lock()
	m.sent = append(m.sent, recorded)
	script := m.onIntent
	m.mu.Unlock()

	if script != nil {
		script(m, recorded)
	}
}

// Subscribe registers an inbound handler.
func (m *Memory) Subscribe(handler Handler) func() {
	return m.subscribers.add(handler)
}

// Close does nothing.
func (m *Memory) Close() error { return nil }

// Done returns nil: the in-process host never leaves.
func (m *Memory) Done() <-chan struct{} { return nil }

// Deliver hands env to every subscriber as if it came off the wire.
func (m *Memory) Deliver(env envelope.Envelope) {
	m.subscribers.dispatch(roundTrip(env))
}

// DeliverRaw decodes data as a JSON frame and delivers it. Frames that are
// not records go to the malformed hook.
func (m *Memory) DeliverRaw(data []byte) {
	env, err := envelope.Decode(codec.JSON, data)
	if err != nil {
		m.malformed(err)
		return
	}

	m.subscribers.dispatch(env)
}

// Sent returns the intents received so far, oldest first.
func (m *Memory) Sent() []envelope.Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]envelope.Envelope, len(m.sent))
	copy(out, m.sent)

	return out
}

// SentKinds returns the type of every intent received so far.
func (m *Memory) SentKinds() []string {
	sent := m.Sent()
	kinds := make([]string, 0, len(sent))

	for _, env := range sent {
		kind, _ := env.Kind()
		kinds = append(kinds, string(kind))
	}

	return kinds
}

// Reset forgets recorded intents.
func (m *Memory) Reset() {
	m.mu.Lock()
	m.sent = nil
	m.mu.Unlock()
}

// Subscribers returns the number of registered handlers.
func (m *Memory) Subscribers() int { return m.subscribers.len() }

// roundTrip copies env through JSON so receivers see wire-shaped values.
// Envelopes that cannot be encoded are passed through unchanged.
func roundTrip(env envelope.Envelope) envelope.Envelope {
	data, err := envelope.Encode(codec.JSON, env)
	if err != nil {
		return env
	}

	decoded, err := envelope.Decode(codec.JSON, data)
	if err != nil {
		return env
	}

	return decoded
}
