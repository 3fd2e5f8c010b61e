// Package transport carries envelopes between the UI and the launcher host.
//
// A Transport is the one bidirectional channel to the host. When no host is
// attached the Standalone transport stands in: it reports no host, swallows
// intents and never delivers anything, so the UI runs as a preview.
//
// Implementations:
//   - Standalone: no host
//   - WebSocket: a host serving a WebSocket endpoint (JSON text frames, CBOR binary frames)
//   - Pipe: a host that spawned the UI and speaks newline-delimited JSON over stdio
//   - Memory: an in-process host for tests and dry runs
package transport

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amc-launcher/amcui/internal/codec"
	"github.com/amc-launcher/amcui/internal/envelope"
)

// DefaultOutbox is the number of encoded intents a host transport buffers
// before it starts dropping new ones.
const DefaultOutbox = 64

// Handler receives inbound envelopes. Handlers must not modify the envelope.
type Handler func(env envelope.Envelope)

// Transport is the raw channel to the host.
type Transport interface {
	// HostPresent reports whether a host is attached. It never blocks.
	HostPresent() bool
	// SendIntent hands an envelope to the host without waiting. Without a
	// host it does nothing.
	SendIntent(env envelope.Envelope)
	// Subscribe registers handler for every inbound envelope, in arrival
	// order. Each call registers a separate handler; the returned function
	// removes only that one and may be called more than once.
	Subscribe(handler Handler) (unsubscribe func())
}

// Conn is a Transport with a lifetime.
type Conn interface {
	Transport
	// Close releases the channel. Intents already handed over are not recalled.
	Close() error
	// Done is closed when the host side of the channel goes away. A nil
	// channel means the transport never ends on its own.
	Done() <-chan struct{}
}

// Flusher is implemented by transports that queue outbound intents.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Flush waits for t to write every queued intent. Transports without a
// queue return immediately.
func Flush(ctx context.Context, t Transport) error {
	if f, ok := t.(Flusher); ok {
		return f.Flush(ctx)
	}

	return nil
}

// Options configure host-backed transports.
type Options struct {
	// Codec encodes outbound envelopes. Defaults to JSON.
	Codec codec.Codec
	// Outbox bounds the queue of unsent intents. Defaults to DefaultOutbox.
	Outbox int
	// Logger receives transport diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
	// OnMalformed is called for every inbound frame that is not a record.
	OnMalformed func(err error)
}

func (o Options) withDefaults() Options {
	if o.Codec == nil {
		o.Codec = codec.JSON
	}

	if o.Outbox <= 0 {
		o.Outbox = DefaultOutbox
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	if o.OnMalformed == nil {
		o.OnMalformed = func(error) {}
	}

	return o
}

// Standalone is the transport used when no host is attached.
type Standalone struct{}

// HostPresent always reports false.
func (Standalone) HostPresent() bool { return false }

// SendIntent discards the envelope.
func (Standalone) SendIntent(envelope.Envelope) {}

// Subscribe never calls handler.
func (Standalone) Subscribe(Handler) func() { return func() {} }

// Close does nothing.
func (Standalone) Close() error { return nil }

// Done returns nil: a standalone transport never ends.
func (Standalone) Done() <-chan struct{} { return nil }

// listeners is an ordered set of handlers with independent removal.
type listeners struct {
	mu      sync.Mutex
	nextID  uint64
	entries []listenerEntry
}

type listenerEntry struct {
	id      uint64
	handler Handler
}

func (l *listeners) add(handler Handler) func() {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listenerEntry{id: id, handler: handler})
	l.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()

			for i, entry := range l.entries {
				if entry.id == id {
					l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
					return
				}
			}
		})
	}
}

func (l *listeners) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// dispatch calls every handler registered at the time of the call. Handlers
// run without the lock held so they may subscribe or unsubscribe.
func (l *listeners) dispatch(env envelope.Envelope) {
	l.mu.Lock()
	entries := make([]listenerEntry, len(l.entries))
	copy(entries, l.entries)
	l.mu.Unlock()

	for _, entry := range entries {
		entry.handler(env)
	}
}
