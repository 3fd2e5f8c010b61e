// Package bridge reconciles the UI's copy of the launcher state with the host.
//
// A Session is the single mutator of that copy. It turns inbound envelopes
// into state transitions, keeps the bounded log buffer and the transient
// auth message, and notifies subscribers after every accepted transition.
package bridge

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/amc-launcher/amcui/internal/envelope"
	"github.com/amc-launcher/amcui/internal/launcher"
	"github.com/amc-launcher/amcui/internal/logbuf"
	"github.com/amc-launcher/amcui/internal/observability"
	"github.com/amc-launcher/amcui/internal/transport"
)

// Mode is the session's connection state.
type Mode string

// Session modes. Standalone is terminal; a host session moves from
// awaiting_snapshot to live on the first full snapshot and stays there.
const (
	ModeUninitialized    Mode = "uninitialized"
	ModeStandalone       Mode = "standalone"
	ModeAwaitingSnapshot Mode = "awaiting_snapshot"
	ModeLive             Mode = "live"
)

// Drop reasons reported by Dropped and the drop hook.
const (
	DropUnknownKind = "unknown_kind"
	DropMalformed   = "malformed"
	DropStandalone  = "standalone"
)

// View is an immutable copy of everything a subscriber renders.
type View struct {
	Mode        Mode
	State       launcher.State
	Logs        []string
	AuthMessage string
}

// Listener receives a View after every accepted transition.
type Listener func(View)

// DropHook observes envelopes the session ignored.
type DropHook func(reason string, env envelope.Envelope, err error)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithMockState replaces the embedded snapshot shown in standalone mode.
func WithMockState(state launcher.State) Option {
	return func(s *Session) {
		mock := state.Clone()
		s.mock = &mock
	}
}

// WithDropHook installs fn to observe ignored envelopes.
func WithDropHook(fn DropHook) Option {
	return func(s *Session) { s.dropHook = fn }
}

// WithTracer sets the tracer used for dispatch spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Session) { s.tracer = tracer }
}

// Session owns the reconciled launcher state.
type Session struct {
	transport transport.Transport
	logger    *slog.Logger
	tracer    trace.Tracer
	mock      *launcher.State
	dropHook  DropHook

	mu          sync.Mutex
	mode        Mode
	state       launcher.State
	logs        *logbuf.Buffer
	authMessage string
	dropped     map[string]int
	unsubscribe func()

	// Transitions that arrive while subscribers are being notified are
	// queued and applied by the goroutine already notifying. Local changes
	// queue a nil entry.
	pending  []envelope.Inbound
	draining bool

	listeners listenerSet
}

// New returns an unmounted session over t.
func New(t transport.Transport, opts ...Option) *Session {
	s := &Session{
		transport: t,
		mode:      ModeUninitialized,
		state:     launcher.Default(),
		logs:      logbuf.New(logbuf.DefaultCapacity),
		dropped:   make(map[string]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	if s.tracer == nil {
		s.tracer = observability.Tracer("github.com/amc-launcher/amcui/internal/bridge")
	}

	return s
}

// Mount connects the session to its transport. Without a host the session
// installs the mock snapshot and becomes standalone for good. With a host it
// subscribes, announces the UI and asks for a snapshot.
//
// Mount runs once; later calls do nothing.
func (s *Session) Mount(ctx context.Context) {
	s.mu.Lock()

	if s.mode != ModeUninitialized {
		s.mu.Unlock()
		return
	}

	if !s.transport.HostPresent() {
		s.mode = ModeStandalone
		if s.mock != nil {
			s.state = s.mock.Clone()
		} else {
			s.state = launcher.Mock()
		}
		s.logger.DebugContext(ctx, "no host attached, running standalone")
		s.deliverLocked(nil)

		return
	}

	// The mode changes and is announced before subscribing, so no host
	// envelope can be delivered ahead of the awaiting_snapshot view.
	s.mode = ModeAwaitingSnapshot
	s.logger.DebugContext(ctx, "host attached, requesting snapshot")
	s.deliverLocked(nil)

	unsubscribe := s.transport.Subscribe(s.Dispatch)

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	s.Send(envelope.UIReady{})
	s.Send(envelope.GetState{})
}

// Unmount stops listening to the host. Intents already sent stay sent.
func (s *Session) Unmount() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// HostPresent reports whether the transport has a host.
func (s *Session) HostPresent() bool {
	return s.transport.HostPresent()
}

// Send hands intent to the host. Without a host it does nothing.
func (s *Session) Send(intent envelope.Intent) {
	s.transport.SendIntent(envelope.FromIntent(intent))
}

// Dispatch narrows env and applies it. Envelopes that are unknown or
// malformed are dropped without touching state or notifying anyone.
func (s *Session) Dispatch(env envelope.Envelope) {
	in, err := envelope.Narrow(env)
	if err != nil {
		s.drop(envelope.DropReason(err), env, err)
		return
	}

	s.Apply(in)
}

// Apply performs one typed transition and notifies subscribers before it
// returns. Transitions triggered from inside a notification are applied
// after the current round, in order, before the outermost Apply returns.
func (s *Session) Apply(in envelope.Inbound) {
	s.mu.Lock()

	if s.mode == ModeStandalone {
		s.mu.Unlock()
		s.drop(DropStandalone, nil, nil)

		return
	}

	s.deliverLocked(in)
}

// deliverLocked queues in and, unless another goroutine is already
// notifying, drains the queue itself. A nil entry announces a change
// already made under mu. Every view is built when its entry is dequeued,
// so subscribers never see an older view after a newer one.
//
// deliverLocked must be called with mu held and returns with it released.
func (s *Session) deliverLocked(in envelope.Inbound) {
	s.pending = append(s.pending, in)
	if s.draining {
		s.mu.Unlock()
		return
	}

	s.draining = true

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]

		if next != nil {
			s.applyLocked(next)
		}

		view := s.viewLocked()
		s.mu.Unlock()

		if next != nil {
			s.trace(next, view.Mode)
		}

		s.listeners.notify(view)

		s.mu.Lock()
	}

	s.pending = nil
	s.draining = false
	s.mu.Unlock()
}

func (s *Session) applyLocked(in envelope.Inbound) {
	switch msg := in.(type) {
	case envelope.StateSnapshot:
		s.state = msg.State.Clone()
		s.mode = ModeLive

		if violations := s.state.Violations(); len(violations) > 0 {
			s.logger.Warn("host snapshot breaks launcher invariants",
				slog.Any("violations", violations),
			)
		}
	case envelope.StatusUpdate:
		s.state.Status = msg.Message
	case envelope.AuthMessage:
		s.authMessage = msg.Message
	case envelope.AuthClear:
		s.authMessage = ""
	case envelope.LogLine:
		s.logs.Append(msg.Message)
	case envelope.LogHistory:
		s.logs.Replace(msg.Lines)
	}
}

func (s *Session) trace(in envelope.Inbound, mode Mode) {
	_, span := s.tracer.Start(context.Background(), "bridge.dispatch",
		trace.WithAttributes(observability.DispatchAttributes(string(in.Kind()), string(mode))...),
	)
	span.End()
}

func (s *Session) drop(reason string, env envelope.Envelope, err error) {
	s.mu.Lock()
	s.dropped[reason]++
	s.mu.Unlock()

	attrs := []any{slog.String("reason", reason)}
	if kind, ok := env.Kind(); ok {
		attrs = append(attrs, slog.String("envelope.kind", string(kind)))
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	s.logger.Debug("ignoring host envelope", attrs...)

	if s.dropHook != nil {
		s.dropHook(reason, env, err)
	}
}

// SetAuthMessage shows text in the account dialog until the host or the UI
// clears it. The change is visible to Snapshot at once; subscribers hear
// about it after any view already being delivered.
func (s *Session) SetAuthMessage(message string) {
	s.mu.Lock()
	s.authMessage = message
	s.deliverLocked(nil)
}

// ClearAuthMessage removes the account dialog text.
func (s *Session) ClearAuthMessage() {
	s.SetAuthMessage("")
}

// Snapshot returns the current view.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewLocked()
}

// Mode returns the current mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mode
}

// Dropped returns how many envelopes were ignored, by reason.
func (s *Session) Dropped() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.dropped))
	for reason, n := range s.dropped {
		out[reason] = n
	}

	return out
}

// Subscribe registers fn for every accepted transition. The returned
// function removes this registration only.
func (s *Session) Subscribe(fn Listener) func() {
	return s.listeners.add(fn)
}

func (s *Session) viewLocked() View {
	return View{
		Mode:        s.mode,
		State:       s.state.Clone(),
		Logs:        s.logs.Lines(),
		AuthMessage: s.authMessage,
	}
}
