package transport

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/amc-launcher/amcui/internal/codec"
	"github.com/amc-launcher/amcui/internal/envelope"
)

// frame is one encoded outbound envelope.
type frame struct {
	binary bool
	kind   string
	data   []byte
}

// outbox decouples SendIntent from the write side of the channel. Pushing
// never blocks: when the queue is full the newest intent is dropped.
type outbox struct {
	frames chan frame
	closed chan struct{}
	logger *slog.Logger

	mu       sync.Mutex
	isClosed bool
	pending  int
	idle     []chan struct{}
}

// ErrClosed is returned by Flush once the transport has been closed.
var ErrClosed = errors.New("transport closed")

func newOutbox(size int, logger *slog.Logger) *outbox {
	return &outbox{
		frames: make(chan frame, size),
		closed: make(chan struct{}),
		logger: logger,
	}
}

// encode builds a frame for env, logging and returning false on failure.
func (o *outbox) encode(c codec.Codec, env envelope.Envelope) (frame, bool) {
	kind, _ := env.Kind()

	data, err := envelope.Encode(c, env)
	if err != nil {
		o.logger.Warn("dropping unencodable intent",
			slog.String("intent.kind", string(kind)),
			slog.String("error", err.Error()),
		)

		return frame{}, false
	}

	return frame{binary: c.Name() == codec.NameCBOR, kind: string(kind), data: data}, true
}

func (o *outbox) push(f frame) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.isClosed {
		return
	}

	select {
	case o.frames <- f:
		o.pending++
	default:
		o.logger.Warn("host outbox full, dropping intent", slog.String("intent.kind", f.kind))
	}
}

// run writes queued frames until the outbox is closed. Write errors are
// logged and the frame is lost; the host owns recovery.
func (o *outbox) run(write func(frame) error) {
	for {
		select {
		case <-o.closed:
			o.discard()
			return
		case f := <-o.frames:
			if err := write(f); err != nil {
				o.logger.Warn("host write failed",
					slog.String("intent.kind", f.kind),
					slog.String("error", err.Error()),
				)
			}

			o.settle()
		}
	}
}

// settle marks one queued frame as written or discarded.
func (o *outbox) settle() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.pending--
	if o.pending == 0 {
		for _, ch := range o.idle {
			close(ch)
		}

		o.idle = nil
	}
}

// discard releases frames still queued at close. No push can enqueue after
// close, so one pass empties the queue.
func (o *outbox) discard() {
	for {
		select {
		case <-o.frames:
			o.settle()
		default:
			return
		}
	}
}

// flush waits until every queued frame has been written or dropped.
func (o *outbox) flush(ctx context.Context) error {
	o.mu.Lock()
	if o.pending == 0 {
		o.mu.Unlock()
		return nil
	}

	written := make(chan struct{})
	o.idle = append(o.idle, written)
	o.mu.Unlock()

	select {
	case <-written:
		return nil
	case <-o.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *outbox) close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.isClosed {
		o.isClosed = true
		close(o.closed)
	}
}
