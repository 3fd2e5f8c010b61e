package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/amc-launcher/amcui/internal/codec"
	"github.com/amc-launcher/amcui/internal/envelope"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 10 * time.Second
)

// WebSocket talks to a host serving a WebSocket endpoint. Text frames carry
// JSON envelopes and binary frames carry CBOR envelopes; outbound frames use
// the configured codec.
type WebSocket struct {
	conn *websocket.Conn
	opts Options

	subscribers listeners
	out         *outbox
	done        chan struct{}
	closeOnce   sync.Once
}

// Dial connects to the host at url.
func Dial(ctx context.Context, url string, opts Options) (*WebSocket, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("dial host %s: %w", url, err)
	}

	return newWebSocket(conn, opts), nil
}

func newWebSocket(conn *websocket.Conn, opts Options) *WebSocket {
	opts = opts.withDefaults()

	ws := &WebSocket{
		conn: conn,
		opts: opts,
		out:  newOutbox(opts.Outbox, opts.Logger),
		done: make(chan struct{}),
	}

	go ws.readLoop()
	go ws.out.run(ws.writeFrame)

	return ws
}

// HostPresent reports true: the connection was established.
func (ws *WebSocket) HostPresent() bool { return true }

// SendIntent queues env for the host.
func (ws *WebSocket) SendIntent(env envelope.Envelope) {
	if f, ok := ws.out.encode(ws.opts.Codec, env); ok {
		ws.out.push(f)
	}
}

// Subscribe registers an inbound handler.
func (ws *WebSocket) Subscribe(handler Handler) func() {
	return ws.subscribers.add(handler)
}

// Flush waits until every queued intent has been written to the socket.
func (ws *WebSocket) Flush(ctx context.Context) error { return ws.out.flush(ctx) }

// Done is closed when the connection ends.
func (ws *WebSocket) Done() <-chan struct{} { return ws.done }

// Close sends a close frame and tears the connection down.
func (ws *WebSocket) Close() error {
	ws.out.close()

	deadline := time.Now().Add(time.Second)
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "ui closed")
	_ = ws.conn.WriteControl(websocket.CloseMessage, message, deadline)

	return ws.conn.Close()
}

func (ws *WebSocket) writeFrame(f frame) error {
	messageType := websocket.TextMessage
	if f.binary {
		messageType = websocket.BinaryMessage
	}

	if err := ws.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}

	return ws.conn.WriteMessage(messageType, f.data)
}

func (ws *WebSocket) readLoop() {
	defer ws.closeOnce.Do(func() {
		ws.out.close()
		close(ws.done)
	})

	for {
		messageType, data, err := ws.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ws.opts.Logger.Warn("host connection lost", slog.String("error", err.Error()))
			}

			return
		}

		frameCodec := codec.JSON
		if messageType == websocket.BinaryMessage {
			frameCodec = codec.CBOR
		}

		env, err := envelope.Decode(frameCodec, data)
		if err != nil {
			ws.opts.OnMalformed(err)
			continue
		}

		ws.subscribers.dispatch(env)
	}
}
