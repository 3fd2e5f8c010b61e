package transport

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/amc-launcher/amcui/internal/codec"
	"github.com/amc-launcher/amcui/internal/envelope"
)

// maxLineLength bounds one inbound line. Full snapshots with skin previews
// run to a few hundred kilobytes.
const maxLineLength = 16 * 1024 * 1024

// ErrLineTooLong reports an inbound pipe line over the length limit. The
// line is skipped and the pipe keeps reading.
var ErrLineTooLong = errors.New("host line exceeds length limit")

// Pipe talks to a host over a pair of byte streams, one JSON envelope per
// line. A host that spawns the UI as a child process hands it stdin/stdout.
type Pipe struct {
	reader io.Reader
	writer io.Writer
	opts   Options

	subscribers listeners
	out         *outbox
	done        chan struct{}
	closeOnce   sync.Once
}

// NewPipe starts reading envelopes from r and writing intents to w. Pipes
// always use JSON; Options.Codec is ignored.
func NewPipe(r io.Reader, w io.Writer, opts Options) *Pipe {
	opts = opts.withDefaults()
	opts.Codec = codec.JSON

	p := &Pipe{
		reader: r,
		writer: w,
		opts:   opts,
		out:    newOutbox(opts.Outbox, opts.Logger),
		done:   make(chan struct{}),
	}

	go p.readLoop()
	go p.out.run(p.writeFrame)

	return p
}

// HostPresent reports true: a pipe always has a host on the other end.
func (p *Pipe) HostPresent() bool { return true }

// SendIntent queues env for the host.
func (p *Pipe) SendIntent(env envelope.Envelope) {
	if f, ok := p.out.encode(p.opts.Codec, env); ok {
		p.out.push(f)
	}
}

// Subscribe registers an inbound handler.
func (p *Pipe) Subscribe(handler Handler) func() {
	return p.subscribers.add(handler)
}

// Flush waits until every queued intent has been written to the pipe.
func (p *Pipe) Flush(ctx context.Context) error { return p.out.flush(ctx) }

// Done is closed when the host closes its end of the pipe.
func (p *Pipe) Done() <-chan struct{} { return p.done }

// Close stops writing and closes the reader if it is closable.
func (p *Pipe) Close() error {
	p.out.close()

	if closer, ok := p.reader.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

func (p *Pipe) writeFrame(f frame) error {
	line := make([]byte, 0, len(f.data)+1)
	line = append(line, f.data...)
	line = append(line, '\n')

	_, err := p.writer.Write(line)

	return err
}

func (p *Pipe) readLoop() {
	defer p.closeOnce.Do(func() { close(p.done) })

	reader := bufio.NewReaderSize(p.reader, 64*1024)

	for {
		line, err := readLine(reader, maxLineLength)
		if errors.Is(err, ErrLineTooLong) {
			p.opts.OnMalformed(err)
			continue
		}

		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
				p.opts.Logger.Warn("host pipe read failed", slog.String("error", err.Error()))
			}

			return
		}

		if len(line) == 0 {
			continue
		}

		env, err := envelope.Decode(codec.JSON, line)
		if err != nil {
			p.opts.OnMalformed(err)
			continue
		}

		p.subscribers.dispatch(env)
	}
}

// readLine returns the next line without its line ending. A line longer
// than limit is read to its end and discarded with ErrLineTooLong, so the
// stream stays usable. A final line without a newline is still returned.
func readLine(r *bufio.Reader, limit int) ([]byte, error) {
	var (
		line    []byte
		tooLong bool
	)

	for {
		chunk, err := r.ReadSlice('\n')
		content := bytes.TrimSuffix(chunk, []byte("\n"))

		if !tooLong {
			if len(line)+len(content) > limit {
				tooLong = true
				line = nil
			} else {
				line = append(line, content...)
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		switch {
		case tooLong:
			return nil, ErrLineTooLong
		case err != nil && (len(line) == 0 || !errors.Is(err, io.EOF)):
			return nil, err
		}

		return bytes.TrimSuffix(line, []byte("\r")), nil
	}
}
