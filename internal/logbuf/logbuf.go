// Package logbuf holds the bounded buffer of launcher log lines.
package logbuf

// DefaultCapacity is the number of lines the UI keeps.
const DefaultCapacity = 500

// Buffer is a fixed-capacity circular buffer of lines. Once full, each
// append evicts the oldest line. A Buffer is not safe for concurrent use;
// it is owned by a single session that serializes access.
type Buffer struct {
	lines    []string
	capacity int
	// start is the index of the oldest line once the buffer has wrapped.
	start int
	// total counts every line ever appended, including evicted ones.
	total uint64
}

// New creates a buffer holding at most capacity lines. A non-positive
// capacity uses DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Buffer{
		lines:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a line, evicting the oldest one when the buffer is full.
func (b *Buffer) Append(line string) {
	b.total++

	if len(b.lines) < b.capacity {
		b.lines = append(b.lines, line)
		return
	}

	b.lines[b.start] = line
	b.start = (b.start + 1) % b.capacity
}

// Replace discards the buffer and keeps the most recent lines of history,
// in order. Used when the host resends its log after a reconnect.
func (b *Buffer) Replace(history []string) {
	if len(history) > b.capacity {
		history = history[len(history)-b.capacity:]
	}

	b.lines = append(b.lines[:0], history...)
	b.start = 0
	b.total = uint64(len(history))
}

// Lines returns a copy of the buffered lines, oldest first.
func (b *Buffer) Lines() []string {
	out := make([]string, 0, len(b.lines))
	out = append(out, b.lines[b.start:]...)
	out = append(out, b.lines[:b.start]...)

	return out
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int { return len(b.lines) }

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return b.capacity }

// Evicted returns how many lines were dropped to stay within capacity since
// the last Replace.
func (b *Buffer) Evicted() uint64 {
	return b.total - uint64(len(b.lines))
}
