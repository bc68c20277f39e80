package toolrun

import (
	"fmt"
	"io"
)

// cappedWriter keeps the first and the last limit bytes written to it.
type cappedWriter struct {
	limit     int
	head      []byte
	tail      []byte
	discarded int
}

func newCappedWriter(limit int) *cappedWriter {
	return &cappedWriter{limit: limit}
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	n := len(p)

	if room := w.limit - len(w.head); room > 0 {
		k := min(room, len(p))
		w.head = append(w.head, p[:k]...)
		p = p[k:]
	}
	if len(p) == 0 {
		return n, nil
	}

	w.tail = append(w.tail, p...)
	// compact lazily so small writes do not copy the tail every time
	if len(w.tail) > 2*w.limit {
		over := len(w.tail) - w.limit
		w.discarded += over
		w.tail = append(w.tail[:0], w.tail[over:]...)
	}
	return n, nil
}

// Omitted returns how many bytes between head and tail were dropped.
func (w *cappedWriter) Omitted() int {
	if over := len(w.tail) - w.limit; over > 0 {
		return w.discarded + over
	}
	return w.discarded
}

// String joins head and tail, marking the gap when bytes were dropped.
func (w *cappedWriter) String() string {
	omitted := w.Omitted()
	tail := w.tail
	if len(tail) > w.limit {
		tail = tail[len(tail)-w.limit:]
	}
	if omitted == 0 {
		return string(w.head) + string(tail)
	}
	return appendLine(string(w.head), fmt.Sprintf("... %d bytes of output omitted ...", omitted)) + string(tail)
}

var _ io.Writer = (*cappedWriter)(nil)
