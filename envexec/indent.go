package envexec

import (
	"bytes"
	"io"
	"sync"
)

const indent = "  "

// indentWriter prefixes every line written to w with two spaces.
// Writers created with the same mutex can share the underlying writer.
type indentWriter struct {
	w           io.Writer
	mu          *sync.Mutex
	midOfLine   bool
	indentBytes []byte
}

func newIndentWriter(w io.Writer, mu *sync.Mutex) *indentWriter {
	return &indentWriter{w: w, mu: mu, indentBytes: []byte(indent)}
}

func (w *indentWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var buf bytes.Buffer
	buf.Grow(len(p) + len(indent))
	for rest := p; len(rest) > 0; {
		if !w.midOfLine {
			buf.Write(w.indentBytes)
			w.midOfLine = true
		}
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			buf.Write(rest)
			break
		}
		buf.Write(rest[:i+1])
		rest = rest[i+1:]
		w.midOfLine = false
	}
	if _, err := w.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
