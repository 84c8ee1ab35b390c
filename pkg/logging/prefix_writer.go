package logging

import (
	"bytes"
	"io"
	"sync"
)

// PrefixWriter marks each complete line written through it with a prefix.
// Partial lines are held back until their newline arrives or Flush is called.
type PrefixWriter struct {
	mu      sync.Mutex
	prefix  []byte
	out     io.Writer
	pending bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		out:    w,
	}
}

// Write implements io.Writer.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	pw.pending.Write(p)
	for {
		data := pw.pending.Bytes()
		nl := bytes.IndexByte(data, '\n')
		if nl < 0 {
			break
		}
		if err := pw.emit(data[:nl+1]); err != nil {
			return 0, err
		}
		pw.pending.Next(nl + 1)
	}
	return len(p), nil
}

// Flush writes out any buffered partial line.
func (pw *PrefixWriter) Flush() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.pending.Len() == 0 {
		return nil
	}
	err := pw.emit(pw.pending.Bytes())
	pw.pending.Reset()
	return err
}

func (pw *PrefixWriter) emit(line []byte) error {
	if _, err := pw.out.Write(pw.prefix); err != nil {
		return err
	}
	_, err := pw.out.Write(line)
	return err
}
