package logging

import (
	"io"

	"go.uber.org/multierr"
)

// teeWriter writes every log line to all of its writers, and keeps going when
// one of them fails.
type teeWriter struct {
	writers []io.Writer
}

func newTeeWriter(writers ...io.Writer) *teeWriter {
	return &teeWriter{writers: writers}
}

func (t *teeWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range t.writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
		}
	}
	if err != nil && len(multierr.Errors(err)) == len(t.writers) {
		return 0, err
	}
	return len(p), err
}
