// Package terminal is the interactive check-in surface: the form, error notifications
// and the summary that waits for acknowledgement.
package terminal

import (
	"bufio"
	"context"
	"io"
)

// LineReader delivers input lines while letting callers give up on cancellation.
// A single goroutine owns the underlying reader.
type LineReader struct {
	lines chan string
	err   error
}

// NewLineReader starts reading lines from r
func NewLineReader(r io.Reader) *LineReader {
	l := &LineReader{lines: make(chan string)}
	go l.read(r)
	return l
}

func (l *LineReader) read(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l.lines <- scanner.Text()
	}
	l.err = scanner.Err()
	if l.err == nil {
		l.err = io.EOF
	}
	close(l.lines)
}

// Next returns the next line without its line ending.
// It returns io.EOF once the input is exhausted and ctx.Err() when ctx is done first.
func (l *LineReader) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-l.lines:
		if !ok {
			return "", l.err
		}
		return line, nil
	}
}
