package terminal

import (
	"bufio"
	"context"
	"io"
	"sync"
)

type line struct {
	text string
	err  error
}

// Input reads one key per line. Reading happens on a background goroutine
// so a blocked read never holds up shutdown.
type Input struct {
	r     io.Reader
	lines chan line
	once  sync.Once
}

// NewInput creates an input source over r
func NewInput(r io.Reader) *Input {
	return &Input{
		r:     r,
		lines: make(chan line),
	}
}

// Next returns the next key, normalized. It returns io.EOF once the reader
// is exhausted and ctx.Err() if ctx ends first.
func (in *Input) Next(ctx context.Context) (string, error) {
	in.once.Do(func() { go in.read() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-in.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return normalize(l.text), nil
	}
}

func (in *Input) read() {
	defer close(in.lines)

	scanner := bufio.NewScanner(in.r)
	for scanner.Scan() {
		in.lines <- line{text: scanner.Text()}
	}
	if err := scanner.Err(); err != nil {
		in.lines <- line{err: err}
	}
}
