// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"io"
	"sync/atomic"
)

// inputTracker counts the bytes read from the prompt input and remembers
// when the input ran out. Accessible huh fields answer with their zero value
// at end of input, so the tracker is what tells a typed answer apart from a
// closed stdin.
//
// Reads are served one byte at a time. Every accessible field scans the input
// with a fresh bufio.Scanner, and a larger read would let one field swallow
// the lines meant for the next.
type inputTracker struct {
	r    io.Reader
	read atomic.Int64
	eof  atomic.Bool
}

func newInputTracker(r io.Reader) *inputTracker {
	return &inputTracker{r: r}
}

// Read implements io.Reader.
func (t *inputTracker) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	n, err := t.r.Read(p)
	t.read.Add(int64(n))
	if errors.Is(err, io.EOF) {
		t.eof.Store(true)
	}
	return n, err
}

// mark returns the read offset to pass to exhaustedSince.
func (t *inputTracker) mark() int64 { return t.read.Load() }

// exhaustedSince reports whether the input ended without a single byte
// being read after mark.
func (t *inputTracker) exhaustedSince(mark int64) bool {
	return t.eof.Load() && t.read.Load() == mark
}
