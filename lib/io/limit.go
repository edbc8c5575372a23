package iolib

import (
	"io"

	"github.com/pkg/errors"
)

// ErrLimitReached is returned once a [LimitedReader] has handed out all bytes it may.
// It tells a cut stream apart from one that really ended.
var ErrLimitReached = errors.New("read limit reached")

// LimitReader returns a reader that reads at most n bytes from r.
func LimitReader(r io.Reader, n uint) io.Reader { return &LimitedReader{R: r, N: n} }

// LimitedReader reads from R until N bytes were read, then fails with [ErrLimitReached].
// An io.EOF from R is passed through unchanged.
type LimitedReader struct {
	R io.Reader
	N uint
}

func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.N == 0 {
		return 0, ErrLimitReached
	}

	if uint(len(p)) > l.N {
		p = p[:l.N]
	}

	n, err := l.R.Read(p)
	l.N -= uint(n)
	return n, err
}
