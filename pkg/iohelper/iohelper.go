// Package iohelper reads caller-supplied inputs with size limits so a
// runaway payload or chart export cannot exhaust memory.
package iohelper

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Input size limits
const (
	// MaxPayloadSize bounds an analysis payload (4MB).
	MaxPayloadSize int64 = 4 << 20

	// MaxChartSize bounds one HTML or SVG chart export (32MB; interactive
	// chart exports inline their whole JS bundle).
	MaxChartSize int64 = 32 << 20
)

// ErrTooLarge is returned when an input exceeds its limit.
var ErrTooLarge = errors.New("input exceeds size limit")

// ReadLimited reads all of r, failing with ErrTooLarge instead of
// truncating when r holds more than maxSize bytes. A nil r reads as empty.
func ReadLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxSize)
	}
	return data, nil
}

// LimitReader is like io.LimitReader but reports ErrTooLarge once more than
// n bytes have been requested, so streaming decoders fail loudly.
func LimitReader(r io.Reader, n int64) io.Reader {
	return &limitedReader{r: r, left: n}
}

type limitedReader struct {
	r    io.Reader
	left int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.left < 0 {
		return 0, ErrTooLarge
	}
	if int64(len(p)) > l.left+1 {
		p = p[:l.left+1]
	}
	n, err := l.r.Read(p)
	l.left -= int64(n)
	if l.left < 0 {
		return n, ErrTooLarge
	}
	return n, err
}

// ReadFile reads the file at path, bounded by maxSize.
func ReadFile(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLimited(f, maxSize)
}
