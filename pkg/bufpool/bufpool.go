// Package bufpool pools the byte buffers PDF documents are serialized into.
// Concurrent builds each need a buffer sized to a full document; reusing
// them keeps a busy process from reallocating megabytes per report.
package bufpool

import (
	"bytes"
	"sync"
)

// MaxBufferSize is the largest buffer kept in the pool. Reports with many
// embedded charts grow past this and are left to the GC.
const MaxBufferSize = 8 << 20

// DefaultSize is the initial capacity handed out by Get: roughly a text-only
// report with a couple of charts.
const DefaultSize = 256 << 10

var pool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, DefaultSize))
	},
}

// Get returns an empty buffer from the pool. Call Put when done.
func Get() *bytes.Buffer {
	buf := pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// Put returns buf to the pool. Nil and oversized buffers are dropped.
func Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > MaxBufferSize {
		return
	}
	buf.Reset()
	pool.Put(buf)
}

// Bytes copies the contents of buf so it can be returned to the pool.
func Bytes(buf *bytes.Buffer) []byte {
	return bytes.Clone(buf.Bytes())
}
