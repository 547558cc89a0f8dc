package bufpool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_Empty(t *testing.T) {
	buf := Get()
	buf.WriteString("%PDF-1.3")
	Put(buf)

	again := Get()
	assert.Zero(t, again.Len())
	Put(again)
}

func TestPut_DropsNilAndOversized(t *testing.T) {
	assert.NotPanics(t, func() { Put(nil) })

	big := bytes.NewBuffer(make([]byte, 0, MaxBufferSize+1))
	assert.NotPanics(t, func() { Put(big) })
}

func TestBytes_Detached(t *testing.T) {
	buf := Get()
	buf.WriteString("page one")
	out := Bytes(buf)
	Put(buf)

	reused := Get()
	reused.WriteString("PAGE TWO")
	assert.Equal(t, "page one", string(out))
	Put(reused)
}

func TestConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			buf := Get()
			defer Put(buf)
			for j := 0; j < 100; j++ {
				buf.WriteByte(byte(n))
			}
			assert.Equal(t, 100, buf.Len())
		}(i)
	}
	wg.Wait()
}
