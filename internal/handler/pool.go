package handler

import (
	"bytes"
	"sync"
)

const (
	encodeBufferSize = 512
	// Buffers that grew past this while encoding a snapshot or long run
	// list are dropped rather than pinned in the pool.
	maxPooledBufferSize = 64 << 10
)

// encodeBuffers recycles response encoding buffers
var encodeBuffers = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, encodeBufferSize)) },
}

func getBuffer() *bytes.Buffer {
	return encodeBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	encodeBuffers.Put(buf)
}
