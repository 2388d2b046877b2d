package mcp_test

import (
	"bytes"
	"sync"
)

var outMutex sync.Mutex

type syncWriter struct {
	buf *bytes.Buffer
}

func (x *syncWriter) Write(p []byte) (int, error) {
	outMutex.Lock()
	defer outMutex.Unlock()
	return x.buf.Write(p)
}

func readOut(buf *bytes.Buffer) string {
	outMutex.Lock()
	defer outMutex.Unlock()
	return buf.String()
}
