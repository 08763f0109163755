package xio

import (
	"io"
)

// NewWriteCloser wraps w so it satisfies io.WriteCloser. Close is forwarded only
// when w itself is an io.Closer, so buffers and http.ResponseWriters stay usable.
func NewWriteCloser(w io.Writer) io.WriteCloser {
	return &writeCloser{
		Writer: w,
	}
}

type writeCloser struct {
	io.Writer
}

func (wc *writeCloser) Close() error {
	if closer, ok := wc.Writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
