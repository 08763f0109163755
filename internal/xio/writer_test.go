package xio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestNewWriteCloser(t *testing.T) {
	buf := &bytes.Buffer{}
	wc := NewWriteCloser(buf)
	_, err := wc.Write([]byte("A00000"))
	require.NoError(t, err)
	require.NoError(t, wc.Close())
	assert.Equal(t, "A00000", buf.String())

	rec := &closeRecorder{}
	require.NoError(t, NewWriteCloser(rec).Close())
	assert.True(t, rec.closed)
}
