package batch

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topi314/shtrix/server/codes"
)

func TestBatch(t *testing.T) {
	generated, err := codes.Generate("A00000", 10)
	require.NoError(t, err)

	b := New(generated, "/logo.png")
	assert.Equal(t, 10, b.Len())
	assert.Equal(t, codes.Code("A00000"), b.First())
	assert.Equal(t, codes.Code("A00009"), b.Last())
	assert.Equal(t, "shtrix-codes-A00000-to-A00009.txt", b.Filename())
	assert.Equal(t, "shtrix-codes-A00000-to-A00009.zip", b.ArchiveFilename())
	assert.Equal(t, "shtrix-codes-A00000-to-A00009.html", b.PrintFilename())
	assert.Equal(t, "/logo.png", b.Logo)
}

func TestText(t *testing.T) {
	generated, err := codes.Generate("A99998", 3)
	require.NoError(t, err)

	b := New(generated, "")
	assert.Equal(t, "A99998\nA99999\nB00000", b.Text())

	buf := &bytes.Buffer{}
	require.NoError(t, b.WriteText(buf))
	assert.Equal(t, b.Text(), buf.String())
}

func TestTextRoundTrip(t *testing.T) {
	generated, err := codes.Generate("Q54321", 250)
	require.NoError(t, err)
	b := New(generated, "")

	split := strings.Split(b.Text(), "\n")
	assert.Equal(t, codes.Strings(generated), split)

	parsed, err := ParseText(strings.NewReader(b.Text()))
	require.NoError(t, err)
	if diff := cmp.Diff(generated, parsed); diff != "" {
		t.Errorf("ParseText() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseText(t *testing.T) {
	t.Run("accepts CRLF and blank lines", func(t *testing.T) {
		parsed, err := ParseText(strings.NewReader("A00000\r\n\r\nA00001\r\n"))
		require.NoError(t, err)
		assert.Equal(t, []codes.Code{"A00000", "A00001"}, parsed)
	})

	t.Run("reports the bad line", func(t *testing.T) {
		_, err := ParseText(strings.NewReader("A00000\nnope\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")

		var formatErr *codes.FormatError
		assert.True(t, errors.As(err, &formatErr))
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ParseText(strings.NewReader("\n\n"))
		assert.Error(t, err)
	})
}

func TestState(t *testing.T) {
	t.Run("export without batch", func(t *testing.T) {
		s := NewState("")
		_, ok := s.Current()
		assert.False(t, ok)

		_, err := s.Export(&bytes.Buffer{})
		assert.ErrorIs(t, err, ErrNoBatch)
	})

	t.Run("generate normalizes and replaces", func(t *testing.T) {
		s := NewState("/logo.png")

		first, err := s.Generate(" a00000 ", 2)
		require.NoError(t, err)
		assert.Equal(t, []codes.Code{"A00000", "A00001"}, first.Codes)

		second, err := s.Generate("B00000", 1)
		require.NoError(t, err)

		current, ok := s.Current()
		require.True(t, ok)
		assert.Same(t, second, current)
		assert.Equal(t, []codes.Code{"A00000", "A00001"}, first.Codes)
	})

	t.Run("failed generate keeps the previous batch", func(t *testing.T) {
		s := NewState("")
		prev, err := s.Generate("C00000", 3)
		require.NoError(t, err)

		_, err = s.Generate("AA0000", 3)
		var formatErr *codes.FormatError
		require.True(t, errors.As(err, &formatErr))

		_, err = s.Generate("C00000", 10001)
		var rangeErr *codes.RangeError
		require.True(t, errors.As(err, &rangeErr))

		current, ok := s.Current()
		require.True(t, ok)
		assert.Same(t, prev, current)
	})

	t.Run("export", func(t *testing.T) {
		s := NewState("")
		_, err := s.Generate("A00000", 3)
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		filename, err := s.Export(buf)
		require.NoError(t, err)
		assert.Equal(t, "shtrix-codes-A00000-to-A00002.txt", filename)
		assert.Equal(t, "A00000\nA00001\nA00002", buf.String())
	})
}
