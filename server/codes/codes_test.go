package codes

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"A00000", true},
		{"B12345", true},
		{"Z99999", true},
		{"AA0000", false},
		{"a00000", false},
		{"A123", false},
		{"A000000", false},
		{" A00000", false},
		{"A0000a", false},
		{"", false},
		{"Ä00000", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Validate(tt.in), "Validate(%q)", tt.in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "A00001", Normalize(" a00001 "))
	assert.Equal(t, "B12345", Normalize("b12345"))
}

func TestIncrement(t *testing.T) {
	t.Run("increments the number and keeps the letter", func(t *testing.T) {
		assert.Equal(t, Code("A00001"), Increment("A00000"))
		assert.Equal(t, Code("B00201"), Increment("B00200"))
		assert.Equal(t, Code("C10000"), Increment("C09999"))
		assert.Equal(t, Code("Z99999"), Increment("Z99998"))
	})

	t.Run("rolls over to the next letter", func(t *testing.T) {
		assert.Equal(t, Code("B00000"), Increment("A99999"))
		assert.Equal(t, Code("Z00000"), Increment("Y99999"))
	})

	t.Run("saturates at the end of the range", func(t *testing.T) {
		assert.Equal(t, Last, Increment(Last))
	})

	t.Run("returns invalid input unchanged", func(t *testing.T) {
		assert.Equal(t, Code("A123"), Increment("A123"))
	})

	t.Run("every letter rolls over", func(t *testing.T) {
		for l := byte('A'); l < 'Z'; l++ {
			got := Increment(Code(string(l) + "99999"))
			assert.Equal(t, Code(string(l+1)+"00000"), got)
		}
	})
}

func TestGenerate(t *testing.T) {
	t.Run("sequential", func(t *testing.T) {
		got, err := Generate("A00000", 3)
		require.NoError(t, err)
		if diff := cmp.Diff([]Code{"A00000", "A00001", "A00002"}, got); diff != "" {
			t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("letter rollover", func(t *testing.T) {
		got, err := Generate("A99999", 2)
		require.NoError(t, err)
		if diff := cmp.Diff([]Code{"A99999", "B00000"}, got); diff != "" {
			t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("repeats the final code after saturation", func(t *testing.T) {
		got, err := Generate("Z99998", 4)
		require.NoError(t, err)
		if diff := cmp.Diff([]Code{"Z99998", "Z99999", "Z99999", "Z99999"}, got); diff != "" {
			t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("maximum quantity", func(t *testing.T) {
		got, err := Generate("A00000", MaxQuantity)
		require.NoError(t, err)
		require.Len(t, got, MaxQuantity)
		assert.Equal(t, Code("A09999"), got[len(got)-1])
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := Generate("C12345", 500)
		require.NoError(t, err)
		second, err := Generate("C12345", 500)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(first, second))
	})

	t.Run("format errors", func(t *testing.T) {
		for _, in := range []string{"AA0000", "a00000", "A123"} {
			got, err := Generate(in, 3)
			assert.Nil(t, got)

			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr), "Generate(%q) error = %v", in, err)
			assert.Equal(t, in, formatErr.Code)
		}
	})

	t.Run("range errors", func(t *testing.T) {
		for _, quantity := range []int{0, -1, MaxQuantity + 1} {
			got, err := Generate("A00000", quantity)
			assert.Nil(t, got)

			var rangeErr *RangeError
			require.True(t, errors.As(err, &rangeErr), "Generate(quantity=%d) error = %v", quantity, err)
			assert.Equal(t, quantity, rangeErr.Quantity)
		}
	})

	t.Run("format is checked before range", func(t *testing.T) {
		_, err := Generate("bad", 0)
		var formatErr *FormatError
		assert.True(t, errors.As(err, &formatErr))
	})
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 1, Remaining(Last))
	assert.Equal(t, 2, Remaining("Z99998"))
	assert.Equal(t, 100001, Remaining("Y99999"))
	assert.Equal(t, 26*100000, Remaining(First))
	assert.Equal(t, 0, Remaining("bad"))
}

func TestCodeAccessors(t *testing.T) {
	c := Code("K04200")
	assert.Equal(t, byte('K'), c.Letter())
	assert.Equal(t, 4200, c.Number())
	assert.Equal(t, []string{"A00000", "B00001"}, Strings([]Code{"A00000", "B00001"}))
}
