package tsync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/topi314/shtrix/internal/xerrors"
)

func TestErrorGroup(t *testing.T) {
	eg, ctx := ErrorGroupWithContext(context.Background())
	eg.SetLimit(2)

	var ran atomic.Int32
	for i := range 10 {
		eg.Go(func() error {
			ran.Add(1)
			if i%3 == 0 {
				return errors.New("failed")
			}
			return nil
		})
	}

	err := eg.Wait()
	assert.Equal(t, int32(10), ran.Load(), "a failing function must not stop the others")
	assert.Len(t, xerrors.Unwrap(err), 4)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestErrorGroupNoErrors(t *testing.T) {
	eg, _ := ErrorGroupWithContext(context.Background())
	eg.SetLimit(0)
	eg.Go(func() error { return nil })
	assert.NoError(t, eg.Wait())
}
