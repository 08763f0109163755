package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/topi314/shtrix/internal/tsync"
	"github.com/topi314/shtrix/internal/xerrors"
	"github.com/topi314/shtrix/server/codes"
)

type renderFunc func(w io.Writer, c codes.Code) error

// renderPNGs renders every code with render using up to workers goroutines.
// The result is indexed like generated, entries that failed to render are nil.
// Failures are logged one by one and returned joined.
func renderPNGs(ctx context.Context, generated []codes.Code, workers int, render renderFunc) ([][]byte, error) {
	images := make([][]byte, len(generated))

	eg, egCtx := tsync.ErrorGroupWithContext(ctx)
	eg.SetLimit(workers)
	for i, c := range generated {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return fmt.Errorf("%s: %w", c, err)
			}

			buf := &bytes.Buffer{}
			if err := render(buf, c); err != nil {
				return fmt.Errorf("%s: %w", c, err)
			}
			images[i] = buf.Bytes()
			return nil
		})
	}

	err := eg.Wait()
	for _, e := range xerrors.Unwrap(err) {
		slog.ErrorContext(ctx, "Failed to render code", slog.Any("err", e))
	}
	return images, err
}
