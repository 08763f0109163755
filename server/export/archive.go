package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/topi314/shtrix/server/batch"
	"github.com/topi314/shtrix/server/card"
)

const ArchiveCodesFile = "codes.txt"

// ArchiveEntryName is the zip entry of the card at index i. The index keeps entries
// unique once a batch repeats Z99999.
func ArchiveEntryName(i int, code string) string {
	return fmt.Sprintf("%05d-%s.png", i+1, code)
}

// Archive writes a zip file with one card image per code, in generation order,
// followed by the text export. Cards that fail to render are skipped.
func Archive(ctx context.Context, w io.Writer, b *batch.Batch, r *card.Renderer) error {
	images, renderErr := renderPNGs(ctx, b.Codes, r.Config().Workers, r.WriteCard)
	if err := ctx.Err(); err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	var written int
	for i, c := range b.Codes {
		if images[i] == nil {
			continue
		}

		filename := ArchiveEntryName(i, c.String())
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     filename,
			Method:   zip.Store,
			Modified: b.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to create zip entry %q: %w", filename, err)
		}
		if _, err = f.Write(images[i]); err != nil {
			return fmt.Errorf("failed to write zip entry %q: %w", filename, err)
		}
		written++
	}
	if written == 0 && len(b.Codes) > 0 {
		return fmt.Errorf("failed to render any card: %w", renderErr)
	}

	f, err := zw.Create(ArchiveCodesFile)
	if err != nil {
		return fmt.Errorf("failed to create zip entry %q: %w", ArchiveCodesFile, err)
	}
	if err = b.WriteText(f); err != nil {
		return err
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}

	slog.DebugContext(ctx, "Archive written", slog.Int("cards", written), slog.Int("codes", b.Len()))
	return nil
}
