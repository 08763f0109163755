package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/topi314/shtrix/server/batch"
	"github.com/topi314/shtrix/server/export"
)

func (h *handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buf := &bytes.Buffer{}
	filename, err := h.Batches.Export(buf)
	if errors.Is(err, batch.ErrNoBatch) {
		h.renderNotFound(w, r, noBatchMessage)
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to export codes", slog.Any("err", err))
		http.Error(w, "Failed to export codes", http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("Content-Disposition", attachment(filename))
	header.Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err = buf.WriteTo(w); err != nil {
		slog.ErrorContext(ctx, "Failed to write export", slog.Any("err", err))
	}
}

func (h *handler) Print(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, ok := h.Batches.Current()
	if !ok {
		h.renderNotFound(w, r, noBatchMessage)
		return
	}

	buf := &bytes.Buffer{}
	if err := export.Print(ctx, buf, h.Cfg.Print, b, h.Renderer); err != nil {
		slog.ErrorContext(ctx, "Failed to render print document", slog.Any("err", err))
		http.Error(w, "Failed to render print document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(ctx, "Failed to write print document", slog.Any("err", err))
	}
}

func (h *handler) Cards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, ok := h.Batches.Current()
	if !ok {
		h.renderNotFound(w, r, noBatchMessage)
		return
	}

	buf := &bytes.Buffer{}
	if err := export.Archive(ctx, buf, b, h.Renderer); err != nil {
		slog.ErrorContext(ctx, "Failed to create card archive", slog.Any("err", err))
		http.Error(w, "Failed to create card archive", http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", "application/zip")
	header.Set("Content-Disposition", attachment(b.ArchiveFilename()))
	header.Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(ctx, "Failed to write card archive", slog.Any("err", err))
	}
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
