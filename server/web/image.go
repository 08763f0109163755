package web

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/topi314/shtrix/server/codes"
)

func (h *handler) Barcode(w http.ResponseWriter, r *http.Request) {
	h.image(w, r, "barcode", h.Renderer.WriteBarcode)
}

func (h *handler) Card(w http.ResponseWriter, r *http.Request) {
	h.image(w, r, "card", h.Renderer.WriteCard)
}

func (h *handler) image(w http.ResponseWriter, r *http.Request, kind string, render func(w io.Writer, c codes.Code) error) {
	ctx := r.Context()

	c, err := codes.Parse(r.PathValue("code"))
	if err != nil {
		http.Error(w, formatErrorMessage, http.StatusBadRequest)
		return
	}

	buf := &bytes.Buffer{}
	if err = render(buf, c); err != nil {
		slog.ErrorContext(ctx, "Failed to render "+kind, slog.String("code", c.String()), slog.Any("err", err))
		http.Error(w, "Failed to render "+kind, http.StatusInternalServerError)
		return
	}

	writePNG(w, r, buf)
}

func (h *handler) Logo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	buf := &bytes.Buffer{}
	if err := h.Renderer.WriteLogo(buf); err != nil {
		slog.ErrorContext(ctx, "Failed to render logo", slog.Any("err", err))
		http.Error(w, "Failed to render logo", http.StatusInternalServerError)
		return
	}

	writePNG(w, r, buf)
}

func writePNG(w http.ResponseWriter, r *http.Request, buf *bytes.Buffer) {
	header := w.Header()
	header.Set("Content-Type", "image/png")
	header.Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write image to response", slog.Any("err", err))
	}
}
