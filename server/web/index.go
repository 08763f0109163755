package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/topi314/shtrix/internal/xquery"
	"github.com/topi314/shtrix/server"
	"github.com/topi314/shtrix/server/batch"
	"github.com/topi314/shtrix/server/codes"
)

const (
	defaultQuantity = 10

	formatErrorMessage = "Invalid code format! Use format like: A00000, B12345, Z99999"
	noBatchMessage     = "No codes to download! Generate codes first."
)

var rangeErrorMessage = fmt.Sprintf("Quantity must be between %d and %d", codes.MinQuantity, codes.MaxQuantity)

type IndexVars struct {
	StartCode   string
	Quantity    int
	MaxQuantity int
	LogoURL     string
	Error       string
	Warning     string
	Batch       *batch.Batch
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	vars := IndexVars{
		StartCode: string(codes.First),
		Quantity:  defaultQuantity,
	}
	if b, ok := h.Batches.Current(); ok {
		vars.StartCode = b.First().String()
		vars.Quantity = b.Len()
	}

	h.renderIndex(w, r, http.StatusOK, vars)
}

func (h *handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(ctx, "Failed to parse form", slog.Any("err", err))
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	start := codes.Normalize(r.PostForm.Get("start"))
	quantity := xquery.ParseIntMin(r.PostForm, "quantity", codes.MinQuantity)

	b, err := h.Batches.Generate(start, quantity)
	if err != nil {
		slog.InfoContext(ctx, "Rejected generate request", slog.String("start", start), slog.Int("quantity", quantity), slog.Any("err", err))
		h.renderIndex(w, r, http.StatusBadRequest, IndexVars{
			StartCode: start,
			Quantity:  quantity,
			Error:     errorMessage(err),
		})
		return
	}

	slog.InfoContext(ctx, "Generated codes", slog.String("first", b.First().String()), slog.String("last", b.Last().String()), slog.Int("count", b.Len()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) renderIndex(w http.ResponseWriter, r *http.Request, status int, vars IndexVars) {
	ctx := r.Context()

	vars.MaxQuantity = codes.MaxQuantity
	vars.LogoURL = server.LogoURL
	if b, ok := h.Batches.Current(); ok {
		vars.Batch = b
		vars.Warning = saturationWarning(b)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.Templates().ExecuteTemplate(w, "index.gohtml", vars); err != nil {
		slog.ErrorContext(ctx, "Failed to render index template", slog.String("err", err.Error()))
	}
}

func errorMessage(err error) string {
	var (
		formatErr *codes.FormatError
		rangeErr  *codes.RangeError
	)
	switch {
	case errors.As(err, &formatErr):
		return formatErrorMessage
	case errors.As(err, &rangeErr):
		return rangeErrorMessage
	default:
		return err.Error()
	}
}

// saturationWarning reports how many trailing entries of b repeat the last code.
func saturationWarning(b *batch.Batch) string {
	remaining := codes.Remaining(b.First())
	if b.Len() <= remaining {
		return ""
	}
	return fmt.Sprintf("Only %d unique codes exist from %s to %s, the last %d entries repeat %s.", remaining, b.First(), codes.Last, b.Len()-remaining, codes.Last)
}
