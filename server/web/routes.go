package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/topi314/shtrix/internal/middlewares"
	"github.com/topi314/shtrix/server"
)

const (
	staticMaxAge = time.Hour
	// images only depend on the code and the card config
	imageMaxAge = 24 * time.Hour
)

type handler struct {
	*server.Server
}

func Routes(srv *server.Server) http.Handler {
	h := &handler{
		Server: srv,
	}

	fileServer := http.FileServer(h.StaticFS)
	var fs http.Handler
	if srv.Cfg.Dev {
		fs = fileServer
	} else {
		fs = middlewares.Cache(staticMaxAge)(fileServer)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)

	mux.Handle("POST /generate", middlewares.RateLimit(srv.Limiter, http.HandlerFunc(h.Generate)))

	mux.HandleFunc("GET /export", h.Export)
	mux.HandleFunc("GET /print", h.Print)
	mux.Handle("GET /cards.zip", middlewares.RateLimit(srv.Limiter, http.HandlerFunc(h.Cards)))

	cacheImages := middlewares.Cache(imageMaxAge)
	mux.Handle("GET /codes/{code}/barcode.png", cacheImages(http.HandlerFunc(h.Barcode)))
	mux.Handle("GET /codes/{code}/card.png", cacheImages(http.HandlerFunc(h.Card)))
	mux.Handle("GET "+server.LogoURL, cacheImages(http.HandlerFunc(h.Logo)))

	mux.Handle("GET  /static/", fs)
	mux.Handle("HEAD /static/", fs)

	mux.HandleFunc("/", h.NotFound)

	return middlewares.Logger(mux)
}

func (h *handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderNotFound(w, r, "")
}

func (h *handler) renderNotFound(w http.ResponseWriter, r *http.Request, message string) {
	ctx := r.Context()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.Templates().ExecuteTemplate(w, "not_found.gohtml", message); err != nil {
		slog.ErrorContext(ctx, "Failed to render not found template", slog.String("err", err.Error()))
		return
	}
}
