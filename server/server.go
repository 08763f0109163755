package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/topi314/shtrix/server/batch"
	"github.com/topi314/shtrix/server/card"
)

const LogoURL = "/logo.png"

var (
	//go:embed static
	static embed.FS

	//go:embed templates/*.gohtml
	templates embed.FS

	templateFuncs = template.FuncMap{
		"thousands": thousands,
	}
)

func New(cfg Config) (*Server, error) {
	var staticFS http.FileSystem
	var t func() *template.Template
	if cfg.Dev {
		root, err := os.OpenRoot("server/")
		if err != nil {
			return nil, fmt.Errorf("failed to open static directory: %w", err)
		}
		staticFS = http.FS(root.FS())
		t = func() *template.Template {
			return template.Must(template.New("templates").
				Funcs(templateFuncs).
				ParseFS(root.FS(), "templates/*.gohtml"))
		}
	} else {
		staticFS = http.FS(static)

		st := template.Must(template.New("templates").
			Funcs(templateFuncs).
			ParseFS(templates, "templates/*.gohtml"),
		)

		t = func() *template.Template {
			return st
		}
	}

	renderer, err := card.New(cfg.Card)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize card renderer: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.Server.RateLimit.Every > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.Server.RateLimit.Every.Std()), max(1, cfg.Server.RateLimit.Burst))
	}

	return &Server{
		Cfg: cfg,
		server: &http.Server{
			Addr:              cfg.Server.Addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		StaticFS:  staticFS,
		Templates: t,
		Renderer:  renderer,
		Batches:   batch.NewState(LogoURL),
		Limiter:   limiter,
	}, nil
}

type Server struct {
	Cfg       Config
	server    *http.Server
	StaticFS  http.FileSystem
	Templates func() *template.Template
	Renderer  *card.Renderer
	Batches   *batch.State
	Limiter   *rate.Limiter
}

func (s *Server) Start(handler http.Handler) {
	s.server.Handler = handler
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.Any("err", err))
		}
	}()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", slog.Any("err", err))
		return
	}
}

func thousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + thousands(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
