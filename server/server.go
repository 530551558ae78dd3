// Package server exposes the ficha pipeline over HTTP: generate, card,
// WhatsApp text, PDF export and history.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"ficha-generator/backend"
	"ficha-generator/export"
	"ficha-generator/storage"
)

// Server wires the backend client, the exporter and the session together.
type Server struct {
	logger   zerolog.Logger
	client   *backend.Client
	exporter *export.Exporter
	store    storage.FichaStore // nil when history is not configured
	session  *Session

	requestTimeout time.Duration
}

// New creates a Server. store may be nil.
func New(client *backend.Client, exporter *export.Exporter, store storage.FichaStore,
	requestTimeout time.Duration, logger zerolog.Logger) *Server {
	return &Server{
		logger:         logger.With().Str("component", "server").Logger(),
		client:         client,
		exporter:       exporter,
		store:          store,
		session:        NewSession(),
		requestTimeout: requestTimeout,
	}
}

// Router builds the chi router with all routes configured.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","service":"ficha-generator"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/fichas", s.handleGenerate)
		r.Route("/fichas/current", func(r chi.Router) {
			r.Get("/", s.handleCurrentCard)
			r.Get("/message", s.handleMessage)
			r.Post("/export", s.handleExport)
		})
		r.Get("/history", s.handleHistory)
	})

	return r
}

// requestLogger replaces chi's stdlib request logger with zerolog fields.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
