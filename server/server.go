// Package server exposes the resolution pipeline over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ZaguanLabs/ottolai"
	"github.com/ZaguanLabs/ottolai/provider"
)

const defaultMaxUploadBytes = 10 << 20 // 10 MiB

// Server is the translation HTTP server.
type Server struct {
	resolver       *ottolai.Resolver
	ocr            provider.OCRProvider
	logger         *slog.Logger
	httpServer     *http.Server
	maxUploadBytes int64
	glyphOnly      bool
}

// Config holds server configuration.
type Config struct {
	// Addr is the address to listen on (default: ":8080").
	Addr string
	// Resolver runs the translation cascade. Required.
	Resolver *ottolai.Resolver
	// OCR handles image extraction for /api/ocr-translate. Optional; without
	// it the endpoint only accepts pre-extracted text.
	OCR provider.OCRProvider
	// Logger is the structured logger to use.
	Logger *slog.Logger
	// MaxUploadBytes caps the request body of the OCR endpoint (default: 10 MiB).
	MaxUploadBytes int64
	// GlyphOnly marks that the phrase dictionary failed to load and the
	// resolver is running in degraded transliteration-only mode.
	GlyphOnly bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New creates a new Server with the given configuration.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 75 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 90 * time.Second
	}

	s := &Server{
		resolver:       cfg.Resolver,
		ocr:            cfg.OCR,
		logger:         cfg.Logger,
		maxUploadBytes: cfg.MaxUploadBytes,
		glyphOnly:      cfg.GlyphOnly,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withMiddleware(s.routes()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/translate", s.handleTranslate)
	mux.HandleFunc("POST /api/ocr-translate", s.handleOCRTranslate)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr, "glyph_only", s.glyphOnly)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withMiddleware wraps the mux with request logging and panic recovery.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		lw := &loggingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lw.status,
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
		)
	})
}

// loggingWriter captures the response status for request logging.
type loggingWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
