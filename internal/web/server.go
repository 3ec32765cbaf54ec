// Package web exposes the lead import/export pipeline over HTTP.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Karfearsw/dealexpressio-sub001/internal/config"
	"github.com/Karfearsw/dealexpressio-sub001/internal/core"
	"github.com/Karfearsw/dealexpressio-sub001/internal/logging"
)

// Pipeline is the slice of core.Pipeline the handlers need.
type Pipeline interface {
	ImportBatch(ctx context.Context, payload []byte, format core.Format, userID string) (*core.ImportReport, error)
	ExportBatch(ctx context.Context, format core.Format, userID string) (*core.ExportPayload, error)
}

// Pinger reports backend connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires the HTTP routes to the pipeline.
type Server struct {
	cfg      *config.Config
	pipeline Pipeline
	health   Pinger
	router   chi.Router
}

// NewServer builds the router with the standard middleware stack.
func NewServer(cfg *config.Config, pipeline Pipeline, health Pinger) *Server {
	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		health:   health,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(cfg.Import.Timeout))
	r.Use(securityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if cfg.Rate.Enabled {
		r.Use(rateLimit(cfg.Rate))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/leads", func(r chi.Router) {
		r.Post("/import", s.handleImport)
		r.Get("/export", s.handleExport)
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logging.FromContext(r.Context()).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"remote", r.RemoteAddr,
		)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// rateLimit applies a per-client token bucket keyed by remote IP.
func rateLimit(cfg config.Rate) func(http.Handler) http.Handler {
	limiter := newClientLimiter(cfg.RequestsPerMinute, cfg.Burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(r.RemoteAddr) {
				writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type clientLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   float64
}

type bucket struct {
	tokens float64
	last   time.Time
}

func newClientLimiter(perMinute, burst int) *clientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		buckets: make(map[string]*bucket),
		rate:    float64(perMinute) / 60.0,
		burst:   float64(burst),
	}
}

func (l *clientLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok {
		// Opportunistic sweep keeps the map from growing without bound.
		if len(l.buckets) > 10000 {
			for k, v := range l.buckets {
				if now.Sub(v.last) > 10*time.Minute {
					delete(l.buckets, k)
				}
			}
		}
		b = &bucket{tokens: l.burst, last: now}
		l.buckets[key] = b
	}

	b.tokens += now.Sub(b.last).Seconds() * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	body := map[string]string{"error": msg}
	if len(details) > 0 && details[0] != "" {
		body["details"] = details[0]
	}
	writeJSON(w, status, body)
}
