package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/vizopts/pkg/usecase"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
)

type Server struct {
	router  *chi.Mux
	uc      *usecase.UseCases
	metrics *usecase.Metrics
	maxBody int64
}

type Options func(*Server)

// WithMetrics exposes the registry of m at /metrics
func WithMetrics(m *usecase.Metrics) Options {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithMaxBodySize limits the size of request bodies
func WithMaxBodySize(n int64) Options {
	return func(s *Server) {
		s.maxBody = n
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:  r,
		uc:      uc,
		maxBody: 1 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/plugins", func(r chi.Router) {
			r.Get("/", s.listPlugins)
			r.Get("/{id}", s.getPlugin)
			r.Post("/{id}/pane", s.optionsPane)
			r.Post("/{id}/effective", s.pluginEffective)
		})

		r.Route("/panels", func(r chi.Router) {
			r.Get("/", s.listPanels)
			r.Post("/", s.createPanel)
			r.Get("/{id}", s.getPanel)
			r.Put("/{id}", s.updatePanel)
			r.Delete("/{id}", s.deletePanel)
			r.Post("/{id}/validate", s.validatePanel)
			r.Post("/{id}/effective", s.panelEffective)
		})
	})

	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
