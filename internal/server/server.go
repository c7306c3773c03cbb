// Package server is the HTTP surface of the book: rendered pages, raw
// article text, a small JSON API and the overlay websocket.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/beyond-scaling/internal/book"
	"github.com/ziadkadry99/beyond-scaling/internal/content"
	"github.com/ziadkadry99/beyond-scaling/internal/logging"
	"github.com/ziadkadry99/beyond-scaling/internal/overlay"
	"github.com/ziadkadry99/beyond-scaling/internal/render"
	"github.com/ziadkadry99/beyond-scaling/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port      int
	SiteTitle string
	AllowAll  bool          // allow all CORS and websocket origins (dev mode)
	Timeout   time.Duration // per-request timeout for pages and API, default 60s
}

// Server serves the book.
type Server struct {
	cfg        Config
	book       *book.Book
	source     content.Source
	renderer   *render.Renderer
	pages      *site.Pages
	targets    map[string]string
	log        logrus.FieldLogger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server reading articles from source.
func New(cfg Config, b *book.Book, source content.Source, renderer *render.Renderer, logger logrus.FieldLogger) *Server {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	s := &Server{
		cfg:      cfg,
		book:     b,
		source:   source,
		renderer: renderer,
		pages:    site.NewPages(cfg.SiteTitle, b),
		targets:  site.LinkTargets(b, links),
		log:      logging.OrDiscard(logger),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// The overlay socket is long-lived and stays out of the timeout group.
	var checkOrigin func(*http.Request) bool
	if s.cfg.AllowAll {
		checkOrigin = func(*http.Request) bool { return true }
	}
	r.Handle("/ws/overlay", overlay.NewHandler(s.renderer, s.source, s.log, checkOrigin))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.Timeout))

		r.Get("/", s.handleHome)
		r.Get("/book", s.handleBook)
		r.Get("/articles/{articleID}", s.handleArticle)
		r.Get("/sections/{sectionID}", s.handleSection)
		r.Get("/{articleID}.md", s.handleRaw)
		r.Get("/viz/{typeKey}", s.handleViz)
		r.Get("/assets/{name}", handleAsset)

		r.Route("/api", func(r chi.Router) {
			r.Get("/visualizations", s.handleListVisualizations)
			r.Get("/articles/{articleID}/segments", s.handleSegments)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeErrorPage(w, http.StatusNotFound, "Page Not Found", "The page you are looking for does not exist.")
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.WithField("addr", addr).Info("Server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// requestLogger logs one line per request with the chi request id.
func requestLogger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.WithFields(logrus.Fields{
					"request_id": middleware.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     ww.Status(),
					"duration":   time.Since(start),
				}).Info("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
