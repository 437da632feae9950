package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rallykit/rallybot/pkg/usecase"
	"github.com/rallykit/rallybot/pkg/utils/logging"
	"github.com/rallykit/rallybot/pkg/utils/safe"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	signingSecret string
}

type Options func(*Server)

// WithSigningSecret enables Slack signature verification on the
// webhook routes. Leave empty only in local testing.
func WithSigningSecret(secret string) Options {
	return func(s *Server) {
		s.signingSecret = secret
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	// Slack webhook endpoints - no auth, signature verification only
	r.Route("/hooks/slack", func(r chi.Router) {
		if s.signingSecret != "" {
			r.Use(SlackSignatureMiddleware(s.signingSecret))
		}

		r.Post("/event", s.handleEvent)
		r.Post("/interaction", s.handleInteraction)
		r.Post("/command", s.handleCommand)
	})

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
			logging.Default().Info("access",
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
