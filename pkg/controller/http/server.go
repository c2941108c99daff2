package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hatchpad/slackbridge/pkg/usecase"
	"github.com/hatchpad/slackbridge/pkg/utils/logging"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	signingSecret string
}

type Options func(*Server)

// WithSigningSecret enables signature verification on the events route.
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

	// OAuth relay endpoints
	r.Get("/authorize", authorizeHandler(uc.OAuth))
	r.Get("/post_authorize", postAuthorizeHandler(uc.OAuth))
	r.Get("/verify", verifyHandler(uc.OAuth))

	// Directory proxy endpoints
	r.Post("/get_users_page", usersPageHandler(uc.Directory))
	r.Post("/get_apps_per_user", appsPerUserHandler(uc.Directory))

	// Events webhook - no bearer auth, uses signature verification
	r.With(SignatureMiddleware(s.signingSecret)).Post("/events", eventsHandler(uc.Event))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger binds a request-scoped logger carrying the request ID into
// the context and logs one access line per request.
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		ctx := r.Context()
		logger := logging.From(ctx).With("request_id", middleware.GetReqID(ctx))
		ctx = logging.With(ctx, logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

// respondJSON writes a 200 JSON response.
func respondJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Default().Error("failed to write response", "error", err)
	}
}
