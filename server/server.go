package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rahulkamble366/iso/config"
	"github.com/rahulkamble366/iso/pkg/auth"
	"github.com/rahulkamble366/iso/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config
	http.Handler

	api *api.Handler

	cron *cron.Cron
}

func New(cfg *config.Config) (*Server, error) {
	h, err := api.New(cfg)

	if err != nil {
		return nil, err
	}

	mux := chi.NewRouter()

	s := &Server{
		Config:  cfg,
		Handler: mux,

		api: h,

		cron: cron.New(),
	}

	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.Route("/v1", func(r chi.Router) {
		r.Use(s.handleAuth)

		s.api.Attach(r)
	})

	if cfg.Retention > 0 {
		if _, err := s.cron.AddFunc("@every 10m", s.sweep); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ListenAndServe serves until ctx is canceled and then drains open requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: otelhttp.NewHandler(s.Handler, "iso"),

		ReadHeaderTimeout: 10 * time.Second,
	}

	s.cron.Start()
	defer s.cron.Stop()

	errc := make(chan error, 1)

	go func() {
		slog.Info("server listening", "address", s.Address)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err

	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.Authorizers) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		var result error

		for _, a := range s.Authorizers {
			ctx, err := a.Authenticate(r.Context(), r)

			if err == nil {
				slog.Debug("request authorized", "user", auth.User(ctx))

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			result = errors.Join(result, err)
		}

		slog.Warn("request unauthorized", "path", r.URL.Path, "error", result)

		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	})
}

func (s *Server) sweep() {
	count, err := Sweep(s.WorkDir, s.Retention, time.Now())

	if err != nil {
		slog.Warn("sweeping working directory failed", "dir", s.WorkDir, "error", err)
	}

	if count > 0 {
		slog.Info("working directory swept", "dir", s.WorkDir, "removed", count)
	}
}
