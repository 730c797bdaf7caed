package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"league-registration/internal/config"
	"league-registration/internal/middleware"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

const healthTimeout = 2 * time.Second

// NewRouter mounts the connect procedures and the health check behind
// request-id logging, panic recovery and CORS.
func NewRouter(
	cfg *config.Config,
	db *sql.DB,
	auth *middleware.Authenticator,
	registration *RegistrationServer,
	payment *PaymentServer,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(logger))
	r.Use(chimw.Recoverer)

	opts := []connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(auth.UnaryInterceptor()),
	}

	r.Handle(RegisterTeamProcedure, connect.NewUnaryHandler(
		RegisterTeamProcedure,
		registration.RegisterTeam,
		opts...,
	))
	r.Handle(CreatePaymentIntentProcedure, connect.NewUnaryHandler(
		CreatePaymentIntentProcedure,
		payment.CreatePaymentIntent,
		opts...,
	))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), healthTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			zerolog.Ctx(req.Context()).Error().Err(err).Msg("health check failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
