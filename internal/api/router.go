package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/penalties-go/internal/api/handler"
	"github.com/mcoot/penalties-go/internal/api/middleware"
	commonmw "github.com/mcoot/penalties-go/internal/middleware"
	"github.com/mcoot/penalties-go/internal/services/auth"
	"github.com/mcoot/penalties-go/internal/services/pricing"
	"github.com/mcoot/penalties-go/internal/services/shootout"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	ShootoutController *shootout.Controller
	PricingService     *pricing.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	RegisterRoutes(r, cfg)
	return r
}

// RegisterRoutes mounts the API under /api/v1 on an existing router
func RegisterRoutes(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	refereeHandler := handler.NewRefereeHandler(cfg.AuthService)
	shootoutHandler := handler.NewShootoutHandler(cfg.ShootoutController)
	valuationHandler := handler.NewValuationHandler(cfg.PricingService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := commonmw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Referee routes (no auth required for registering/logging in)
	api.HandleFunc("/referees/register", refereeHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/referees/login", refereeHandler.Login).Methods(http.MethodPost)

	// Protected referee routes
	refereeProtected := api.PathPrefix("/referees").Subrouter()
	refereeProtected.Use(authMiddleware)
	refereeProtected.HandleFunc("/me", refereeHandler.GetMe).Methods(http.MethodGet)
	refereeProtected.HandleFunc("/logout", refereeHandler.Logout).Methods(http.MethodPost)

	// Public shootout reads
	api.HandleFunc("/shootouts/{id}", shootoutHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/shootouts/{id}/score", shootoutHandler.Score).Methods(http.MethodGet)
	api.HandleFunc("/shootouts/{id}/players/{player}/history", shootoutHandler.History).Methods(http.MethodGet)

	// Shootout mutations (referee only)
	shootouts := api.PathPrefix("/shootouts").Subrouter()
	shootouts.Use(authMiddleware)
	shootouts.HandleFunc("", shootoutHandler.Create).Methods(http.MethodPost)
	shootouts.HandleFunc("/{id}", shootoutHandler.Delete).Methods(http.MethodDelete)
	shootouts.HandleFunc("/{id}/kicks", shootoutHandler.Kick).Methods(http.MethodPost)

	// Valuations
	api.HandleFunc("/valuations/{player}", valuationHandler.Get).Methods(http.MethodGet)
	valuations := api.PathPrefix("/valuations").Subrouter()
	valuations.Use(authMiddleware)
	valuations.HandleFunc("/{player}", valuationHandler.Set).Methods(http.MethodPut)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
