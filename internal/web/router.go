package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	commonmw "github.com/mcoot/penalties-go/internal/middleware"
	"github.com/mcoot/penalties-go/internal/services/shootout"
	"github.com/mcoot/penalties-go/internal/web/handler"
	"github.com/mcoot/penalties-go/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger             *slog.Logger
	ShootoutController *shootout.Controller
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	RegisterRoutes(r, cfg)
	return r
}

// RegisterRoutes mounts the HTML pages on an existing router
func RegisterRoutes(r *mux.Router, cfg RouterConfig) {
	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Recovery(cfg.Logger))
	pages.Use(commonmw.Logging(cfg.Logger))

	scoreboardHandler := handler.NewScoreboardHandler(cfg.ShootoutController, cfg.Logger)

	pages.HandleFunc("/", scoreboardHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/shootouts", scoreboardHandler.Lookup).Methods(http.MethodGet)
	pages.HandleFunc("/shootouts/{id}", scoreboardHandler.View).Methods(http.MethodGet)
}
