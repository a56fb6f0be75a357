package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/penalties-go/internal/dependencies/clock"
	"github.com/mcoot/penalties-go/internal/dependencies/random"
	"github.com/mcoot/penalties-go/internal/services/auth"
	"github.com/mcoot/penalties-go/internal/services/pricing"
	"github.com/mcoot/penalties-go/internal/services/shootout"
	"github.com/mcoot/penalties-go/internal/storage"
	"github.com/mcoot/penalties-go/internal/storage/memory"
	redisstorage "github.com/mcoot/penalties-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService        *auth.Service
	PricingService     *pricing.Service
	ShootoutController *shootout.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), authCfg, logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case "", StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	authService := auth.New(store, clk, rnd, authCfg, logger)
	pricingService := pricing.New(store, clk, logger)
	shootoutController := shootout.NewController(store, pricingService, clk, rnd, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		AuthService:        authService,
		PricingService:     pricingService,
		ShootoutController: shootoutController,
	}
}

// Close releases storage resources such as Redis connections
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
