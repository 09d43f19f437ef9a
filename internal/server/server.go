package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rousage/coffeeshop/internal/auth"
	"github.com/rousage/coffeeshop/internal/cache"
	"github.com/rousage/coffeeshop/internal/config"
	"github.com/rousage/coffeeshop/internal/database"
	"github.com/rousage/coffeeshop/internal/drink"
	"github.com/rousage/coffeeshop/internal/repository"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/rousage/coffeeshop/internal/server")

type drinkStore interface {
	ListDrinks(ctx context.Context) ([]drink.Drink, error)
	CreateDrink(ctx context.Context, arg repository.CreateDrinkParams) (drink.Drink, error)
	UpdateDrink(ctx context.Context, arg repository.UpdateDrinkParams) (drink.Drink, error)
	DeleteDrink(ctx context.Context, id int32) error
	IsDuplicateKeyError(err error) bool
	IsNotFoundError(err error) bool
}

type menuCache interface {
	GetMenu(ctx context.Context) ([]drink.Short, int64, bool, error)
	SetMenu(ctx context.Context, gen int64, menu []drink.Short) error
	InvalidateMenu(ctx context.Context) error
	Ping(ctx context.Context) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	cfg    *config.Config
	logger zerolog.Logger
	db     pinger
	drinks drinkStore
	cache  menuCache
	authMw *auth.AuthMiddleware
}

// NewLogger writes JSON at info level in production and a human-readable
// console stream at debug level otherwise.
func NewLogger(env config.Environment, out io.Writer) zerolog.Logger {
	zerolog.TimestampFieldName = "timestamp"

	if env.Production {
		return zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

// New connects to postgres and valkey and returns the configured HTTP
// server. The returned cleanup closes both connections.
func New(ctx context.Context, cfg *config.Config) (*http.Server, func(), error) {
	logger := NewLogger(cfg.Environment, os.Stdout)

	db, err := database.Connect(ctx, logger, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	cacheClient, err := cache.Connect(ctx, logger, cfg.Cache)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	authMw, err := auth.NewAuthMiddleware(cfg.Environment.Auth0, logger)
	if err != nil {
		cacheClient.Close()
		db.Close()
		return nil, nil, err
	}

	srv := &Server{
		cfg:    cfg,
		logger: logger,
		db:     db,
		drinks: repository.New(db),
		cache:  cache.New(cacheClient, cfg.Cache.MenuTTL),
		authMw: authMw,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.cfg.Server.Port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	srv.logger.Info().
		Int("port", srv.cfg.Server.Port).
		Bool("production", cfg.Environment.Production).
		Str("auth0_domain", cfg.Environment.Auth0.Domain()).
		Msg("server configured")

	cleanup := func() {
		cacheClient.Close()
		db.Close()
	}

	return server, cleanup, nil
}
