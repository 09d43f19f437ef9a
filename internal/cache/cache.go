package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rousage/coffeeshop/internal/config"
	"github.com/rs/zerolog"
	glide "github.com/valkey-io/valkey-glide/go/v2"
	cacheConfig "github.com/valkey-io/valkey-glide/go/v2/config"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/rousage/coffeeshop/internal/cache")

func Connect(ctx context.Context, logger zerolog.Logger, cfg config.Cache) (*glide.Client, error) {
	clientCfg := cacheConfig.NewClientConfiguration().WithAddress(&cacheConfig.NodeAddress{
		Host: cfg.Host,
		Port: cfg.Port,
	})

	client, err := glide.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	res, err := client.Ping(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping cache: %w", err)
	}
	logger.Debug().Msgf("cache response: %s", res)

	return client, nil
}

type Cache struct {
	client  *glide.Client
	menuTTL time.Duration
}

func New(client *glide.Client, menuTTL time.Duration) *Cache {
	if menuTTL <= 0 {
		menuTTL = defaultMenuTTL
	}

	return &Cache{client: client, menuTTL: menuTTL}
}

// Ping reports whether the cache answers.
func (c *Cache) Ping(ctx context.Context) error {
	_, err := c.client.Ping(ctx)
	return err
}
