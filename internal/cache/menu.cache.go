package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rousage/coffeeshop/internal/drink"
	"github.com/valkey-io/valkey-glide/go/v2/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	menuKey    = "drinks:menu"
	menuGenKey = "drinks:menu:gen"
)

var defaultMenuTTL = 10 * time.Minute

func menuGenerationKey(gen int64) string {
	return menuKey + ":" + strconv.FormatInt(gen, 10)
}

// menuGeneration returns the current menu generation, 0 if none was ever set.
func (c *Cache) menuGeneration(ctx context.Context) (int64, error) {
	res, err := c.client.Get(ctx, menuGenKey)
	if err != nil {
		return 0, err
	}
	if res.IsNil() {
		return 0, nil
	}

	return strconv.ParseInt(res.Value(), 10, 64)
}

// GetMenu returns the menu cached for the current generation, or ok=false on
// a miss. The generation is returned on a miss so the caller can store the
// menu it loads with SetMenu. A menu stored under an older generation is
// never read again.
func (c *Cache) GetMenu(ctx context.Context) (menu []drink.Short, gen int64, ok bool, err error) {
	ctx, span := tracer.Start(ctx, "cache.GetMenu")
	defer span.End()

	gen, err = c.menuGeneration(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to get menu generation")
		span.RecordError(err)
		return nil, 0, false, err
	}
	span.SetAttributes(attribute.Int64("generation", gen))

	res, err := c.client.Get(ctx, menuGenerationKey(gen))
	if err != nil {
		span.SetStatus(codes.Error, "failed to get menu")
		span.RecordError(err)
		return nil, gen, false, err
	}
	if res.IsNil() {
		span.SetAttributes(attribute.Bool("hit", false))
		return nil, gen, false, nil
	}
	span.SetAttributes(attribute.Bool("hit", true))

	if err := json.Unmarshal([]byte(res.Value()), &menu); err != nil {
		return nil, gen, false, err
	}

	return menu, gen, true, nil
}

// SetMenu stores the menu for generation gen with the configured TTL.
func (c *Cache) SetMenu(ctx context.Context, gen int64, menu []drink.Short) error {
	ctx, span := tracer.Start(ctx, "cache.SetMenu")
	defer span.End()
	span.SetAttributes(attribute.Int64("generation", gen))

	data, err := json.Marshal(menu)
	if err != nil {
		return err
	}

	opts := options.NewSetOptions().SetExpiry(options.NewExpiryIn(c.menuTTL))
	if _, err := c.client.SetWithOptions(ctx, menuGenerationKey(gen), string(data), *opts); err != nil {
		span.SetStatus(codes.Error, "failed to set menu")
		span.RecordError(err)
		return err
	}

	return nil
}

// InvalidateMenu moves the menu to a new generation after any write to
// drinks. Loads that started before the write store under the old one.
func (c *Cache) InvalidateMenu(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "cache.InvalidateMenu")
	defer span.End()

	gen, err := c.client.Incr(ctx, menuGenKey)
	if err != nil {
		span.SetStatus(codes.Error, "failed to invalidate menu")
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.Int64("generation", gen))

	return nil
}
