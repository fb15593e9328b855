package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/application/stock"
	"github.com/powerkey/power-app/pkg/config"
)

const itemDetailsPrefix = "power-app:item-details:"

// NewRedisClient abre el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// ItemDetailsCache guarda la consulta de artículos como JSON con TTL.
type ItemDetailsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ stock.DetailsCache = (*ItemDetailsCache)(nil)

// NewItemDetailsCache construye el cache. ttl <= 0 usa un minuto.
func NewItemDetailsCache(client *redis.Client, ttl time.Duration) *ItemDetailsCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ItemDetailsCache{client: client, ttl: ttl}
}

// Key clave de redis para un artículo.
func Key(itemCode string) string { return itemDetailsPrefix + itemCode }

func (c *ItemDetailsCache) Get(ctx context.Context, itemCode string) (*dto.ItemDetailsResponse, bool, error) {
	raw, err := c.client.Get(ctx, Key(itemCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var v dto.ItemDetailsResponse
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, fmt.Errorf("decodificar cache: %w", err)
	}
	return &v, true, nil
}

func (c *ItemDetailsCache) Set(ctx context.Context, itemCode string, v *dto.ItemDetailsResponse) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, Key(itemCode), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
