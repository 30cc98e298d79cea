package redis_cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"exhome-listing-service/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "exhome:listings:"

// kvClient - то, что нужно кэшу от *redis.Client
type kvClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// ListingCache - кэш страниц warehouse в Redis с TTL.
type ListingCache struct {
	client kvClient
	ttl    time.Duration
}

// NewClient подключается к Redis и проверяет соединение.
func NewClient(ctx context.Context, address, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewListingCache(client kvClient, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ListingCache{client: client, ttl: ttl}
}

type cachedPage struct {
	Items  []domain.Apartment `json:"items"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

func (c *ListingCache) Get(ctx context.Context, query domain.ApartmentQuery) (*domain.ApartmentPage, bool, error) {
	key, err := Key(query)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var cached cachedPage
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("decode cached page: %w", err)
	}
	return &domain.ApartmentPage{
		Items:  cached.Items,
		Total:  cached.Total,
		Limit:  cached.Limit,
		Offset: cached.Offset,
	}, true, nil
}

func (c *ListingCache) Set(ctx context.Context, query domain.ApartmentQuery, page *domain.ApartmentPage) error {
	key, err := Key(query)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(cachedPage{
		Items:  page.Items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Key - exhome:listings:<sha1 от нормализованного запроса>.
// Одинаковые фильтры в разном виде дают один ключ.
func Key(query domain.ApartmentQuery) (string, error) {
	query.Filters = query.Filters.Normalize()
	raw, err := json.Marshal(query)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	sum := sha1.Sum(raw)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}
