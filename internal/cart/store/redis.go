package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "extendbee/pkg/domain"
	"extendbee/pkg/platform/sentinel"

	"extendbee/internal/cart/models"
	platformredis "extendbee/internal/platform/redis"
)

// RedisStore persists carts in Redis. Each (cart, tenant) pair is one hash
// keyed by line identity, and a per-cart set tracks which tenant partitions
// exist so a full clear can find them. Every write refreshes the TTL.
type RedisStore struct {
	client *platformredis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed cart store.
func NewRedis(client *platformredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func cartKey(cartID id.CartID, tenantSlug id.Slug) string {
	return fmt.Sprintf("cart:%s:%s", cartID, tenantSlug)
}

func tenantsKey(cartID id.CartID) string {
	return fmt.Sprintf("cart:%s:tenants", cartID)
}

// SaveItem inserts or replaces the line in its tenant partition.
func (s *RedisStore) SaveItem(ctx context.Context, cartID id.CartID, item models.LineItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode cart item: %w", err)
	}

	key := cartKey(cartID, item.TenantSlug)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, item.Key(), payload)
	pipe.SAdd(ctx, tenantsKey(cartID), item.TenantSlug.String())
	pipe.Expire(ctx, key, s.ttl)
	pipe.Expire(ctx, tenantsKey(cartID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save cart item: %w", err)
	}
	return nil
}

// FindItem returns one line from the tenant partition.
func (s *RedisStore) FindItem(ctx context.Context, cartID id.CartID, tenantSlug id.Slug, key string) (models.LineItem, error) {
	payload, err := s.client.HGet(ctx, cartKey(cartID, tenantSlug), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.LineItem{}, sentinel.ErrNotFound
		}
		return models.LineItem{}, fmt.Errorf("find cart item: %w", err)
	}
	var item models.LineItem
	if err := json.Unmarshal(payload, &item); err != nil {
		return models.LineItem{}, fmt.Errorf("decode cart item: %w", err)
	}
	return item, nil
}

// ListItems returns every line in the tenant partition.
func (s *RedisStore) ListItems(ctx context.Context, cartID id.CartID, tenantSlug id.Slug) ([]models.LineItem, error) {
	entries, err := s.client.HGetAll(ctx, cartKey(cartID, tenantSlug)).Result()
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	items := make([]models.LineItem, 0, len(entries))
	for _, payload := range entries {
		var item models.LineItem
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("decode cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// RemoveItem deletes one line from the tenant partition.
func (s *RedisStore) RemoveItem(ctx context.Context, cartID id.CartID, tenantSlug id.Slug, key string) error {
	removed, err := s.client.HDel(ctx, cartKey(cartID, tenantSlug), key).Result()
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if removed == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// ClearTenant drops the tenant's partition only.
func (s *RedisStore) ClearTenant(ctx context.Context, cartID id.CartID, tenantSlug id.Slug) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, cartKey(cartID, tenantSlug))
	pipe.SRem(ctx, tenantsKey(cartID), tenantSlug.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("clear tenant cart: %w", err)
	}
	return nil
}

// ClearAll drops every tenant partition in the cart.
func (s *RedisStore) ClearAll(ctx context.Context, cartID id.CartID) error {
	slugs, err := s.client.SMembers(ctx, tenantsKey(cartID)).Result()
	if err != nil {
		return fmt.Errorf("list cart tenants: %w", err)
	}
	keys := make([]string, 0, len(slugs)+1)
	for _, slug := range slugs {
		keys = append(keys, cartKey(cartID, id.Slug(slug)))
	}
	keys = append(keys, tenantsKey(cartID))
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
