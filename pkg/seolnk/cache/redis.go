package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const aliasTTL = 10 * time.Minute

// CachedAlias is the resolve-path cache entry for a custom alias.
// Only aliases with no expiry are cached; expiring records always go
// to the database so the deadline check sees fresh state.
type CachedAlias struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// Cache is a Redis-backed lookaside cache for alias resolution.
type Cache struct {
	rdb *redis.Client
}

// Connect opens a Redis connection and verifies it with a ping.
func Connect(addr, password string) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{rdb: rdb}, nil
}

// GetAlias returns the cached entry for an alias, or redis.Nil.
func (c *Cache) GetAlias(ctx context.Context, alias string) (*CachedAlias, error) {
	raw, err := c.rdb.Get(ctx, "alias:"+alias).Bytes()
	if err != nil {
		return nil, err
	}
	var entry CachedAlias
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SetAlias stores a resolve-path entry for an alias.
func (c *Cache) SetAlias(ctx context.Context, alias string, entry CachedAlias) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, "alias:"+alias, raw, aliasTTL).Err()
}

// DeleteAlias drops the cached entry for an alias. Called on every
// alias mutation so stale targets never outlive an edit.
func (c *Cache) DeleteAlias(ctx context.Context, alias string) error {
	return c.rdb.Del(ctx, "alias:"+alias).Err()
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
