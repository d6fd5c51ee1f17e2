// Package rediscache implements the announcement cache on redis.
package rediscache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"confcentral/internal/domain"
)

type announcementCache struct {
	client *redis.Client
}

// NewAnnouncementCache returns an AnnouncementCache backed by the given
// redis client. Values never expire; the aggregate engine owns their
// lifecycle explicitly.
func NewAnnouncementCache(client *redis.Client) domain.AnnouncementCache {
	return &announcementCache{client: client}
}

func (c *announcementCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

func (c *announcementCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (c *announcementCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}
