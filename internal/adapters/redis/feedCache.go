package redisadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	feedPort "quill/internal/ports/feed"
)

const globalFeedKey = "feed:global"

// FeedCacheRedis stores rendered global-feed pages in one hash keyed by page
// number. Invalidation drops the whole hash, so a write never leaves a stale
// page behind.
type FeedCacheRedis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeedCacheRedis(client *redis.Client, ttl time.Duration) *FeedCacheRedis {
	return &FeedCacheRedis{client: client, ttl: ttl}
}

func (c *FeedCacheRedis) GetPage(ctx context.Context, number int) (*feedPort.Page, error) {
	raw, err := c.client.HGet(ctx, globalFeedKey, strconv.Itoa(number)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var page feedPort.Page
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *FeedCacheRedis) SetPage(ctx context.Context, p *feedPort.Page) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, globalFeedKey, strconv.Itoa(p.Number), raw)
	pipe.Expire(ctx, globalFeedKey, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *FeedCacheRedis) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, globalFeedKey).Err()
}
