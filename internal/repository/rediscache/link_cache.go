// Package rediscache decorates the link repository with a read-through Redis
// cache for single-link lookups, which dominate the button-driven management
// flow. Every mutation invalidates the affected entry; cache failures only
// degrade to the underlying store.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/repository"
)

const defaultTTL = 10 * time.Minute

type linkCache struct {
	inner  repository.LinkRepository
	client *redis.Client
	ttl    time.Duration
	log    *zap.SugaredLogger
}

func NewLinkCache(inner repository.LinkRepository, client *redis.Client, log *zap.SugaredLogger) repository.LinkRepository {
	return &linkCache{inner: inner, client: client, ttl: defaultTTL, log: log}
}

func linkKey(userID int64, linkID string) string {
	return fmt.Sprintf("telepath:link:%d:%s", userID, linkID)
}

func (c *linkCache) GetByID(ctx context.Context, userID int64, linkID string) (*domain.UserLink, error) {
	key := linkKey(userID, linkID)

	data, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var link domain.UserLink
		if err := json.Unmarshal([]byte(data), &link); err == nil {
			return &link, nil
		}
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warnw("link cache read failed", "key", key, "error", err)
	}

	link, err := c.inner.GetByID(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(link); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.log.Warnw("link cache write failed", "key", key, "error", err)
		}
	}
	return link, nil
}

func (c *linkCache) Save(ctx context.Context, link *domain.UserLink) error {
	return c.inner.Save(ctx, link)
}

func (c *linkCache) Update(ctx context.Context, userID int64, linkID string, update domain.LinkUpdate) (*domain.UserLink, error) {
	link, err := c.inner.Update(ctx, userID, linkID, update)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, userID, linkID)
	return link, nil
}

func (c *linkCache) Delete(ctx context.Context, userID int64, linkID string) (bool, error) {
	deleted, err := c.inner.Delete(ctx, userID, linkID)
	if err == nil && deleted {
		c.invalidate(ctx, userID, linkID)
	}
	return deleted, err
}

func (c *linkCache) IncrementClicks(ctx context.Context, userID int64, linkID string) error {
	err := c.inner.IncrementClicks(ctx, userID, linkID)
	if err == nil {
		c.invalidate(ctx, userID, linkID)
	}
	return err
}

func (c *linkCache) List(ctx context.Context, userID int64, page, pageSize int) (*domain.LinkPage, error) {
	return c.inner.List(ctx, userID, page, pageSize)
}

func (c *linkCache) Search(ctx context.Context, userID int64, query string) ([]*domain.UserLink, error) {
	return c.inner.Search(ctx, userID, query)
}

func (c *linkCache) Stats(ctx context.Context, userID int64) (*domain.LinkStats, error) {
	return c.inner.Stats(ctx, userID)
}

func (c *linkCache) invalidate(ctx context.Context, userID int64, linkID string) {
	if err := c.client.Del(ctx, linkKey(userID, linkID)).Err(); err != nil {
		c.log.Warnw("link cache invalidation failed", "user_id", userID, "link_id", linkID, "error", err)
	}
}
