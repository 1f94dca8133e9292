package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
)

// SnapshotCache is a Redis read-through cache for the aggregated session
// snapshot. Every mutating service invalidates the session's entry; a nil
// client disables caching entirely.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSnapshotCache builds the cache wrapper.
func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "snapshot_cache").Logger(),
	}
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("gpt-academy:snapshot:%s", sessionID)
}

// Get returns the cached snapshot, or false when absent or unreadable.
func (c *SnapshotCache) Get(ctx context.Context, sessionID string) (dto.SessionSnapshot, bool) {
	if c == nil || c.client == nil {
		return dto.SessionSnapshot{}, false
	}

	cached, err := c.client.Get(ctx, snapshotKey(sessionID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("failed to read snapshot cache")
		}
		return dto.SessionSnapshot{}, false
	}

	var snapshot dto.SessionSnapshot
	if err := json.Unmarshal([]byte(cached), &snapshot); err != nil {
		return dto.SessionSnapshot{}, false
	}

	return snapshot, true
}

// Set stores the snapshot for the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, sessionID string, snapshot dto.SessionSnapshot) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, snapshotKey(sessionID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to store snapshot cache")
	}
}

// Invalidate drops the cached snapshot after a mutation.
func (c *SnapshotCache) Invalidate(ctx context.Context, sessionID string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, snapshotKey(sessionID)).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate snapshot cache")
	}
}
