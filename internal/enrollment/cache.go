package enrollment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisCache reads the enrollment cache maintained by the checkout flow.
// The playback pipeline never writes it: enrollments are added to the set
// when a purchase completes, so the cache may lag behind reality in the
// negative direction but a positive hit is always trustworthy.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis-backed enrollment cache
func NewRedisCache(client *redis.Client) *redisCache {
	return &redisCache{
		client: client,
	}
}

// IsEnrolled checks whether the cached enrollment set for the viewer
// contains the course
func (c *redisCache) IsEnrolled(ctx context.Context, viewerKey, courseID string) (bool, error) {
	member, err := c.client.SIsMember(ctx, cacheKey(viewerKey), courseID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read enrollment cache: %w", err)
	}
	return member, nil
}

// cacheKey derives the cache key for a viewer. The token is hashed so raw
// credentials never appear in Redis; the checkout flow derives the same
// key when it records a purchase.
func cacheKey(viewerKey string) string {
	sum := sha256.Sum256([]byte(viewerKey))
	return "enrollments:" + hex.EncodeToString(sum[:])
}
