package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const renderKeyPrefix = "post:render:"

// RenderCacheRepoImpl provides a concrete implementation for the
// RenderCacheRepository interface using Redis.
type RenderCacheRepoImpl struct {
	client *redis.Client
}

// NewRenderCacheRepo creates a new instance of RenderCacheRepoImpl.
func NewRenderCacheRepo(client *redis.Client) *RenderCacheRepoImpl {
	return &RenderCacheRepoImpl{client: client}
}

// generateKey creates a consistent Redis key for a post's cached rendering.
func (r *RenderCacheRepoImpl) generateKey(siteID, postID int64) string {
	return fmt.Sprintf("%s%d:%d", renderKeyPrefix, siteID, postID)
}

// Invalidate drops any cached rendering of the post. DEL on a missing key
// is a no-op, so a never-cached post is not an error.
func (r *RenderCacheRepoImpl) Invalidate(ctx context.Context, siteID, postID int64) error {
	return r.client.Del(ctx, r.generateKey(siteID, postID)).Err()
}
