package repository

import "context"

// RenderCacheRepository defines the interface for the cached rendering of a
// post. The cache is invalidated after a persisted rewrite, not regenerated.
type RenderCacheRepository interface {
	// Invalidate drops any cached rendering of the post. Invalidating a post
	// that was never cached is not an error.
	Invalidate(ctx context.Context, siteID, postID int64) error
}
