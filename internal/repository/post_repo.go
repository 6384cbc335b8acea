package repository

import (
	"context"

	"github.com/user/embed-rewriter/internal/entity"
)

// PostRepository defines the interface for reading and updating content records.
type PostRepository interface {
	// FindEmbedCandidates retrieves every non-revision post of a site whose
	// body contains a known video domain (the short-link domain or the
	// canonical one).
	FindEmbedCandidates(ctx context.Context, siteID int64) ([]*entity.Post, error)
	// UpdateBody persists a rewritten post body. Posts are never created or
	// deleted by this tool.
	UpdateBody(ctx context.Context, siteID, postID int64, body string) error
}
