package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/embed-rewriter/internal/entity"
	"github.com/user/embed-rewriter/internal/rewrite"
)

// PostRepoImpl provides a concrete implementation for the PostRepository interface using PostgreSQL.
type PostRepoImpl struct {
	db *pgxpool.Pool
}

// NewPostRepo creates a new instance of PostRepoImpl.
func NewPostRepo(db *pgxpool.Pool) *PostRepoImpl {
	return &PostRepoImpl{db: db}
}

// FindEmbedCandidates retrieves every non-revision post of a site whose body
// contains one of the known video domains.
func (r *PostRepoImpl) FindEmbedCandidates(ctx context.Context, siteID int64) ([]*entity.Post, error) {
	query := `
		SELECT id, site_id, slug, type, body
		FROM posts
		WHERE site_id = $1
		  AND type <> $2
		  AND (body LIKE $3 OR body LIKE $4)
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query,
		siteID,
		entity.PostTypeRevision,
		"%"+rewrite.ShortLinkDomain+"%",
		"%"+rewrite.CanonicalDomain+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		var p entity.Post
		if err := rows.Scan(&p.ID, &p.SiteID, &p.Slug, &p.Type, &p.Body); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}

	return posts, rows.Err()
}

// UpdateBody persists a rewritten post body.
func (r *PostRepoImpl) UpdateBody(ctx context.Context, siteID, postID int64, body string) error {
	query := `UPDATE posts SET body = $3 WHERE site_id = $1 AND id = $2;`
	_, err := r.db.Exec(ctx, query, siteID, postID, body)
	return err
}
