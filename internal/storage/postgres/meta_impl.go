package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MetaRepoImpl provides a concrete implementation for the MetaRepository interface using PostgreSQL.
type MetaRepoImpl struct {
	db *pgxpool.Pool
}

// NewMetaRepo creates a new instance of MetaRepoImpl.
func NewMetaRepo(db *pgxpool.Pool) *MetaRepoImpl {
	return &MetaRepoImpl{db: db}
}

// DeleteByPrefix removes every metadata entry of a post whose key starts with
// the given prefix. The substr comparison avoids treating the underscores of
// the reserved prefix as LIKE wildcards.
func (r *MetaRepoImpl) DeleteByPrefix(ctx context.Context, siteID, postID int64, prefix string) (int64, error) {
	query := `
		DELETE FROM postmeta
		WHERE site_id = $1
		  AND post_id = $2
		  AND substr(key, 1, length($3)) = $3;
	`
	tag, err := r.db.Exec(ctx, query, siteID, postID, prefix)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
