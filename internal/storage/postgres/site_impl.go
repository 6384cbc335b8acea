package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/embed-rewriter/internal/entity"
)

// SiteRepoImpl provides a concrete implementation for the SiteRepository interface using PostgreSQL.
type SiteRepoImpl struct {
	db *pgxpool.Pool
}

// NewSiteRepo creates a new instance of SiteRepoImpl.
func NewSiteRepo(db *pgxpool.Pool) *SiteRepoImpl {
	return &SiteRepoImpl{db: db}
}

// List returns all sites of the installation in ascending ID order.
func (r *SiteRepoImpl) List(ctx context.Context) ([]*entity.Site, error) {
	query := `SELECT id, base_url FROM sites ORDER BY id;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []*entity.Site
	for rows.Next() {
		var s entity.Site
		if err := rows.Scan(&s.ID, &s.BaseURL); err != nil {
			return nil, err
		}
		sites = append(sites, &s)
	}

	return sites, rows.Err()
}
