package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/embed-rewriter/internal/entity"
	"github.com/user/embed-rewriter/internal/rewrite"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and implements the post, site and
// metadata repositories for single-host installs.
type Store struct {
	db *sql.DB
}

// New creates a new database connection and initializes the schema.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range []string{createSitesTable, createPostsTable, createPostMetaTable} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all sites of the installation in ascending ID order.
func (s *Store) List(ctx context.Context) ([]*entity.Site, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, base_url FROM sites ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []*entity.Site
	for rows.Next() {
		var site entity.Site
		if err := rows.Scan(&site.ID, &site.BaseURL); err != nil {
			return nil, err
		}
		sites = append(sites, &site)
	}

	return sites, rows.Err()
}

// FindEmbedCandidates retrieves every non-revision post of a site whose body
// contains one of the known video domains.
func (s *Store) FindEmbedCandidates(ctx context.Context, siteID int64) ([]*entity.Post, error) {
	query := `
		SELECT id, site_id, slug, type, body
		FROM posts
		WHERE site_id = ?
		  AND type <> ?
		  AND (body LIKE ? OR body LIKE ?)
		ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query,
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
func (s *Store) UpdateBody(ctx context.Context, siteID, postID int64, body string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE posts SET body = ? WHERE site_id = ? AND id = ?`,
		body, siteID, postID,
	)
	return err
}

// DeleteByPrefix removes every metadata entry of a post whose key starts with
// the given prefix. The substr comparison avoids treating the underscores of
// the reserved prefix as LIKE wildcards.
func (s *Store) DeleteByPrefix(ctx context.Context, siteID, postID int64, prefix string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM postmeta
		WHERE site_id = ?
		  AND post_id = ?
		  AND substr(key, 1, length(?)) = ?`,
		siteID, postID, prefix, prefix,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
