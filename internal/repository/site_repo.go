package repository

import (
	"context"

	"github.com/user/embed-rewriter/internal/entity"
)

// SiteRepository defines the interface for enumerating the sites of the
// installation. Single-site installs yield exactly one site.
type SiteRepository interface {
	// List returns all sites in ascending ID order.
	List(ctx context.Context) ([]*entity.Site, error)
}
