package repository

import "context"

// MetaRepository defines the interface for derived post metadata
// (the oEmbed cache rows). Entries are only ever deleted by this tool,
// never read or recreated.
type MetaRepository interface {
	// DeleteByPrefix removes every metadata entry of a post whose key starts
	// with the given prefix and returns the number of entries removed.
	DeleteByPrefix(ctx context.Context, siteID, postID int64, prefix string) (int64, error)
}
