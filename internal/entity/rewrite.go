package entity

// Rewrite records one applied (or previewed) URL replacement. Rewrites are
// accumulated in memory for the duration of a run and optionally exported;
// they have no cross-run persistence.
type Rewrite struct {
	SiteID      int64
	PostID      int64
	Permalink   string
	OriginalURL string
	ReplacedURL string
}
