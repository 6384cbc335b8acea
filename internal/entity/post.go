package entity

// Post mirrors the `posts` table schema: one content record with a
// textual body that may hold zero or more embedded URLs.
type Post struct {
	ID     int64
	SiteID int64
	Slug   string
	Type   string // "post", "page", "revision", ...
	Body   string
}

// PostTypeRevision marks historical copies of another post. Revisions are
// never scanned or rewritten.
const PostTypeRevision = "revision"
