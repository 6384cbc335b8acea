package entity

import "strings"

// Site is one tenant of the installation. A single-site install has
// exactly one row.
type Site struct {
	ID      int64
	BaseURL string
}

// Permalink derives the public URL of a post from the site base URL and
// the post slug.
func (s Site) Permalink(slug string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + strings.Trim(slug, "/") + "/"
}
