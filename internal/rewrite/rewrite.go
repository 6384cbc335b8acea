package rewrite

import (
	"log/slog"
	"regexp"
	"strings"
)

const (
	// ShortLinkDomain is the share-link host rewritten to the embed form.
	ShortLinkDomain = "youtu.be"
	// CanonicalDomain is the full video host.
	CanonicalDomain = "youtube.com"
	// EmbedTarget replaces ShortLinkDomain inside a matched URL.
	EmbedTarget = "youtube.com/embed"

	// escapedAmpToken appears in canonical watch URLs whose query arguments
	// were HTML-escaped by the editor.
	escapedAmpToken = "&#038;"
)

// urlPattern matches an HTTP(S) URL terminated by whitespace or a quote.
var urlPattern = regexp.MustCompile(`https?://[^\s"]+`)

// Replacement is one (original, replaced) URL pair produced by a scan.
type Replacement struct {
	Original string
	Replaced string
}

// Apply extracts every URL from body and rewrites the ones matching the
// short-link rule. It returns the updated body and the ordered list of
// replacements. Substitution is literal: exactly the matched URL, at most
// once per occurrence, so the body is byte-identical outside matched spans.
func Apply(body string) (string, []Replacement) {
	var reps []Replacement
	for _, u := range urlPattern.FindAllString(body, -1) {
		switch {
		case strings.Contains(u, ShortLinkDomain):
			replaced := strings.Replace(u, ShortLinkDomain, EmbedTarget, 1)
			if replaced == u {
				continue
			}
			body = strings.Replace(body, u, replaced, 1)
			reps = append(reps, Replacement{Original: u, Replaced: replaced})
		case strings.Contains(u, CanonicalDomain) && strings.Contains(u, escapedAmpToken):
			// Recognized but not rewritten: the embed form for watch URLs
			// carrying escaped query arguments is an unresolved gap.
			// TODO: decide the embed rewrite for &#038;-escaped watch URLs.
			slog.Debug("Skipping escaped-ampersand video URL", "url", u)
		}
	}
	return body, reps
}
