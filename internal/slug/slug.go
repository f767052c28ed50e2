// Package slug holds the pure string helpers for slug sanitization, fallback
// derivation and URL validation shared by the suggestion engine and the
// message handlers.
package slug

import (
	"net/url"
	"regexp"
	"strings"
)

// MaxLength is the cap applied to generated slugs.
const MaxLength = 12

// maxCustomLength caps user-supplied slugs during edits.
const maxCustomLength = 50

var (
	urlPattern        = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
	customSlugPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)
	invalidRunes      = regexp.MustCompile(`[^a-z0-9-]`)
)

// shortDomains are providers whose links are already shortened and must not
// be shortened again.
var shortDomains = []string{
	"bit.ly",
	"tinyurl.com",
	"short.link",
	"dub.sh",
	"dub.co",
	"t.co",
	"goo.gl",
	"ow.ly",
	"is.gd",
	"buff.ly",
}

// Sanitize normalizes a slug candidate: lowercase, strip everything outside
// [a-z0-9-], trim leading/trailing hyphens, clip to MaxLength. The result is
// idempotent under re-sanitization and may be empty.
func Sanitize(s string) string {
	s = strings.ToLower(s)
	s = invalidRunes.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	if len(s) > MaxLength {
		s = s[:MaxLength]
		s = strings.Trim(s, "-")
	}
	return s
}

// Fallback derives a deterministic slug from the URL alone, used when the AI
// call fails or returns unusable output. It prefers the last path segment
// shorter than 15 characters, falling back to the host's first label with
// the www. prefix removed.
func Fallback(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	candidate, _, _ := strings.Cut(host, ".")

	if u.Path != "" && u.Path != "/" {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		for i := len(segments) - 1; i >= 0; i-- {
			if segments[i] != "" && len(segments[i]) < 15 {
				candidate = segments[i]
				break
			}
		}
	}

	return Sanitize(candidate)
}

// IsValidCustomSlug validates a user-supplied slug for edits: letters,
// numbers, hyphens and underscores, at most 50 characters.
func IsValidCustomSlug(s string) bool {
	if s == "" || len(s) > maxCustomLength {
		return false
	}
	return customSlugPattern.MatchString(s)
}

// IsValidURL reports whether text parses as an absolute http(s) URL.
func IsValidURL(text string) bool {
	u, err := url.Parse(text)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ExtractURLs returns every valid http(s) URL found in free-form text.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if IsValidURL(m) {
			urls = append(urls, m)
		}
	}
	return urls
}

// NormalizeURL strips a trailing slash from the path. Unparseable input is
// returned unchanged.
func NormalizeURL(rawURL string) string {
	if !IsValidURL(rawURL) {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if strings.HasSuffix(u.Path, "/") && u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String()
}

// DomainFromURL returns the hostname without a www. prefix, or "unknown".
func DomainFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// IsShortURL reports whether the URL already points at a known link
// shortener.
func IsShortURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	for _, d := range shortDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Truncate shortens a URL for display, appending an ellipsis.
func Truncate(rawURL string, maxLength int) string {
	if len(rawURL) <= maxLength {
		return rawURL
	}
	return rawURL[:maxLength-3] + "..."
}
