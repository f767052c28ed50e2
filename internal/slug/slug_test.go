package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already clean", input: "ai-tutorial", want: "ai-tutorial"},
		{name: "uppercase", input: "AI-Tutorial", want: "ai-tutorial"},
		{name: "strips invalid characters", input: "hello world!", want: "helloworld"},
		{name: "trims hyphens", input: "--my-slug--", want: "my-slug"},
		{name: "clips to twelve characters", input: "a-very-long-slug-candidate", want: "a-very-long"},
		{name: "non-ascii", input: "café-ñandú", want: "caf-and"},
		{name: "only invalid characters", input: "!!!", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,10}[a-z0-9])?$`)

	inputs := []string{
		"Some Title!", "--x--", "Ärger", "a", "trailing-hyphen-------x",
		"UPPER_case_with_underscores", "1234567890123456789",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "sanitize must be idempotent for %q", in)
		if once != "" {
			assert.Regexp(t, shape, once)
		}
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "short final path segment", url: "https://github.com/golang/go", want: "go"},
		{name: "long final segment falls back to earlier one", url: "https://example.com/some/very-long-path-name", want: "some"},
		{name: "no path uses host label", url: "https://example.com", want: "example"},
		{name: "root path uses host label", url: "https://example.com/", want: "example"},
		{name: "www prefix stripped", url: "https://www.nytimes.com", want: "nytimes"},
		{name: "non-ascii segment sanitized", url: "https://example.com/caf%C3%A9", want: "caf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fallback(tt.url))
		})
	}
}

func TestFallbackDeterministic(t *testing.T) {
	const url = "https://example.com/blog/posts/announcement"
	first := Fallback(url)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Fallback(url))
	}
}

func TestExtractURLs(t *testing.T) {
	urls := ExtractURLs("check this out https://example.com/some/very-long-path-name please")
	assert.Equal(t, []string{"https://example.com/some/very-long-path-name"}, urls)

	assert.Empty(t, ExtractURLs("no links here"))
	assert.Len(t, ExtractURLs("https://a.com and http://b.com"), 2)
	assert.Empty(t, ExtractURLs("ftp://files.example.com/pub"))
}

func TestIsShortURL(t *testing.T) {
	assert.True(t, IsShortURL("https://bit.ly/abc"))
	assert.True(t, IsShortURL("https://dub.sh/ai-tutorial"))
	assert.True(t, IsShortURL("https://go.dub.co/x"))
	assert.False(t, IsShortURL("https://example.com/some/very-long-path-name"))
	assert.False(t, IsShortURL("https://notbit.ly.evil.com/a"))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com/path", NormalizeURL("https://example.com/path/"))
	assert.Equal(t, "https://example.com/", NormalizeURL("https://example.com/"))
	assert.Equal(t, "not a url", NormalizeURL("not a url"))
}

func TestIsValidCustomSlug(t *testing.T) {
	assert.True(t, IsValidCustomSlug("My_Custom-Slug1"))
	assert.False(t, IsValidCustomSlug(""))
	assert.False(t, IsValidCustomSlug("has spaces"))
	assert.False(t, IsValidCustomSlug("emoji🚀"))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, IsValidCustomSlug(string(long)))
}

func TestDomainFromURL(t *testing.T) {
	assert.Equal(t, "example.com", DomainFromURL("https://www.example.com/x"))
	assert.Equal(t, "unknown", DomainFromURL("::bad::"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 50))
	assert.Equal(t, "https:/...", Truncate("https://example.com", 10))
}
