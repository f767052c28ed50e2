// Package provider defines the boundary to the external link-shortening
// service. The service owns the authoritative short-link records; everything
// local is a per-user mirror.
package provider

import (
	"context"
	"encoding/json"
	"time"
)

type CreateLinkRequest struct {
	URL         string `json:"url"`
	Domain      string `json:"domain,omitempty"`
	Key         string `json:"key,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Link is the provider's record of a created short link. Raw carries the
// full response payload for local bookkeeping.
type Link struct {
	ID        string          `json:"id"`
	Domain    string          `json:"domain"`
	Key       string          `json:"key"`
	URL       string          `json:"url"`
	ShortLink string          `json:"shortLink"`
	CreatedAt time.Time       `json:"createdAt"`
	Raw       json.RawMessage `json:"-"`
}

type Domain struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Verified bool   `json:"verified"`
	Primary  bool   `json:"primary"`
}

// LinkProvider is the gateway to the shortening service. Implementations
// wrap every call in the shared retry policy and translate provider
// rejections into the domain error taxonomy.
type LinkProvider interface {
	CreateLink(ctx context.Context, req CreateLinkRequest) (*Link, error)
	DeleteLink(ctx context.Context, id string) error
	ListDomains(ctx context.Context) ([]Domain, error)
}
