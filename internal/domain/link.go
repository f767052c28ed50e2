package domain

import (
	"time"

	"gorm.io/datatypes"
)

// UserLink is a short link created through the provider, owned by one user.
// The ID is provider-assigned and immutable.
type UserLink struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	UserID       int64          `json:"userId" gorm:"index;not null"`
	Domain       string         `json:"domain" gorm:"not null"`
	Key          string         `json:"key" gorm:"not null"`
	URL          string         `json:"url" gorm:"not null"`
	ShortLink    string         `json:"shortLink" gorm:"not null"`
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	Clicks       int64          `json:"clicks" gorm:"not null;default:0"`
	ProviderData datatypes.JSON `json:"providerData,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// LinkUpdate is a partial update; nil fields are left unchanged. Clicks are
// not updated here; use the repository's IncrementClicks.
type LinkUpdate struct {
	Key         *string
	ShortLink   *string
	Title       *string
	Description *string
}

// LinkPage is one page of a user's links, newest first.
type LinkPage struct {
	Links       []*UserLink `json:"links"`
	TotalPages  int         `json:"totalPages"`
	TotalLinks  int         `json:"totalLinks"`
	CurrentPage int         `json:"currentPage"`
}

// LinkStats summarises a user's link collection.
type LinkStats struct {
	TotalLinks      int         `json:"totalLinks"`
	TotalClicks     int64       `json:"totalClicks"`
	MostClickedLink *UserLink   `json:"mostClickedLink,omitempty"`
	RecentLinks     []*UserLink `json:"recentLinks"`
}

// Suggestion is an AI- or heuristic-derived slug candidate for a URL. It
// lives only inside a user session until confirmed or rejected.
type Suggestion struct {
	URL           string `json:"url"`
	SuggestedSlug string `json:"suggestedSlug"`
	Domain        string `json:"domain"`
	Reasoning     string `json:"reasoning"`
}

// ShortLink renders the fully qualified short link for the suggestion.
func (s *Suggestion) ShortLink() string {
	return s.Domain + "/" + s.SuggestedSlug
}

// DeleteResult reports the two-store delete outcome. Provider-side deletion
// is best effort; a failure there never blocks local deletion, but callers
// can still tell the difference.
type DeleteResult struct {
	LocalDeleted bool
	ProviderErr  error
}

// BotConfigFlag remembers a one-time external configuration step.
type BotConfigFlag struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BotConfigFlag) TableName() string { return "bot_configurations" }
