package repository

import (
	"context"

	"github.com/telepathbot/telepath/internal/domain"
)

// DefaultPageSize is the number of links shown per management page.
const DefaultPageSize = 5

type PreferencesRepository interface {
	// Get returns domain.ErrNotFound when no record exists for the user.
	Get(ctx context.Context, userID int64) (*domain.UserPreferences, error)
	// CreateDefault returns domain.ErrAlreadyExists when a record exists.
	CreateDefault(ctx context.Context, userID int64) (*domain.UserPreferences, error)
	// Update returns domain.ErrNotFound when no record exists.
	Update(ctx context.Context, userID int64, update domain.PreferencesUpdate) (*domain.UserPreferences, error)
	// Delete is a no-op when the record is already gone.
	Delete(ctx context.Context, userID int64) error
}

type LinkRepository interface {
	Save(ctx context.Context, link *domain.UserLink) error
	// GetByID scopes lookups to the owning user; returns domain.ErrNotFound.
	GetByID(ctx context.Context, userID int64, linkID string) (*domain.UserLink, error)
	Update(ctx context.Context, userID int64, linkID string, update domain.LinkUpdate) (*domain.UserLink, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, userID int64, linkID string) (bool, error)
	// List returns one page, newest first. Page numbers are clamped to the
	// valid range.
	List(ctx context.Context, userID int64, page, pageSize int) (*domain.LinkPage, error)
	Search(ctx context.Context, userID int64, query string) ([]*domain.UserLink, error)
	IncrementClicks(ctx context.Context, userID int64, linkID string) error
	Stats(ctx context.Context, userID int64) (*domain.LinkStats, error)
}

// BotConfigRepository remembers idempotent one-time configuration steps.
type BotConfigRepository interface {
	IsSet(ctx context.Context, key string) (bool, error)
	MarkSet(ctx context.Context, key string) error
	Clear(ctx context.Context, keys []string) error
}

type Repositories struct {
	Preferences PreferencesRepository
	Links       LinkRepository
	BotConfig   BotConfigRepository
}
