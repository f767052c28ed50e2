package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/provider"
	"github.com/telepathbot/telepath/internal/repository"
	"github.com/telepathbot/telepath/internal/slug"
)

// LinkService owns the link lifecycle: creating short links at the provider,
// mirroring them locally, and managing the mirror afterwards.
type LinkService struct {
	links repository.LinkRepository
	prov  provider.LinkProvider
	log   *zap.SugaredLogger
}

func NewLinkService(links repository.LinkRepository, prov provider.LinkProvider, log *zap.SugaredLogger) *LinkService {
	return &LinkService{links: links, prov: prov, log: log}
}

// Create shortens the suggestion at the provider and records the result
// locally. Provider errors surface to the caller; a failed local save does
// not undo the provider link and is reported alongside the created link.
func (s *LinkService) Create(ctx context.Context, userID int64, suggestion domain.Suggestion) (*domain.UserLink, error) {
	created, err := s.prov.CreateLink(ctx, provider.CreateLinkRequest{
		URL:    suggestion.URL,
		Domain: suggestion.Domain,
		Key:    suggestion.SuggestedSlug,
	})
	if err != nil {
		return nil, err
	}

	link := &domain.UserLink{
		ID:           created.ID,
		UserID:       userID,
		Domain:       created.Domain,
		Key:          created.Key,
		URL:          created.URL,
		ShortLink:    created.ShortLink,
		ProviderData: datatypes.JSON(created.Raw),
	}
	if err := s.links.Save(ctx, link); err != nil {
		s.log.Errorw("short link created but local save failed",
			"user_id", userID, "link_id", created.ID, "error", err)
	}
	return link, nil
}

// Get returns one of the user's links by provider id.
func (s *LinkService) Get(ctx context.Context, userID int64, linkID string) (*domain.UserLink, error) {
	return s.links.GetByID(ctx, userID, linkID)
}

// List returns one page of the user's links, newest first.
func (s *LinkService) List(ctx context.Context, userID int64, page int) (*domain.LinkPage, error) {
	return s.links.List(ctx, userID, page, repository.DefaultPageSize)
}

// Search matches against URL, slug, title and description.
func (s *LinkService) Search(ctx context.Context, userID int64, query string) ([]*domain.UserLink, error) {
	return s.links.Search(ctx, userID, query)
}

// Stats aggregates the user's link counts and clicks.
func (s *LinkService) Stats(ctx context.Context, userID int64) (*domain.LinkStats, error) {
	return s.links.Stats(ctx, userID)
}

// RecordClick bumps the local click counter for a link.
func (s *LinkService) RecordClick(ctx context.Context, userID int64, linkID string) error {
	return s.links.IncrementClicks(ctx, userID, linkID)
}

// EditSlug changes the stored slug of an existing link. The change is local
// only; the provider keeps serving the original key.
func (s *LinkService) EditSlug(ctx context.Context, userID int64, linkID, newSlug string) (*domain.UserLink, error) {
	if !slug.IsValidCustomSlug(newSlug) {
		return nil, domain.NewInvalidSlugFormatError("slug rejected: " + newSlug)
	}

	link, err := s.links.GetByID(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	shortLink := fmt.Sprintf("https://%s/%s", link.Domain, newSlug)
	return s.links.Update(ctx, userID, linkID, domain.LinkUpdate{
		Key:       &newSlug,
		ShortLink: &shortLink,
	})
}

// Delete removes the link from both stores, best effort. The provider is
// deleted first; its failure does not block the local delete, and both
// outcomes are reported so the caller can tell the user exactly what
// happened.
func (s *LinkService) Delete(ctx context.Context, userID int64, linkID string) (*domain.DeleteResult, error) {
	if _, err := s.links.GetByID(ctx, userID, linkID); err != nil {
		return nil, err
	}

	result := &domain.DeleteResult{}
	if err := s.prov.DeleteLink(ctx, linkID); err != nil {
		s.log.Warnw("provider delete failed, removing local copy anyway",
			"user_id", userID, "link_id", linkID, "error", err)
		result.ProviderErr = err
	}

	deleted, err := s.links.Delete(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}
	result.LocalDeleted = deleted
	return result, nil
}

// AvailableDomains lists verified provider domains the user can pick from.
// Lookup failures degrade to an empty list so flows using the default
// domain keep working.
func (s *LinkService) AvailableDomains(ctx context.Context) []string {
	domains, err := s.prov.ListDomains(ctx)
	if err != nil {
		s.log.Warnw("listing provider domains failed", "error", err)
		return nil
	}

	slugs := make([]string, 0, len(domains))
	for _, d := range domains {
		if d.Verified {
			slugs = append(slugs, d.Slug)
		}
	}
	return slugs
}
