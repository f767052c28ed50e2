package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/provider"
)

type fakeProvider struct {
	createErr  error
	deleteErr  error
	domainsErr error
	domains    []provider.Domain
	deleted    []string
	created    []provider.CreateLinkRequest
}

func (f *fakeProvider) CreateLink(_ context.Context, req provider.CreateLinkRequest) (*provider.Link, error) {
	f.created = append(f.created, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &provider.Link{
		ID:        "link_abc123",
		Domain:    req.Domain,
		Key:       req.Key,
		URL:       req.URL,
		ShortLink: fmt.Sprintf("https://%s/%s", req.Domain, req.Key),
		Raw:       json.RawMessage(`{"id":"link_abc123"}`),
	}, nil
}

func (f *fakeProvider) DeleteLink(_ context.Context, linkID string) error {
	f.deleted = append(f.deleted, linkID)
	return f.deleteErr
}

func (f *fakeProvider) ListDomains(_ context.Context) ([]provider.Domain, error) {
	return f.domains, f.domainsErr
}

type fakeLinkRepo struct {
	links      map[string]*domain.UserLink
	saveErr    error
	deleteErr  error
	clickCalls int
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: make(map[string]*domain.UserLink)}
}

func (f *fakeLinkRepo) Save(_ context.Context, link *domain.UserLink) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.links[link.ID] = link
	return nil
}

func (f *fakeLinkRepo) GetByID(_ context.Context, userID int64, linkID string) (*domain.UserLink, error) {
	link, ok := f.links[linkID]
	if !ok || link.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return link, nil
}

func (f *fakeLinkRepo) Update(ctx context.Context, userID int64, linkID string, update domain.LinkUpdate) (*domain.UserLink, error) {
	link, err := f.GetByID(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}
	if update.Key != nil {
		link.Key = *update.Key
	}
	if update.ShortLink != nil {
		link.ShortLink = *update.ShortLink
	}
	return link, nil
}

func (f *fakeLinkRepo) Delete(_ context.Context, userID int64, linkID string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	link, ok := f.links[linkID]
	if !ok || link.UserID != userID {
		return false, nil
	}
	delete(f.links, linkID)
	return true, nil
}

func (f *fakeLinkRepo) List(_ context.Context, _ int64, _, _ int) (*domain.LinkPage, error) {
	return &domain.LinkPage{}, nil
}

func (f *fakeLinkRepo) Search(_ context.Context, _ int64, _ string) ([]*domain.UserLink, error) {
	return nil, nil
}

func (f *fakeLinkRepo) IncrementClicks(_ context.Context, _ int64, _ string) error {
	f.clickCalls++
	return nil
}

func (f *fakeLinkRepo) Stats(_ context.Context, _ int64) (*domain.LinkStats, error) {
	return &domain.LinkStats{}, nil
}

func newLinkService(repo *fakeLinkRepo, prov *fakeProvider) *LinkService {
	return NewLinkService(repo, prov, zap.NewNop().Sugar())
}

func TestCreateShortensAndMirrorsLocally(t *testing.T) {
	repo := newFakeLinkRepo()
	prov := &fakeProvider{}
	svc := newLinkService(repo, prov)

	link, err := svc.Create(context.Background(), 10, domain.Suggestion{
		URL:           "https://go.dev/blog",
		SuggestedSlug: "go-blog",
		Domain:        "dub.sh",
	})
	require.NoError(t, err)

	assert.Equal(t, "link_abc123", link.ID)
	assert.Equal(t, int64(10), link.UserID)
	assert.Equal(t, "https://dub.sh/go-blog", link.ShortLink)
	assert.JSONEq(t, `{"id":"link_abc123"}`, string(link.ProviderData))

	stored, err := repo.GetByID(context.Background(), 10, "link_abc123")
	require.NoError(t, err)
	assert.Equal(t, "go-blog", stored.Key)
}

func TestCreateSurfacesProviderErrors(t *testing.T) {
	repo := newFakeLinkRepo()
	prov := &fakeProvider{createErr: domain.NewDuplicateSlugError("key taken")}
	svc := newLinkService(repo, prov)

	_, err := svc.Create(context.Background(), 10, domain.Suggestion{SuggestedSlug: "taken", Domain: "dub.sh"})

	var botErr *domain.BotError
	require.ErrorAs(t, err, &botErr)
	assert.Equal(t, domain.ErrKindDuplicateSlug, botErr.Kind)
	assert.Empty(t, repo.links, "nothing mirrored on provider failure")
}

func TestCreateSucceedsWhenLocalSaveFails(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.saveErr = errors.New("db down")
	svc := newLinkService(repo, &fakeProvider{})

	link, err := svc.Create(context.Background(), 10, domain.Suggestion{SuggestedSlug: "x", Domain: "dub.sh", URL: "https://example.com"})

	require.NoError(t, err, "provider link exists, so the user still gets it")
	assert.Equal(t, "link_abc123", link.ID)
}

func TestEditSlugIsLocalOnly(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.links["link_1"] = &domain.UserLink{ID: "link_1", UserID: 5, Domain: "dub.sh", Key: "old", ShortLink: "https://dub.sh/old"}
	prov := &fakeProvider{}
	svc := newLinkService(repo, prov)

	updated, err := svc.EditSlug(context.Background(), 5, "link_1", "new-slug")
	require.NoError(t, err)

	assert.Equal(t, "new-slug", updated.Key)
	assert.Equal(t, "https://dub.sh/new-slug", updated.ShortLink)
	assert.Empty(t, prov.created, "no provider call on slug edit")
	assert.Empty(t, prov.deleted)
}

func TestEditSlugRejectsBadFormat(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.links["link_1"] = &domain.UserLink{ID: "link_1", UserID: 5}
	svc := newLinkService(repo, &fakeProvider{})

	for _, bad := range []string{"has space", "slash/slug", "émoji", ""} {
		_, err := svc.EditSlug(context.Background(), 5, "link_1", bad)

		var botErr *domain.BotError
		require.ErrorAs(t, err, &botErr, "slug %q", bad)
		assert.Equal(t, domain.ErrKindInvalidSlugFormat, botErr.Kind)
	}
}

func TestEditSlugScopedToOwner(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.links["link_1"] = &domain.UserLink{ID: "link_1", UserID: 5}
	svc := newLinkService(repo, &fakeProvider{})

	_, err := svc.EditSlug(context.Background(), 6, "link_1", "mine")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRemovesBothStores(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.links["link_1"] = &domain.UserLink{ID: "link_1", UserID: 5}
	prov := &fakeProvider{}
	svc := newLinkService(repo, prov)

	result, err := svc.Delete(context.Background(), 5, "link_1")
	require.NoError(t, err)

	assert.True(t, result.LocalDeleted)
	assert.NoError(t, result.ProviderErr)
	assert.Equal(t, []string{"link_1"}, prov.deleted)
	assert.Empty(t, repo.links)
}

func TestDeleteContinuesLocallyWhenProviderFails(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.links["link_1"] = &domain.UserLink{ID: "link_1", UserID: 5}
	prov := &fakeProvider{deleteErr: domain.NewProviderError("dub returned 500", nil)}
	svc := newLinkService(repo, prov)

	result, err := svc.Delete(context.Background(), 5, "link_1")
	require.NoError(t, err)

	assert.True(t, result.LocalDeleted)
	assert.Error(t, result.ProviderErr)
	assert.Empty(t, repo.links, "local copy removed despite provider failure")
}

func TestDeleteUnknownLink(t *testing.T) {
	svc := newLinkService(newFakeLinkRepo(), &fakeProvider{})

	_, err := svc.Delete(context.Background(), 5, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordClickDelegatesToRepository(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.links["link_1"] = &domain.UserLink{ID: "link_1", UserID: 5}
	svc := newLinkService(repo, &fakeProvider{})

	assert.NoError(t, svc.RecordClick(context.Background(), 5, "link_1"))
	assert.Equal(t, 1, repo.clickCalls)
}

func TestAvailableDomainsFiltersUnverified(t *testing.T) {
	prov := &fakeProvider{domains: []provider.Domain{
		{Slug: "dub.sh", Verified: true},
		{Slug: "pending.example", Verified: false},
		{Slug: "go.example", Verified: true},
	}}
	svc := newLinkService(newFakeLinkRepo(), prov)

	assert.Equal(t, []string{"dub.sh", "go.example"}, svc.AvailableDomains(context.Background()))
}

func TestAvailableDomainsDegradesToEmpty(t *testing.T) {
	prov := &fakeProvider{domainsErr: errors.New("network down")}
	svc := newLinkService(newFakeLinkRepo(), prov)

	assert.Empty(t, svc.AvailableDomains(context.Background()))
}
