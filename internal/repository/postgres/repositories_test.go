package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/testutil"
)

func TestPreferencesRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	tdb := testutil.NewTestDB(t)
	repo := NewPreferencesRepository(tdb.DB)
	ctx := context.Background()

	t.Run("get unknown user returns not found", func(t *testing.T) {
		tdb.Truncate(t)

		_, err := repo.Get(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("create default", func(t *testing.T) {
		tdb.Truncate(t)

		prefs, err := repo.CreateDefault(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, int64(1), prefs.UserID)
		assert.Equal(t, domain.SlugStyleIntelligent, prefs.PreferredSlugStyle)
		assert.False(t, prefs.AutoConfirm)
		assert.True(t, prefs.ShowReasoning)
		assert.False(t, prefs.SetupCompleted)

		_, err = repo.CreateDefault(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		tdb.Truncate(t)
		testutil.NewPreferencesBuilder().WithUserID(2).WithDomain("go.example").Build(t, tdb.DB)

		style := domain.SlugStyleTechnical
		updated, err := repo.Update(ctx, 2, domain.PreferencesUpdate{PreferredSlugStyle: &style})
		require.NoError(t, err)

		assert.Equal(t, domain.SlugStyleTechnical, updated.PreferredSlugStyle)
		assert.Equal(t, "go.example", updated.DefaultDomain)
		assert.True(t, updated.ShowReasoning)
	})

	t.Run("update unknown user returns not found", func(t *testing.T) {
		tdb.Truncate(t)

		auto := true
		_, err := repo.Update(ctx, 99, domain.PreferencesUpdate{AutoConfirm: &auto})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete then recreate runs setup fresh", func(t *testing.T) {
		tdb.Truncate(t)
		testutil.NewPreferencesBuilder().WithUserID(3).WithSetupCompleted(true).Build(t, tdb.DB)

		require.NoError(t, repo.Delete(ctx, 3))
		_, err := repo.Get(ctx, 3)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.NoError(t, repo.Delete(ctx, 3), "deleting a missing row is a no-op")

		prefs, err := repo.CreateDefault(ctx, 3)
		require.NoError(t, err)
		assert.False(t, prefs.SetupCompleted)
	})
}

func TestLinkRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	tdb := testutil.NewTestDB(t)
	repo := NewLinkRepository(tdb.DB)
	ctx := context.Background()

	t.Run("save and get scoped to owner", func(t *testing.T) {
		tdb.Truncate(t)
		link := testutil.NewLinkBuilder().WithUserID(1).Build(t, tdb.DB)

		got, err := repo.GetByID(ctx, 1, link.ID)
		require.NoError(t, err)
		assert.Equal(t, link.Key, got.Key)

		_, err = repo.GetByID(ctx, 2, link.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound, "another user must not see the link")
	})

	t.Run("list pages newest first and clamps page numbers", func(t *testing.T) {
		tdb.Truncate(t)
		base := time.Now().Add(-time.Hour)
		for i := 0; i < 7; i++ {
			testutil.NewLinkBuilder().
				WithUserID(1).
				WithKey(fmt.Sprintf("key-%d", i)).
				WithCreatedAt(base.Add(time.Duration(i) * time.Minute)).
				Build(t, tdb.DB)
		}

		page, err := repo.List(ctx, 1, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, 7, page.TotalLinks)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 1, page.CurrentPage)
		require.Len(t, page.Links, 5)
		assert.Equal(t, "key-6", page.Links[0].Key, "newest first")

		page, err = repo.List(ctx, 1, 2, 5)
		require.NoError(t, err)
		require.Len(t, page.Links, 2)
		assert.Equal(t, "key-0", page.Links[1].Key)

		// Out-of-range pages clamp instead of erroring.
		page, err = repo.List(ctx, 1, 99, 5)
		require.NoError(t, err)
		assert.Equal(t, 2, page.CurrentPage)
		assert.Len(t, page.Links, 2)

		page, err = repo.List(ctx, 1, 0, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, page.CurrentPage)
	})

	t.Run("list for user with no links", func(t *testing.T) {
		tdb.Truncate(t)

		page, err := repo.List(ctx, 1, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, 0, page.TotalLinks)
		assert.Empty(t, page.Links)
	})

	t.Run("update key and short link", func(t *testing.T) {
		tdb.Truncate(t)
		link := testutil.NewLinkBuilder().WithUserID(1).WithKey("old").Build(t, tdb.DB)

		newKey := "new"
		newShort := "https://dub.sh/new"
		updated, err := repo.Update(ctx, 1, link.ID, domain.LinkUpdate{Key: &newKey, ShortLink: &newShort})
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Key)
		assert.Equal(t, "https://dub.sh/new", updated.ShortLink)
		assert.Equal(t, link.URL, updated.URL)
	})

	t.Run("delete reports whether a row was removed", func(t *testing.T) {
		tdb.Truncate(t)
		link := testutil.NewLinkBuilder().WithUserID(1).Build(t, tdb.DB)

		deleted, err := repo.Delete(ctx, 1, link.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, 1, link.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("increment clicks", func(t *testing.T) {
		tdb.Truncate(t)
		link := testutil.NewLinkBuilder().WithUserID(1).Build(t, tdb.DB)

		require.NoError(t, repo.IncrementClicks(ctx, 1, link.ID))
		require.NoError(t, repo.IncrementClicks(ctx, 1, link.ID))

		got, err := repo.GetByID(ctx, 1, link.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Clicks)
	})

	t.Run("search matches url and key", func(t *testing.T) {
		tdb.Truncate(t)
		testutil.NewLinkBuilder().WithUserID(1).WithKey("go-blog").WithURL("https://go.dev/blog").Build(t, tdb.DB)
		testutil.NewLinkBuilder().WithUserID(1).WithKey("news").WithURL("https://example.com/news").Build(t, tdb.DB)
		testutil.NewLinkBuilder().WithUserID(2).WithKey("go-docs").WithURL("https://go.dev/doc").Build(t, tdb.DB)

		results, err := repo.Search(ctx, 1, "go")
		require.NoError(t, err)
		require.Len(t, results, 1, "search is scoped to the user")
		assert.Equal(t, "go-blog", results[0].Key)

		results, err = repo.Search(ctx, 1, "EXAMPLE")
		require.NoError(t, err)
		require.Len(t, results, 1, "matching is case-insensitive")
		assert.Equal(t, "news", results[0].Key)
	})

	t.Run("stats aggregates clicks and recency", func(t *testing.T) {
		tdb.Truncate(t)
		base := time.Now().Add(-time.Hour)
		testutil.NewLinkBuilder().WithUserID(1).WithKey("a").WithClicks(5).WithCreatedAt(base).Build(t, tdb.DB)
		testutil.NewLinkBuilder().WithUserID(1).WithKey("b").WithClicks(12).WithCreatedAt(base.Add(time.Minute)).Build(t, tdb.DB)
		testutil.NewLinkBuilder().WithUserID(1).WithKey("c").WithClicks(1).WithCreatedAt(base.Add(2 * time.Minute)).Build(t, tdb.DB)

		stats, err := repo.Stats(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, 3, stats.TotalLinks)
		assert.Equal(t, int64(18), stats.TotalClicks)
		require.NotNil(t, stats.MostClickedLink)
		assert.Equal(t, "b", stats.MostClickedLink.Key)
		require.Len(t, stats.RecentLinks, 3)
		assert.Equal(t, "c", stats.RecentLinks[0].Key)
	})

	t.Run("stats for empty user", func(t *testing.T) {
		tdb.Truncate(t)

		stats, err := repo.Stats(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalLinks)
		assert.Equal(t, int64(0), stats.TotalClicks)
		assert.Nil(t, stats.MostClickedLink)
	})
}

func TestBotConfigRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	tdb := testutil.NewTestDB(t)
	repo := NewBotConfigRepository(tdb.DB)
	ctx := context.Background()

	t.Run("flags start unset", func(t *testing.T) {
		tdb.Truncate(t)

		set, err := repo.IsSet(ctx, "commands_set")
		require.NoError(t, err)
		assert.False(t, set)
	})

	t.Run("mark set is idempotent", func(t *testing.T) {
		tdb.Truncate(t)

		require.NoError(t, repo.MarkSet(ctx, "commands_set"))
		require.NoError(t, repo.MarkSet(ctx, "commands_set"))

		set, err := repo.IsSet(ctx, "commands_set")
		require.NoError(t, err)
		assert.True(t, set)
	})

	t.Run("clear resets selected flags", func(t *testing.T) {
		tdb.Truncate(t)

		require.NoError(t, repo.MarkSet(ctx, "name_set"))
		require.NoError(t, repo.MarkSet(ctx, "description_set"))

		require.NoError(t, repo.Clear(ctx, []string{"name_set"}))

		set, err := repo.IsSet(ctx, "name_set")
		require.NoError(t, err)
		assert.False(t, set)

		set, err = repo.IsSet(ctx, "description_set")
		require.NoError(t, err)
		assert.True(t, set)
	})
}
