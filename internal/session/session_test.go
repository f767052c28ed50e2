package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telepathbot/telepath/internal/domain"
)

func TestStoreStartsIdle(t *testing.T) {
	store := NewStore()
	assert.Equal(t, ModeIdle, store.Mode(42))

	_, _, ok := store.PendingSuggestion(42)
	assert.False(t, ok)
}

func TestPendingSuggestionLifecycle(t *testing.T) {
	store := NewStore()
	store.SetPendingSuggestion(1, &domain.Suggestion{
		URL:           "https://example.com",
		SuggestedSlug: "example",
		Domain:        "dub.sh",
	}, []string{"dub.sh", "go.dev"})

	assert.Equal(t, ModeAwaitingDecision, store.Mode(1))

	suggestion, domains, ok := store.PendingSuggestion(1)
	require.True(t, ok)
	assert.Equal(t, "example", suggestion.SuggestedSlug)
	assert.Equal(t, []string{"dub.sh", "go.dev"}, domains)

	require.True(t, store.UpdatePendingSlug(1, "custom", "User-provided custom slug"))
	suggestion, _, _ = store.PendingSuggestion(1)
	assert.Equal(t, "custom", suggestion.SuggestedSlug)
	assert.Equal(t, "User-provided custom slug", suggestion.Reasoning)

	require.True(t, store.UpdatePendingDomain(1, "go.dev"))
	suggestion, _, _ = store.PendingSuggestion(1)
	assert.Equal(t, "go.dev", suggestion.Domain)

	store.Clear(1)
	assert.Equal(t, ModeIdle, store.Mode(1))
	_, _, ok = store.PendingSuggestion(1)
	assert.False(t, ok)
}

func TestAwaitCustomSlug(t *testing.T) {
	store := NewStore()

	assert.False(t, store.AwaitCustomSlug(7), "no pending suggestion yet")

	store.SetPendingSuggestion(7, &domain.Suggestion{SuggestedSlug: "a"}, nil)
	require.True(t, store.AwaitCustomSlug(7))
	assert.True(t, store.AwaitingCustomSlug(7))

	require.True(t, store.UpdatePendingSlug(7, "b", "r"))
	assert.False(t, store.AwaitingCustomSlug(7), "flag resets once the slug lands")
}

func TestNewFlowReplacesOldSession(t *testing.T) {
	store := NewStore()
	store.SetPendingSuggestion(9, &domain.Suggestion{SuggestedSlug: "a"}, nil)

	store.BeginSetup(9, domain.SetupStepWelcome)

	assert.Equal(t, ModeSetup, store.Mode(9))
	_, _, ok := store.PendingSuggestion(9)
	assert.False(t, ok, "pending suggestion must not survive a new flow")

	step, ok := store.SetupStep(9)
	require.True(t, ok)
	assert.Equal(t, domain.SetupStepWelcome, step)

	store.BeginEditLink(9, "link_abc")
	assert.Equal(t, ModeEditingLink, store.Mode(9))
	_, ok = store.SetupStep(9)
	assert.False(t, ok)

	id, ok := store.EditingLink(9)
	require.True(t, ok)
	assert.Equal(t, "link_abc", id)
}

func TestSetSetupStepRequiresSetupMode(t *testing.T) {
	store := NewStore()
	assert.False(t, store.SetSetupStep(3, domain.SetupStepSlugStyle))

	store.BeginSetup(3, domain.SetupStepWelcome)
	require.True(t, store.SetSetupStep(3, domain.SetupStepSlugStyle))

	step, _ := store.SetupStep(3)
	assert.Equal(t, domain.SetupStepSlugStyle, step)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	store := NewStore()
	store.SetPendingSuggestion(1, &domain.Suggestion{SuggestedSlug: "one"}, nil)
	store.BeginSetup(2, domain.SetupStepDomainSelection)

	assert.Equal(t, ModeAwaitingDecision, store.Mode(1))
	assert.Equal(t, ModeSetup, store.Mode(2))

	store.Clear(1)
	assert.Equal(t, ModeSetup, store.Mode(2))
}

func TestShortIDDerive(t *testing.T) {
	tests := []struct {
		name   string
		fullID string
		want   string
	}{
		{"token after last underscore", "link_1KXzHbCvLl9tLeuM07nvZqnT", "1KXzHbCv"},
		{"multiple underscores", "cus_link_abcdefghij", "abcdefgh"},
		{"no underscore", "abcdefghijkl", "abcdefgh"},
		{"short token untouched", "link_ab12", "ab12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.fullID))
		})
	}
}

func TestShortIDMapResolve(t *testing.T) {
	m := NewShortIDMap()

	short := m.Put("link_1KXzHbCvLl9tLeuM07nvZqnT")
	assert.Equal(t, "1KXzHbCv", short)
	assert.Equal(t, "link_1KXzHbCvLl9tLeuM07nvZqnT", m.Resolve(short))

	assert.Equal(t, "unknown1", m.Resolve("unknown1"), "unmapped ids resolve to themselves")
}
