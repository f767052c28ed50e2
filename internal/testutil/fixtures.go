package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/telepathbot/telepath/internal/domain"
)

// LinkBuilder creates test links with a builder pattern
type LinkBuilder struct {
	id        string
	userID    int64
	domain    string
	key       string
	url       string
	clicks    int64
	createdAt time.Time
}

// NewLinkBuilder creates a new LinkBuilder with default values
func NewLinkBuilder() *LinkBuilder {
	key := fmt.Sprintf("test-%s", uuid.New().String()[:8])
	return &LinkBuilder{
		id:        fmt.Sprintf("link_%s", uuid.New().String()[:24]),
		userID:    1,
		domain:    "dub.sh",
		key:       key,
		url:       fmt.Sprintf("https://example.com/%s", key),
		createdAt: time.Now(),
	}
}

// WithUserID sets the owning user
func (b *LinkBuilder) WithUserID(userID int64) *LinkBuilder {
	b.userID = userID
	return b
}

// WithKey sets the slug
func (b *LinkBuilder) WithKey(key string) *LinkBuilder {
	b.key = key
	return b
}

// WithURL sets the destination URL
func (b *LinkBuilder) WithURL(url string) *LinkBuilder {
	b.url = url
	return b
}

// WithClicks sets the click counter
func (b *LinkBuilder) WithClicks(clicks int64) *LinkBuilder {
	b.clicks = clicks
	return b
}

// WithCreatedAt sets the creation time, useful for ordering tests
func (b *LinkBuilder) WithCreatedAt(at time.Time) *LinkBuilder {
	b.createdAt = at
	return b
}

// Build creates the link in the database
func (b *LinkBuilder) Build(t *testing.T, db *gorm.DB) *domain.UserLink {
	t.Helper()

	link := &domain.UserLink{
		ID:           b.id,
		UserID:       b.userID,
		Domain:       b.domain,
		Key:          b.key,
		URL:          b.url,
		ShortLink:    fmt.Sprintf("https://%s/%s", b.domain, b.key),
		Clicks:       b.clicks,
		ProviderData: datatypes.JSON([]byte(fmt.Sprintf(`{"id":%q}`, b.id))),
		CreatedAt:    b.createdAt,
		UpdatedAt:    b.createdAt,
	}

	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed to create test link: %v", err)
	}

	return link
}

// PreferencesBuilder creates test preferences with a builder pattern
type PreferencesBuilder struct {
	userID         int64
	defaultDomain  string
	style          domain.SlugStyle
	autoConfirm    bool
	showReasoning  bool
	setupCompleted bool
}

// NewPreferencesBuilder creates a new PreferencesBuilder with default values
func NewPreferencesBuilder() *PreferencesBuilder {
	return &PreferencesBuilder{
		userID:         1,
		style:          domain.SlugStyleIntelligent,
		showReasoning:  true,
		setupCompleted: true,
	}
}

// WithUserID sets the user
func (b *PreferencesBuilder) WithUserID(userID int64) *PreferencesBuilder {
	b.userID = userID
	return b
}

// WithDomain sets the default domain
func (b *PreferencesBuilder) WithDomain(d string) *PreferencesBuilder {
	b.defaultDomain = d
	return b
}

// WithStyle sets the slug style
func (b *PreferencesBuilder) WithStyle(style domain.SlugStyle) *PreferencesBuilder {
	b.style = style
	return b
}

// WithAutoConfirm sets the auto-confirm flag
func (b *PreferencesBuilder) WithAutoConfirm(v bool) *PreferencesBuilder {
	b.autoConfirm = v
	return b
}

// WithSetupCompleted sets the completion flag
func (b *PreferencesBuilder) WithSetupCompleted(v bool) *PreferencesBuilder {
	b.setupCompleted = v
	return b
}

// Build creates the preferences row in the database
func (b *PreferencesBuilder) Build(t *testing.T, db *gorm.DB) *domain.UserPreferences {
	t.Helper()

	prefs := &domain.UserPreferences{
		UserID:             b.userID,
		DefaultDomain:      b.defaultDomain,
		PreferredSlugStyle: b.style,
		AutoConfirm:        b.autoConfirm,
		ShowReasoning:      b.showReasoning,
		SetupCompleted:     b.setupCompleted,
	}

	if err := db.Create(prefs).Error; err != nil {
		t.Fatalf("failed to create test preferences: %v", err)
	}

	return prefs
}
