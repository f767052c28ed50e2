package service

import (
	"context"
	"errors"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/repository"
)

// PreferencesService manages per-user settings and setup-completion state.
type PreferencesService struct {
	prefs repository.PreferencesRepository
}

func NewPreferencesService(prefs repository.PreferencesRepository) *PreferencesService {
	return &PreferencesService{prefs: prefs}
}

// Get returns the user's preferences, or domain.ErrNotFound if the user has
// never completed or started setup.
func (s *PreferencesService) Get(ctx context.Context, userID int64) (*domain.UserPreferences, error) {
	return s.prefs.Get(ctx, userID)
}

// GetOrDefault returns stored preferences, falling back to the defaults
// without persisting anything. Used on hot paths that must not fail when a
// user skipped setup.
func (s *PreferencesService) GetOrDefault(ctx context.Context, userID int64) *domain.UserPreferences {
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return &domain.UserPreferences{
			UserID:             userID,
			PreferredSlugStyle: domain.SlugStyleIntelligent,
			AutoConfirm:        false,
			ShowReasoning:      true,
		}
	}
	return prefs
}

// EnsureExists creates a default preferences row unless one is already
// present. Safe to call at the start of setup regardless of prior state.
func (s *PreferencesService) EnsureExists(ctx context.Context, userID int64) (*domain.UserPreferences, error) {
	prefs, err := s.prefs.Get(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	created, err := s.prefs.CreateDefault(ctx, userID)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return s.prefs.Get(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update; absent fields are left untouched.
func (s *PreferencesService) Update(ctx context.Context, userID int64, update domain.PreferencesUpdate) (*domain.UserPreferences, error) {
	if update.PreferredSlugStyle != nil && !update.PreferredSlugStyle.Valid() {
		return nil, domain.NewValidationError("unknown slug style", "That slug style is not available.")
	}
	return s.prefs.Update(ctx, userID, update)
}

// MarkSetupCompleted records that the user finished (or skipped) the wizard.
func (s *PreferencesService) MarkSetupCompleted(ctx context.Context, userID int64) error {
	completed := true
	_, err := s.prefs.Update(ctx, userID, domain.PreferencesUpdate{SetupCompleted: &completed})
	return err
}

// IsSetupCompleted is false for unknown users rather than an error.
func (s *PreferencesService) IsSetupCompleted(ctx context.Context, userID int64) (bool, error) {
	prefs, err := s.prefs.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return prefs.SetupCompleted, nil
}

// Reset wipes the user's preferences so the next /start reruns the wizard.
func (s *PreferencesService) Reset(ctx context.Context, userID int64) error {
	return s.prefs.Delete(ctx, userID)
}
