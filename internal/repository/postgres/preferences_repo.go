package postgres

import (
	"context"
	"errors"

	"github.com/telepathbot/telepath/internal/domain"
	"gorm.io/gorm"
)

type preferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *preferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) Get(ctx context.Context, userID int64) (*domain.UserPreferences, error) {
	var prefs domain.UserPreferences
	err := r.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) CreateDefault(ctx context.Context, userID int64) (*domain.UserPreferences, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.UserPreferences{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrAlreadyExists
	}

	prefs := &domain.UserPreferences{
		UserID:             userID,
		PreferredSlugStyle: domain.SlugStyleIntelligent,
		AutoConfirm:        false,
		ShowReasoning:      true,
		SetupCompleted:     false,
	}
	if err := r.db.WithContext(ctx).Create(prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *preferencesRepository) Update(ctx context.Context, userID int64, update domain.PreferencesUpdate) (*domain.UserPreferences, error) {
	prefs, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.DefaultDomain != nil {
		prefs.DefaultDomain = *update.DefaultDomain
	}
	if update.PreferredSlugStyle != nil {
		prefs.PreferredSlugStyle = *update.PreferredSlugStyle
	}
	if update.AutoConfirm != nil {
		prefs.AutoConfirm = *update.AutoConfirm
	}
	if update.ShowReasoning != nil {
		prefs.ShowReasoning = *update.ShowReasoning
	}
	if update.SetupCompleted != nil {
		prefs.SetupCompleted = *update.SetupCompleted
	}

	if err := r.db.WithContext(ctx).Save(prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *preferencesRepository) Delete(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Delete(&domain.UserPreferences{}, "user_id = ?", userID).Error
}
