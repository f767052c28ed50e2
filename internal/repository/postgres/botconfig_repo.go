package postgres

import (
	"context"
	"errors"

	"github.com/telepathbot/telepath/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type botConfigRepository struct {
	db *gorm.DB
}

func NewBotConfigRepository(db *gorm.DB) *botConfigRepository {
	return &botConfigRepository{db: db}
}

func (r *botConfigRepository) IsSet(ctx context.Context, key string) (bool, error) {
	var flag domain.BotConfigFlag
	err := r.db.WithContext(ctx).First(&flag, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return flag.Value == "true", nil
}

func (r *botConfigRepository) MarkSet(ctx context.Context, key string) error {
	flag := &domain.BotConfigFlag{Key: key, Value: "true"}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(flag).Error
}

func (r *botConfigRepository) Clear(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Delete(&domain.BotConfigFlag{}, "key IN ?", keys).Error
}
