package postgres

import (
	"context"
	"errors"

	"github.com/telepathbot/telepath/internal/domain"
	"gorm.io/gorm"
)

type linkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *linkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Save(ctx context.Context, link *domain.UserLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *linkRepository) GetByID(ctx context.Context, userID int64, linkID string) (*domain.UserLink, error) {
	var link domain.UserLink
	err := r.db.WithContext(ctx).
		First(&link, "id = ? AND user_id = ?", linkID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) Update(ctx context.Context, userID int64, linkID string, update domain.LinkUpdate) (*domain.UserLink, error) {
	link, err := r.GetByID(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	if update.Key != nil {
		link.Key = *update.Key
	}
	if update.ShortLink != nil {
		link.ShortLink = *update.ShortLink
	}
	if update.Title != nil {
		link.Title = *update.Title
	}
	if update.Description != nil {
		link.Description = *update.Description
	}

	if err := r.db.WithContext(ctx).Save(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (r *linkRepository) Delete(ctx context.Context, userID int64, linkID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Delete(&domain.UserLink{}, "id = ? AND user_id = ?", linkID, userID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *linkRepository) List(ctx context.Context, userID int64, page, pageSize int) (*domain.LinkPage, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.UserLink{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	var links []*domain.UserLink
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	return &domain.LinkPage{
		Links:       links,
		TotalPages:  totalPages,
		TotalLinks:  int(total),
		CurrentPage: page,
	}, nil
}

func (r *linkRepository) Search(ctx context.Context, userID int64, query string) ([]*domain.UserLink, error) {
	var links []*domain.UserLink
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("url ILIKE ? OR key ILIKE ? OR title ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *linkRepository) IncrementClicks(ctx context.Context, userID int64, linkID string) error {
	return r.db.WithContext(ctx).Model(&domain.UserLink{}).
		Where("id = ? AND user_id = ?", linkID, userID).
		UpdateColumn("clicks", gorm.Expr("clicks + 1")).Error
}

func (r *linkRepository) Stats(ctx context.Context, userID int64) (*domain.LinkStats, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.UserLink{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	var totalClicks int64
	if err := r.db.WithContext(ctx).Model(&domain.UserLink{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(clicks), 0)").Scan(&totalClicks).Error; err != nil {
		return nil, err
	}

	stats := &domain.LinkStats{
		TotalLinks:  int(total),
		TotalClicks: totalClicks,
	}

	if total > 0 {
		var most domain.UserLink
		err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("clicks DESC").
			First(&most).Error
		if err == nil {
			stats.MostClickedLink = &most
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var recent []*domain.UserLink
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(3).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}
	stats.RecentLinks = recent

	return stats, nil
}
