package repository

import (
	"context"
	"time"

	"github.com/whatssound/tipservice/internal/model"
	"gorm.io/gorm"
)

type TipEventRepository interface {
	Create(ctx context.Context, event *model.TipEvent) error
	FindUnpublished(ctx context.Context, kind string, limit int) ([]model.TipEvent, error)
	MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error
	RecordError(ctx context.Context, id int64, lastError string) error
}

type TipEvent struct {
	db *gorm.DB
}

func NewTipEventRepository(db *gorm.DB) TipEventRepository {
	return &TipEvent{db: db}
}

func (r *TipEvent) Create(ctx context.Context, event *model.TipEvent) error {
	return GetTx(ctx, r.db).Create(event).Error
}

func (r *TipEvent) FindUnpublished(ctx context.Context, kind string, limit int) ([]model.TipEvent, error) {
	var events []model.TipEvent

	err := GetTx(ctx, r.db).Preload("Tip").
		Where("published = ? AND kind = ?", false, kind).
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *TipEvent) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	result := GetTx(ctx, r.db).Model(&model.TipEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"published":    true,
			"published_at": publishedAt,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTipEventNotFound
	}

	return nil
}

func (r *TipEvent) RecordError(ctx context.Context, id int64, lastError string) error {
	return GetTx(ctx, r.db).Model(&model.TipEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_error": lastError,
			"updated_at": time.Now(),
		}).Error
}
