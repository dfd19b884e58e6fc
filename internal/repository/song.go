package repository

import (
	"context"
	"errors"
	"time"

	"github.com/whatssound/tipservice/internal/model"
	"gorm.io/gorm"
)

type SongRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Song, error)
	AddBoost(ctx context.Context, songID int64, votes int) error
}

type Song struct {
	db *gorm.DB
}

func NewSongRepository(db *gorm.DB) SongRepository {
	return &Song{db: db}
}

func (s *Song) GetByID(ctx context.Context, id int64) (*model.Song, error) {
	var song model.Song

	err := GetTx(ctx, s.db).Where("id = ?", id).First(&song).Error
	if err == nil {
		return &song, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSongNotFound
	}

	return nil, err
}

func (s *Song) AddBoost(ctx context.Context, songID int64, votes int) error {
	result := GetTx(ctx, s.db).Model(&model.Song{}).
		Where("id = ?", songID).
		Updates(map[string]any{
			"boost_votes": gorm.Expr("boost_votes + ?", votes),
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSongNotFound
	}

	return nil
}
