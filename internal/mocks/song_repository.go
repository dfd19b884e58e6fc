package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/whatssound/tipservice/internal/model"
)

type SongRepository struct {
	mock.Mock
}

func (m *SongRepository) GetByID(ctx context.Context, id int64) (*model.Song, error) {
	args := m.Called(ctx, id)
	song, _ := args.Get(0).(*model.Song)
	return song, args.Error(1)
}

func (m *SongRepository) AddBoost(ctx context.Context, songID int64, votes int) error {
	args := m.Called(ctx, songID, votes)
	return args.Error(0)
}
