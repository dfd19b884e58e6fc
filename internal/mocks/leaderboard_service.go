package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/whatssound/tipservice/internal/service"
)

type LeaderboardService struct {
	mock.Mock
}

func (m *LeaderboardService) DJLeaderboard(ctx context.Context, query service.LeaderboardQuery) ([]service.LeaderboardEntry, error) {
	args := m.Called(ctx, query)
	entries, _ := args.Get(0).([]service.LeaderboardEntry)
	return entries, args.Error(1)
}

func (m *LeaderboardService) SupporterLeaderboard(ctx context.Context, query service.LeaderboardQuery) ([]service.LeaderboardEntry, error) {
	args := m.Called(ctx, query)
	entries, _ := args.Get(0).([]service.LeaderboardEntry)
	return entries, args.Error(1)
}

func (m *LeaderboardService) GoldenBoostBalance(ctx context.Context, senderID string) (service.GoldenBoostBalance, error) {
	args := m.Called(ctx, senderID)
	return args.Get(0).(service.GoldenBoostBalance), args.Error(1)
}
