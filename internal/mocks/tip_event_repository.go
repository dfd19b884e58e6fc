package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/whatssound/tipservice/internal/model"
)

type TipEventRepository struct {
	mock.Mock
}

func (m *TipEventRepository) Create(ctx context.Context, event *model.TipEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *TipEventRepository) FindUnpublished(ctx context.Context, kind string, limit int) ([]model.TipEvent, error) {
	args := m.Called(ctx, kind, limit)
	events, _ := args.Get(0).([]model.TipEvent)
	return events, args.Error(1)
}

func (m *TipEventRepository) MarkPublished(ctx context.Context, id int64, publishedAt time.Time) error {
	args := m.Called(ctx, id, publishedAt)
	return args.Error(0)
}

func (m *TipEventRepository) RecordError(ctx context.Context, id int64, lastError string) error {
	args := m.Called(ctx, id, lastError)
	return args.Error(0)
}
