package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/whatssound/tipservice/internal/model"
	"github.com/whatssound/tipservice/internal/repository"
)

type TipRepository struct {
	mock.Mock
}

func (m *TipRepository) Create(ctx context.Context, tip *model.Tip) error {
	args := m.Called(ctx, tip)
	return args.Error(0)
}

func (m *TipRepository) GetByID(ctx context.Context, id int64) (*model.Tip, error) {
	args := m.Called(ctx, id)
	tip, _ := args.Get(0).(*model.Tip)
	return tip, args.Error(1)
}

func (m *TipRepository) GetByIdempotencyKey(ctx context.Context, key string) (*model.Tip, error) {
	args := m.Called(ctx, key)
	tip, _ := args.Get(0).(*model.Tip)
	return tip, args.Error(1)
}

func (m *TipRepository) UpdateStatus(ctx context.Context, update repository.StatusUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *TipRepository) ListByReceiver(ctx context.Context, receiverID string, limit, offset int) ([]model.Tip, error) {
	args := m.Called(ctx, receiverID, limit, offset)
	tips, _ := args.Get(0).([]model.Tip)
	return tips, args.Error(1)
}

func (m *TipRepository) CountByReceiver(ctx context.Context, receiverID string) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TipRepository) SettledTotals(ctx context.Context, filter repository.TotalsFilter) ([]repository.TipTotal, error) {
	args := m.Called(ctx, filter)
	totals, _ := args.Get(0).([]repository.TipTotal)
	return totals, args.Error(1)
}

func (m *TipRepository) SettledTotalBySender(ctx context.Context, senderID string) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, senderID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}
