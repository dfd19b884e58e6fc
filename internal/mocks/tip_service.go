package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/whatssound/tipservice/internal/service"
)

type TipService struct {
	mock.Mock
}

func (m *TipService) QuoteFees(amount float64) (service.FeeQuote, error) {
	args := m.Called(amount)
	return args.Get(0).(service.FeeQuote), args.Error(1)
}

func (m *TipService) SendTip(ctx context.Context, cmd service.SendTipCommand) (service.TipResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.TipResult), args.Error(1)
}

func (m *TipService) ApplyEvent(ctx context.Context, cmd service.ApplyTipEventCommand) (service.TipResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.TipResult), args.Error(1)
}

func (m *TipService) GetTip(ctx context.Context, id int64) (service.TipView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(service.TipView), args.Error(1)
}

func (m *TipService) ListReceivedTips(ctx context.Context, query service.ListTipsQuery) (service.ListTipsResult, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(service.ListTipsResult), args.Error(1)
}
