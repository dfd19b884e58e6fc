package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/whatssound/tipservice/internal/service"
)

type ChargeService struct {
	mock.Mock
}

func (m *ChargeService) ProcessCharge(ctx context.Context, cmd service.ProcessChargeCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type ChargeQueueService struct {
	mock.Mock
}

func (m *ChargeQueueService) FindChargesToQueue(ctx context.Context, limit int) ([]service.ProcessChargeCommand, error) {
	args := m.Called(ctx, limit)
	commands, _ := args.Get(0).([]service.ProcessChargeCommand)
	return commands, args.Error(1)
}

func (m *ChargeQueueService) MarkChargeAsQueued(ctx context.Context, eventID int64) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *ChargeQueueService) RecordPublishFailure(ctx context.Context, eventID int64, cause error) error {
	args := m.Called(ctx, eventID, cause)
	return args.Error(0)
}
