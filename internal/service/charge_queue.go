package service

import (
	"context"
	"time"

	"github.com/whatssound/tipservice/internal/model"
	"github.com/whatssound/tipservice/internal/repository"
	"go.uber.org/zap"
)

type ChargeQueueService interface {
	FindChargesToQueue(ctx context.Context, limit int) ([]ProcessChargeCommand, error)
	MarkChargeAsQueued(ctx context.Context, eventID int64) error
	RecordPublishFailure(ctx context.Context, eventID int64, cause error) error
}

type chargeQueue struct {
	tipEventRepo repository.TipEventRepository
	logger       *zap.Logger
}

func NewChargeQueueService(tipEventRepo repository.TipEventRepository, logger *zap.Logger) ChargeQueueService {
	return &chargeQueue{tipEventRepo: tipEventRepo, logger: logger}
}

func (c *chargeQueue) FindChargesToQueue(ctx context.Context, limit int) ([]ProcessChargeCommand, error) {
	c.logger.Debug("Finding charges to publish", zap.Int("batchSize", limit))

	events, err := c.tipEventRepo.FindUnpublished(ctx, model.TipEventKindCharge, limit)
	if err != nil {
		c.logger.Error("Failed to find unpublished charges", zap.Error(err))
		return nil, err
	}

	if len(events) == 0 {
		return nil, nil
	}

	commands := make([]ProcessChargeCommand, 0, len(events))
	for _, event := range events {
		commands = append(commands, ProcessChargeCommand{
			EventID:    event.ID,
			TipID:      event.TipID,
			SenderID:   event.Tip.SenderID,
			ReceiverID: event.Tip.ReceiverID,
			Amount:     event.Tip.Amount,
			Currency:   event.Tip.Currency,
		})
	}

	return commands, nil
}

func (c *chargeQueue) MarkChargeAsQueued(ctx context.Context, eventID int64) error {
	if err := c.tipEventRepo.MarkPublished(ctx, eventID, time.Now()); err != nil {
		c.logger.Error("Failed to mark charge as published",
			zap.Error(err),
			zap.Int64("eventID", eventID))
		return err
	}

	c.logger.Debug("Charge marked as published", zap.Int64("eventID", eventID))

	return nil
}

func (c *chargeQueue) RecordPublishFailure(ctx context.Context, eventID int64, cause error) error {
	return c.tipEventRepo.RecordError(ctx, eventID, cause.Error())
}
