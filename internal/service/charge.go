package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/whatssound/tipservice/internal/constants"
	"github.com/whatssound/tipservice/internal/metrics"
	"github.com/whatssound/tipservice/internal/repository"
	"github.com/whatssound/tipservice/internal/tipping"
	"github.com/whatssound/tipservice/pkg/mq"
	"go.uber.org/zap"
)

type ChargeService interface {
	ProcessCharge(ctx context.Context, cmd ProcessChargeCommand) error
}

type Charge struct {
	tipRepo repository.TipRepository
	tips    TipService
	payment PaymentService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewChargeService(tipRepo repository.TipRepository, tips TipService, payment PaymentService,
	metrics *metrics.Metrics, logger *zap.Logger) ChargeService {
	return &Charge{tipRepo: tipRepo, tips: tips, payment: payment, metrics: metrics, logger: logger}
}

// ProcessCharge charges a pending tip and settles it. A returned mq.Temporary error
// asks for the message to be redelivered.
func (c *Charge) ProcessCharge(ctx context.Context, cmd ProcessChargeCommand) error {
	c.logger.Info("Processing charge",
		zap.Int64("eventID", cmd.EventID),
		zap.Int64("tipID", cmd.TipID))

	tip, err := c.tipRepo.GetByID(ctx, cmd.TipID)
	if errors.Is(err, repository.ErrTipNotFound) {
		c.logger.Warn("Charge for unknown tip dropped", zap.Int64("tipID", cmd.TipID))
		c.metrics.RecordChargeResult("skipped")
		return nil
	}

	if err != nil {
		return mq.Temporary(err)
	}

	if tip.Status != tipping.StatusPending {
		c.logger.Info("Tip no longer pending, skipping charge",
			zap.Int64("tipID", tip.ID),
			zap.String("status", string(tip.Status)))
		c.metrics.RecordChargeResult("skipped")
		return nil
	}

	event := tipping.EventConfirm
	reason := ""

	err = c.payment.Charge(ctx, ChargePaymentCommand{
		CustomerID:     tip.SenderID,
		MerchantID:     tip.ReceiverID,
		Amount:         tip.Amount,
		Currency:       tip.Currency,
		IdempotencyKey: ChargeKey(tip.ID),
		Description:    fmt.Sprintf("Tip to %s", tip.ReceiverName),
	})
	if err != nil {
		if ErrorCode(err) != constants.ErrCodePaymentDeclined {
			c.logger.Warn("Charge failed, will retry", zap.Int64("tipID", tip.ID), zap.Error(err))
			c.metrics.RecordChargeResult("retry")
			return mq.Temporary(err)
		}

		event = tipping.EventDecline
		reason = err.Error()
	}

	_, err = c.tips.ApplyEvent(ctx, ApplyTipEventCommand{TipID: tip.ID, Event: event, Reason: reason})
	switch code := ErrorCode(err); {
	case err == nil:
		c.metrics.RecordChargeResult(string(event))
		return nil

	case code == constants.ErrCodeTransitionConflict || code == constants.ErrCodeInvalidTransition:
		c.logger.Info("Tip settled by another worker", zap.Int64("tipID", tip.ID))
		c.metrics.RecordChargeResult("skipped")
		return nil

	case code == constants.ErrCodeTipNotFound:
		c.logger.Error("Charge settlement failed, tip is gone", zap.Int64("tipID", tip.ID), zap.Error(err))
		return err

	default:
		// the processor already took the money, so the tip must not stay pending
		c.logger.Error("Charged but could not settle tip, will retry",
			zap.Int64("tipID", tip.ID),
			zap.String("event", string(event)),
			zap.Error(err))
		c.metrics.RecordChargeResult("retry")
		return mq.Temporary(err)
	}
}
