package service

import (
	"context"
	"errors"

	"github.com/whatssound/tipservice/internal/config"
	"github.com/whatssound/tipservice/internal/constants"
	"github.com/whatssound/tipservice/pkg/paymentprocessor"
	"go.uber.org/zap"
)

type PaymentService interface {
	Charge(ctx context.Context, cmd ChargePaymentCommand) error
	Refund(ctx context.Context, cmd RefundPaymentCommand) error
}

type Payment struct {
	processor paymentprocessor.Processor
	maxRetry  int
	logger    *zap.Logger
}

func NewPaymentService(processor paymentprocessor.Processor, config *config.Config, logger *zap.Logger) PaymentService {
	maxRetry := config.Processor.MaxRetries
	if maxRetry < 1 {
		maxRetry = 1
	}

	return &Payment{processor: processor, maxRetry: maxRetry, logger: logger}
}

func (p *Payment) Charge(ctx context.Context, cmd ChargePaymentCommand) error {
	request := paymentprocessor.ChargeRequest{
		CustomerID:     cmd.CustomerID,
		MerchantID:     cmd.MerchantID,
		Amount:         cmd.Amount.StringFixed(2),
		Currency:       cmd.Currency,
		IdempotencyKey: cmd.IdempotencyKey,
		Description:    cmd.Description,
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxRetry; attempt++ {
		resp, err := p.processor.Charge(ctx, request)
		if err == nil {
			p.logger.Info("Tip charged successfully",
				zap.String("customerID", cmd.CustomerID),
				zap.Int("attempt", attempt),
				zap.String("idempotencyKey", cmd.IdempotencyKey),
				zap.String("referenceID", resp.Result.ReferenceID))

			return nil
		}

		if paymentprocessor.IsDeclined(err) {
			p.logger.Warn("Charge declined",
				zap.Error(err),
				zap.Int("attempt", attempt),
				zap.String("customerID", cmd.CustomerID))
			return NewServiceError(constants.ErrCodePaymentDeclined, err)
		}

		lastErr = err
	}

	if errors.Is(lastErr, paymentprocessor.ErrTimeout) {
		p.logger.Error("Charge attempts timed out",
			zap.Error(lastErr),
			zap.Int("maxRetries", p.maxRetry),
			zap.String("customerID", cmd.CustomerID))
		return NewServiceError(constants.ErrCodeChargeTimeout, lastErr)
	}

	p.logger.Error("Payment processor unavailable after all retries",
		zap.Error(lastErr),
		zap.Int("maxRetries", p.maxRetry),
		zap.String("customerID", cmd.CustomerID))

	return NewServiceError(constants.ErrCodePaymentServiceError, lastErr)
}

func (p *Payment) Refund(ctx context.Context, cmd RefundPaymentCommand) error {
	request := paymentprocessor.RefundRequest{
		ChargeKey:      cmd.ChargeKey,
		Amount:         cmd.Amount.StringFixed(2),
		Currency:       cmd.Currency,
		IdempotencyKey: cmd.IdempotencyKey,
		Reason:         cmd.Reason,
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxRetry; attempt++ {
		resp, err := p.processor.Refund(ctx, request)
		if err == nil {
			p.logger.Info("Tip refunded successfully",
				zap.String("chargeKey", cmd.ChargeKey),
				zap.Int("attempt", attempt),
				zap.String("referenceID", resp.Result.ReferenceID))

			return nil
		}

		p.logger.Warn("Refund attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.String("chargeKey", cmd.ChargeKey))

		if paymentprocessor.IsDeclined(err) {
			return NewServiceError(constants.ErrCodePaymentDeclined, err)
		}

		lastErr = err
	}

	if errors.Is(lastErr, paymentprocessor.ErrTimeout) {
		p.logger.Error("Refund attempts timed out",
			zap.Error(lastErr),
			zap.Int("maxRetries", p.maxRetry),
			zap.String("chargeKey", cmd.ChargeKey))

		return NewServiceError(constants.ErrCodeRefundTimeout, lastErr)
	}

	p.logger.Error("Payment processor unavailable after all retries",
		zap.Error(lastErr),
		zap.Int("maxRetries", p.maxRetry),
		zap.String("chargeKey", cmd.ChargeKey))

	return NewServiceError(constants.ErrCodePaymentServiceError, lastErr)
}
