package consumers

import (
	"context"
	"encoding/json"

	"github.com/whatssound/tipservice/internal/publishers"
	"github.com/whatssound/tipservice/internal/service"
	"github.com/whatssound/tipservice/pkg/mq"
	"go.uber.org/zap"
)

type ChargeConsumer interface {
	Consume(ctx context.Context) error
}

type chargeConsumer struct {
	service  service.ChargeService
	consumer mq.Consumer
	prefetch int
	logger   *zap.Logger
}

func NewChargeConsumer(service service.ChargeService, consumer mq.Consumer, prefetch int, logger *zap.Logger) ChargeConsumer {
	if prefetch <= 0 {
		prefetch = 1
	}

	return &chargeConsumer{service: service, consumer: consumer, prefetch: prefetch, logger: logger}
}

func (c *chargeConsumer) Consume(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.prefetch, publishers.ChargeQueue, c.HandleMessage)
}

// HandleMessage decodes one charge command. A body that cannot be decoded is
// returned as a permanent error and dropped.
func (c *chargeConsumer) HandleMessage(ctx context.Context, body []byte) error {
	c.logger.Info("Received charge command", zap.ByteString("body", body))

	var cmd service.ProcessChargeCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		c.logger.Warn("Invalid charge command", zap.Error(err))
		return err
	}

	return c.service.ProcessCharge(ctx, cmd)
}
