package publishers

import (
	"context"
	"encoding/json"

	"github.com/whatssound/tipservice/internal/service"
	"github.com/whatssound/tipservice/pkg/mq"
	"go.uber.org/zap"
)

const ChargeQueue = "tips.charge"

type ChargePublisher interface {
	Publish(ctx context.Context) error
}

type chargePublisher struct {
	service   service.ChargeQueueService
	publisher mq.Publisher
	batchSize int
	logger    *zap.Logger
}

func NewChargePublisher(service service.ChargeQueueService, publisher mq.Publisher, batchSize int,
	logger *zap.Logger) ChargePublisher {
	if batchSize <= 0 {
		batchSize = 100
	}

	return &chargePublisher{service: service, publisher: publisher, batchSize: batchSize, logger: logger}
}

// Publish pushes one batch of unpublished charges onto the queue. An event is marked
// published only after the broker accepted it.
func (p *chargePublisher) Publish(ctx context.Context) error {
	charges, err := p.service.FindChargesToQueue(ctx, p.batchSize)
	if err != nil {
		return err
	}

	if len(charges) == 0 {
		return nil
	}

	p.logger.Info("Publishing charges", zap.Int("count", len(charges)))

	successCount := 0
	for _, charge := range charges {
		body, err := json.Marshal(charge)
		if err != nil {
			p.logger.Error("Failed to encode charge", zap.Error(err), zap.Int64("eventID", charge.EventID))
			continue
		}

		if err := p.publisher.Publish(ctx, "", ChargeQueue, body); err != nil {
			p.logger.Error("Failed to publish charge",
				zap.Error(err),
				zap.Int64("eventID", charge.EventID),
				zap.Int64("tipID", charge.TipID))

			if recordErr := p.service.RecordPublishFailure(ctx, charge.EventID, err); recordErr != nil {
				p.logger.Warn("Failed to record publish failure",
					zap.Error(recordErr),
					zap.Int64("eventID", charge.EventID))
			}
			continue
		}

		if err := p.service.MarkChargeAsQueued(ctx, charge.EventID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published charges",
			zap.Int("published", successCount),
			zap.Int("total", len(charges)))
	}

	return nil
}
