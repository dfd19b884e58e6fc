package mq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Handle func(ctx context.Context, body []byte) error

type Consumer interface {
	Consume(ctx context.Context, prefetch int, queue string, handler Handle) error
}

// Outcome is what happens to a delivery once its handler returns.
type Outcome int

const (
	OutcomeAck Outcome = iota
	OutcomeRequeue
	OutcomeDrop
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAck:
		return "ack"
	case OutcomeRequeue:
		return "requeue"
	default:
		return "drop"
	}
}

// Settle maps a handler result to a delivery outcome.
func Settle(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeAck
	case IsTemporary(err):
		return OutcomeRequeue
	default:
		return OutcomeDrop
	}
}

type RabbitConsumer struct {
	ch     *amqp.Channel
	logger *zap.Logger
}

func NewRabbitConsumer(ch *amqp.Channel, logger *zap.Logger) Consumer {
	return &RabbitConsumer{ch: ch, logger: logger}
}

func (c *RabbitConsumer) Consume(ctx context.Context, prefetch int, queue string, handler Handle) error {
	if prefetch <= 0 {
		prefetch = 1
	}

	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := c.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel("", false)
			time.Sleep(50 * time.Millisecond)
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			err := handler(ctx, d.Body)
			outcome := Settle(err)

			switch outcome {
			case OutcomeAck:
				_ = d.Ack(false)
			case OutcomeRequeue:
				_ = d.Nack(false, true)
			default:
				_ = d.Nack(false, false)
			}

			if err != nil {
				c.logger.Warn("Delivery not acknowledged",
					zap.String("queue", queue),
					zap.String("outcome", outcome.String()),
					zap.Error(err),
				)
			}
		}
	}
}
