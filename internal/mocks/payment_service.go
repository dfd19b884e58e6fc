package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/whatssound/tipservice/internal/service"
)

type PaymentService struct {
	mock.Mock
}

func (p *PaymentService) Charge(ctx context.Context, cmd service.ChargePaymentCommand) error {
	args := p.Called(ctx, cmd)
	return args.Error(0)
}

func (p *PaymentService) Refund(ctx context.Context, cmd service.RefundPaymentCommand) error {
	args := p.Called(ctx, cmd)
	return args.Error(0)
}
