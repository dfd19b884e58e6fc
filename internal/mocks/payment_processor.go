package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/whatssound/tipservice/pkg/paymentprocessor"
)

type PaymentProcessor struct {
	mock.Mock
}

func (p *PaymentProcessor) Charge(ctx context.Context, request paymentprocessor.ChargeRequest) (paymentprocessor.Response, error) {
	args := p.Called(ctx, request)
	return args.Get(0).(paymentprocessor.Response), args.Error(1)
}

func (p *PaymentProcessor) Refund(ctx context.Context, request paymentprocessor.RefundRequest) (paymentprocessor.Response, error) {
	args := p.Called(ctx, request)
	return args.Get(0).(paymentprocessor.Response), args.Error(1)
}
