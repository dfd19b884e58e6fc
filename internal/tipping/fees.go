package tipping

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

type FeeBreakdown struct {
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	ProcessorFee decimal.Decimal `json:"processor_fee"`
	PlatformFee  decimal.Decimal `json:"platform_fee"`
	NetAmount    decimal.Decimal `json:"net_amount"`
}

// NetShare is the fraction of the gross amount credited to the receiver.
func (b FeeBreakdown) NetShare() float64 {
	if b.GrossAmount.IsZero() {
		return 0
	}

	return b.NetAmount.Div(b.GrossAmount).InexactFloat64()
}

// ComputeFees splits a gross tip amount into the fees and the receiver's net amount.
// Every part is rounded to cents half-up, and the net amount is always derived by
// subtraction from the rounded gross so the parts add up exactly.
func ComputeFees(amount float64, cfg FeeConfig) (FeeBreakdown, error) {
	if err := ValidateAmount(amount, cfg); err != nil {
		return FeeBreakdown{}, err
	}

	gross := roundCents(decimal.NewFromFloat(amount))

	switch cfg.Schedule {
	case ScheduleFlat, "":
		platform := roundCents(gross.Mul(decimal.NewFromFloat(cfg.PlatformRate)))

		return FeeBreakdown{
			GrossAmount:  gross,
			ProcessorFee: decimal.Zero,
			PlatformFee:  platform,
			NetAmount:    gross.Sub(platform),
		}, nil

	case ScheduleProcessorThenPlatform:
		processor := roundCents(gross.Mul(decimal.NewFromFloat(cfg.ProcessorRate)).
			Add(decimal.NewFromFloat(cfg.ProcessorFixed)))
		if processor.GreaterThan(gross) {
			processor = gross
		}

		remainder := gross.Sub(processor)
		platform := roundCents(remainder.Mul(decimal.NewFromFloat(cfg.PlatformRate)))

		return FeeBreakdown{
			GrossAmount:  gross,
			ProcessorFee: processor,
			PlatformFee:  platform,
			NetAmount:    remainder.Sub(platform),
		}, nil

	default:
		return FeeBreakdown{}, fmt.Errorf("unknown fee schedule %q", cfg.Schedule)
	}
}

// ValidateAmount applies the bounds of cfg without computing anything.
func ValidateAmount(amount float64, cfg FeeConfig) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &ValidationError{Field: "amount", Reason: "Amount must be a finite number"}
	}

	if amount < cfg.MinAmount {
		return &ValidationError{Field: "amount", Reason: "Minimum is " + formatBound(cfg.MinAmount)}
	}

	if amount > cfg.MaxAmount {
		return &ValidationError{Field: "amount", Reason: "Maximum is " + formatBound(cfg.MaxAmount)}
	}

	return nil
}

func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
