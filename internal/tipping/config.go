package tipping

import (
	"errors"
	"fmt"
)

type PaymentMode string

const (
	PaymentModeTest PaymentMode = "test"
	PaymentModeLive PaymentMode = "live"
)

type FeeSchedule string

const (
	// ScheduleFlat keeps a flat platform percentage of the gross amount.
	ScheduleFlat FeeSchedule = "flat"
	// ScheduleProcessorThenPlatform takes the processor fee first and the platform
	// percentage from what remains.
	ScheduleProcessorThenPlatform FeeSchedule = "processor_then_platform"
)

const DefaultCurrency = "EUR"

type FeeConfig struct {
	Schedule       FeeSchedule `mapstructure:"schedule"`
	PlatformRate   float64     `mapstructure:"platform_rate"`
	ProcessorRate  float64     `mapstructure:"processor_rate"`
	ProcessorFixed float64     `mapstructure:"processor_fixed"`
	MinAmount      float64     `mapstructure:"min_amount"`
	MaxAmount      float64     `mapstructure:"max_amount"`
	Currency       string      `mapstructure:"currency"`
}

type Config struct {
	Mode PaymentMode `mapstructure:"mode"`
	Fees FeeConfig   `mapstructure:"fees"`
}

func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		Schedule:     ScheduleFlat,
		PlatformRate: 0.13,
		MinAmount:    1,
		MaxAmount:    500,
		Currency:     DefaultCurrency,
	}
}

func ProcessorFeeConfig() FeeConfig {
	return FeeConfig{
		Schedule:       ScheduleProcessorThenPlatform,
		PlatformRate:   0.15,
		ProcessorRate:  0.029,
		ProcessorFixed: 0.25,
		MinAmount:      1,
		MaxAmount:      500,
		Currency:       DefaultCurrency,
	}
}

func (c FeeConfig) Validate() error {
	switch c.Schedule {
	case ScheduleFlat, ScheduleProcessorThenPlatform:
	default:
		return fmt.Errorf("unknown fee schedule %q", c.Schedule)
	}

	if c.PlatformRate < 0 || c.PlatformRate >= 1 {
		return fmt.Errorf("platform rate %v out of range [0, 1)", c.PlatformRate)
	}

	if c.ProcessorRate < 0 || c.ProcessorRate >= 1 {
		return fmt.Errorf("processor rate %v out of range [0, 1)", c.ProcessorRate)
	}

	if c.ProcessorFixed < 0 {
		return errors.New("processor fixed fee cannot be negative")
	}

	if c.MinAmount <= 0 {
		return errors.New("minimum amount must be positive")
	}

	if c.MaxAmount < c.MinAmount {
		return fmt.Errorf("maximum amount %v below minimum %v", c.MaxAmount, c.MinAmount)
	}

	return nil
}

func (c Config) Validate() error {
	if _, err := InitialStatus(c.Mode); err != nil {
		return err
	}

	return c.Fees.Validate()
}
