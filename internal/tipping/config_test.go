package tipping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/whatssound/tipservice/internal/tipping"
)

func TestConfig_Validate(t *testing.T) {
	valid := tipping.Config{Mode: tipping.PaymentModeLive, Fees: tipping.DefaultFeeConfig()}
	assert.NoError(t, valid.Validate())
	assert.NoError(t, tipping.ProcessorFeeConfig().Validate())

	testCases := []struct {
		name   string
		mutate func(cfg *tipping.Config)
	}{
		{name: "unknown mode", mutate: func(cfg *tipping.Config) { cfg.Mode = "sandbox" }},
		{name: "unknown schedule", mutate: func(cfg *tipping.Config) { cfg.Fees.Schedule = "tiered" }},
		{name: "rate of one", mutate: func(cfg *tipping.Config) { cfg.Fees.PlatformRate = 1 }},
		{name: "negative processor rate", mutate: func(cfg *tipping.Config) { cfg.Fees.ProcessorRate = -0.1 }},
		{name: "negative fixed fee", mutate: func(cfg *tipping.Config) { cfg.Fees.ProcessorFixed = -1 }},
		{name: "zero minimum", mutate: func(cfg *tipping.Config) { cfg.Fees.MinAmount = 0 }},
		{name: "max below min", mutate: func(cfg *tipping.Config) { cfg.Fees.MaxAmount = 0.5 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tipping.Config{Mode: tipping.PaymentModeTest, Fees: tipping.DefaultFeeConfig()}
			tc.mutate(&cfg)

			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSenderDisplayName(t *testing.T) {
	assert.Equal(t, "Lucia", tipping.SenderDisplayName("Lucia", false))
	assert.Equal(t, tipping.AnonymousSenderName, tipping.SenderDisplayName("Lucia", true))
	assert.Equal(t, tipping.AnonymousSenderName, tipping.SenderDisplayName("  ", false))
}

func TestSenderDisplayID(t *testing.T) {
	assert.Equal(t, "listener-1", tipping.SenderDisplayID("listener-1", false))
	assert.Equal(t, tipping.AnonymousSenderID, tipping.SenderDisplayID("listener-1", true))
}
