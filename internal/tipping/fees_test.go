package tipping_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whatssound/tipservice/internal/tipping"
)

func TestComputeFees_FlatSchedule(t *testing.T) {
	cfg := tipping.DefaultFeeConfig()

	testCases := []struct {
		name        string
		amount      float64
		expectedFee string
		expectedNet string
	}{
		{name: "minimum", amount: 1, expectedFee: "0.13", expectedNet: "0.87"},
		{name: "ten", amount: 10, expectedFee: "1.30", expectedNet: "8.70"},
		{name: "maximum", amount: 500, expectedFee: "65.00", expectedNet: "435.00"},
		{name: "rounds down", amount: 12.34, expectedFee: "1.60", expectedNet: "10.74"},
		{name: "half cent rounds up", amount: 1.5, expectedFee: "0.20", expectedNet: "1.30"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			breakdown, err := tipping.ComputeFees(tc.amount, cfg)

			require.NoError(t, err)
			assert.Equal(t, tc.expectedFee, breakdown.PlatformFee.StringFixed(2))
			assert.Equal(t, tc.expectedNet, breakdown.NetAmount.StringFixed(2))
			assert.True(t, breakdown.ProcessorFee.IsZero())
		})
	}
}

func TestComputeFees_ProcessorThenPlatformSchedule(t *testing.T) {
	cfg := tipping.ProcessorFeeConfig()

	testCases := []struct {
		name              string
		amount            float64
		expectedProcessor string
		expectedPlatform  string
		expectedNet       string
	}{
		{name: "ten", amount: 10, expectedProcessor: "0.54", expectedPlatform: "1.42", expectedNet: "8.04"},
		{name: "hundred", amount: 100, expectedProcessor: "3.15", expectedPlatform: "14.53", expectedNet: "82.32"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			breakdown, err := tipping.ComputeFees(tc.amount, cfg)

			require.NoError(t, err)
			assert.Equal(t, tc.expectedProcessor, breakdown.ProcessorFee.StringFixed(2))
			assert.Equal(t, tc.expectedPlatform, breakdown.PlatformFee.StringFixed(2))
			assert.Equal(t, tc.expectedNet, breakdown.NetAmount.StringFixed(2))

			sum := breakdown.ProcessorFee.Add(breakdown.PlatformFee).Add(breakdown.NetAmount)
			assert.True(t, sum.Equal(breakdown.GrossAmount))
		})
	}
}

func TestComputeFees_PartsAlwaysAddUp(t *testing.T) {
	cfg := tipping.DefaultFeeConfig()

	for cents := 100; cents <= 50000; cents++ {
		amount := float64(cents) / 100

		breakdown, err := tipping.ComputeFees(amount, cfg)
		if err != nil {
			t.Fatalf("amount %v: unexpected error %v", amount, err)
		}

		if !breakdown.PlatformFee.Add(breakdown.NetAmount).Equal(breakdown.GrossAmount) {
			t.Fatalf("amount %v: fee %s + net %s != gross %s", amount,
				breakdown.PlatformFee, breakdown.NetAmount, breakdown.GrossAmount)
		}

		if !breakdown.GrossAmount.Equal(decimal.New(int64(cents), -2)) {
			t.Fatalf("amount %v: gross drifted to %s", amount, breakdown.GrossAmount)
		}

		if breakdown.NetShare() <= 0.70 {
			t.Fatalf("amount %v: receiver keeps only %v", amount, breakdown.NetShare())
		}
	}
}

func TestComputeFees_Rejects(t *testing.T) {
	cfg := tipping.DefaultFeeConfig()

	testCases := []struct {
		name           string
		amount         float64
		expectedReason string
	}{
		{name: "zero", amount: 0, expectedReason: "Minimum is 1"},
		{name: "below minimum", amount: 0.5, expectedReason: "Minimum is 1"},
		{name: "negative", amount: -5, expectedReason: "Minimum is 1"},
		{name: "above maximum", amount: 501, expectedReason: "Maximum is 500"},
		{name: "just above maximum", amount: 500.001, expectedReason: "Maximum is 500"},
		{name: "NaN", amount: math.NaN(), expectedReason: "Amount must be a finite number"},
		{name: "positive infinity", amount: math.Inf(1), expectedReason: "Amount must be a finite number"},
		{name: "negative infinity", amount: math.Inf(-1), expectedReason: "Amount must be a finite number"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			breakdown, err := tipping.ComputeFees(tc.amount, cfg)

			require.Error(t, err)

			var validationErr *tipping.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, "amount", validationErr.Field)
			assert.Equal(t, tc.expectedReason, err.Error())
			assert.Equal(t, tipping.FeeBreakdown{}, breakdown)
		})
	}
}

func TestComputeFees_UnknownSchedule(t *testing.T) {
	cfg := tipping.DefaultFeeConfig()
	cfg.Schedule = "tiered"

	_, err := tipping.ComputeFees(10, cfg)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fee schedule")
}
