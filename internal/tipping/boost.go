package tipping

import (
	"math"

	"github.com/shopspring/decimal"
)

// GoldenBoostThreshold is the tip total, in currency units, that unlocks one Golden Boost.
const GoldenBoostThreshold = 5

func CountGoldenBoosts(tipTotal float64) (int, error) {
	if math.IsNaN(tipTotal) || math.IsInf(tipTotal, 0) {
		return 0, &ValidationError{Field: "tip_total", Reason: "Tip total must be a finite number"}
	}

	if tipTotal < 0 {
		return 0, &ValidationError{Field: "tip_total", Reason: "Tip total cannot be negative"}
	}

	boosts := decimal.NewFromFloat(tipTotal).
		Div(decimal.NewFromInt(GoldenBoostThreshold)).
		Floor()

	return int(boosts.IntPart()), nil
}

// BoostVotes is the extra rank weight a requested song gets when a tip for it settles.
func BoostVotes(amount decimal.Decimal) int {
	if amount.IsNegative() {
		return 0
	}

	return int(amount.Floor().IntPart())
}

// EntersBoost reports whether moving into status credits the linked song with boost votes.
func EntersBoost(status Status) bool {
	return IsSettled(status)
}
