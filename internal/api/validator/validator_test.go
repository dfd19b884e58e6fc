package validator_test

import (
	"testing"

	playground "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/whatssound/tipservice/internal/api/validator"
	"github.com/whatssound/tipservice/internal/metrics"
)

type amountRequest struct {
	Amount string `validate:"required,amount"`
}

type userRequest struct {
	UserID string `validate:"required,user_id"`
}

func TestValidate_Amount(t *testing.T) {
	x := validator.NewXValidator(playground.New(), metrics.New(prometheus.NewRegistry()))

	testCases := map[string]bool{
		"10":     true,
		"10.5":   true,
		"10.50":  true,
		"0.01":   true,
		"10.555": false,
		"-1":     false,
		"1,50":   false,
		"abc":    false,
		"":       false,
	}

	for amount, ok := range testCases {
		t.Run(amount, func(t *testing.T) {
			errs := x.Validate(amountRequest{Amount: amount})
			if ok {
				assert.Empty(t, errs)
				return
			}

			if assert.NotEmpty(t, errs) {
				assert.Equal(t, "Amount", errs[0].FailedField)
			}
		})
	}
}

func TestValidate_UserID(t *testing.T) {
	x := validator.NewXValidator(playground.New(), nil)

	assert.Empty(t, x.Validate(userRequest{UserID: "dj_nova-01"}))

	errs := x.Validate(userRequest{UserID: "has space"})
	if assert.Len(t, errs, 1) {
		assert.Equal(t, validator.UserIDTag, errs[0].Tag)
	}

	assert.NotEmpty(t, x.Validate(userRequest{UserID: string(make([]byte, 65))}))
}
