package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	AmountTag = "amount"
	UserIDTag = "user_id"
)

var (
	amountRegex = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	userIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	AmountTag: ValidateAmount,
	UserIDTag: ValidateUserID,
}

func ValidateAmount(fl validator.FieldLevel) bool {
	return amountRegex.MatchString(fl.Field().String())
}

func ValidateUserID(fl validator.FieldLevel) bool {
	return userIDRegex.MatchString(fl.Field().String())
}
