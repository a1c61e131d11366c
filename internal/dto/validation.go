package dto

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators installs the custom validation tags used by request DTOs
// on gin's validator engine. Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = registerDecimalValidators(v)
	})
	return err
}

func registerDecimalValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("money", validateMoney); err != nil {
		return err
	}
	return nil
}

// validateMoney accepts positive decimals with at most two fractional digits.
func validateMoney(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive() && d.Equal(d.Truncate(2))
}
