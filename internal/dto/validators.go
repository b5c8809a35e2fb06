package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	accountCodePattern = regexp.MustCompile(`^[0-9]{2,12}$`)
	currencyPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
)

// RegisterValidators adds the custom binding rules used by request DTOs to gin's validator.
//   - accountcode: 2 to 12 digits
//   - currency: 3 upper-case letters (ISO 4217 shape)
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	if err := v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
		return accountCodePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return currencyPattern.MatchString(fl.Field().String())
	})
}
