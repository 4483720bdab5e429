package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vo "gavel/internal/domain/billing/valueobjects"
)

// registerValidations installs custom binding rules on Gin's validator.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("billing_interval", func(fl validator.FieldLevel) bool {
		_, err := vo.ParseInterval(fl.Field().String())
		return err == nil
	})
}
