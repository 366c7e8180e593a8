package api

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var countryCodePattern = regexp.MustCompile(`^[a-zA-Z]{2}$`)

// registerValidators installs custom binding validators on gin's validator
// engine. Country codes arrive in mixed case from upstream responses, so the
// check is case-insensitive.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("countrycode", func(fl validator.FieldLevel) bool {
		return countryCodePattern.MatchString(fl.Field().String())
	})
}
