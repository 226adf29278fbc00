package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// init registers the password binding tag so malformed passwords are
// rejected at the edge with a field-level message. The domain value object
// enforces the same rule; this just produces nicer 400s.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			pw := fl.Field().String()
			return hasLetter.MatchString(pw) && hasDigit.MatchString(pw)
		})
	}
}
