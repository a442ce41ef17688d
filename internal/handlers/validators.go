package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ndcPattern accepts 10 or 11 digit NDCs, with or without segment hyphens
// (e.g. "0002-1234-01" or "00021234011").
var ndcPattern = regexp.MustCompile(`^\d{4,5}-?\d{3,4}-?\d{1,2}$`)

func validateNDC(fl validator.FieldLevel) bool {
	return ndcPattern.MatchString(fl.Field().String())
}

// registerCustomValidators attaches domain-specific validators to gin's
// binding engine.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ndc", validateNDC)
	}
}
