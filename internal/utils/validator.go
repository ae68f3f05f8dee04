package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	cnpjPattern      = regexp.MustCompile(`^\d{14}$`)
	shareCodePattern = regexp.MustCompile(`^\d{4}$`)
)

// IsValidShareCode reports whether value is exactly 4 numeric digits.
func IsValidShareCode(value string) bool {
	return shareCodePattern.MatchString(value)
}

var cnpjPunctuation = strings.NewReplacer(".", "", "/", "", "-", "", " ", "")

// NewValidator returns a validator with the domain rules registered: "cnpj"
// (14 digits, standard punctuation tolerated) and "sharecode" (exactly 4
// digits).
func NewValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return cnpjPattern.MatchString(cnpjPunctuation.Replace(fl.Field().String()))
	})

	_ = validate.RegisterValidation("sharecode", func(fl validator.FieldLevel) bool {
		return shareCodePattern.MatchString(fl.Field().String())
	})

	return validate
}
