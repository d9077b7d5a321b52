package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Deliberately permissive: local-part@domain.tld with a 2-4 letter tld, not RFC 5322
	emailShapeRegex = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,4}$`)
)

// RegisterValidators registers the option-independent custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("email_shape", EmailShape)
}

// NotBlank rejects empty and whitespace-only strings
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// EmailShape validates the basic local-part@domain.tld shape.
// Emptiness is left to not_blank so the two produce distinct messages.
func EmailShape(fl validator.FieldLevel) bool {
	return IsEmailShape(fl.Field().String())
}

// IsEmailShape reports whether s looks like an email address
func IsEmailShape(s string) bool {
	return emailShapeRegex.MatchString(strings.TrimSpace(s))
}

// interestOption builds the interest_option validator for a fixed option set.
// With allowAny set, any non-blank value passes.
func interestOption(options map[string]struct{}, allowAny bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if allowAny {
			return strings.TrimSpace(val) != ""
		}
		_, ok := options[val]
		return ok
	}
}
