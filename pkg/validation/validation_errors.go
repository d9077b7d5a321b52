package validation

import (
	"errors"
	"reflect"
	"strings"

	"go-landing-page/internal/domain"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps draft field names to user-facing labels
var FieldLabels = map[string]string{
	domain.FieldName:     "Name",
	domain.FieldEmail:    "Email",
	domain.FieldCompany:  "Company",
	domain.FieldInterest: "Interest",
	domain.FieldMessage:  "Message",
}

const (
	msgInvalidEmail   = "Invalid email address"
	msgSelectAnOption = "Please select an option"
	msgInvalidValue   = "Invalid value"
)

// FieldValidator checks a contact draft against the required-field and format rules.
// It is safe for concurrent use; the option set is fixed at construction.
type FieldValidator struct {
	validate *validator.Validate
}

// Option configures a FieldValidator
type Option func(*settings)

type settings struct {
	allowAnyInterest bool
}

// WithAnyInterest accepts any non-blank interest instead of a fixed option set.
// The relay uses this because it serves several sites with different options.
func WithAnyInterest() Option {
	return func(s *settings) {
		s.allowAnyInterest = true
	}
}

// NewFieldValidator builds a validator whose interest rule accepts exactly the given options
func NewFieldValidator(options []string, opts ...Option) *FieldValidator {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	allowed := make(map[string]struct{}, len(options))
	for _, o := range options {
		allowed[o] = struct{}{}
	}

	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	RegisterValidators(v)
	_ = v.RegisterValidation("interest_option", interestOption(allowed, s.allowAnyInterest))

	return &FieldValidator{validate: v}
}

// Validate returns the field errors of the draft. It is pure: the same draft
// always yields the same set, and an empty set means the draft is submittable.
func (fv *FieldValidator) Validate(draft domain.ContactDraft) domain.FieldErrors {
	errs := domain.FieldErrors{}

	err := fv.validate.Struct(draft)
	if err == nil {
		return errs
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Only reachable on programmer error (non-struct input)
		errs["_"] = err.Error()
		return errs
	}

	for _, e := range validationErrors {
		if _, seen := errs[e.Field()]; seen {
			continue
		}
		errs[e.Field()] = formatSingleError(e)
	}
	return errs
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "not_blank", "required":
		return label + " is required"

	case "email_shape", "email":
		return msgInvalidEmail

	case "interest_option", "oneof":
		return msgSelectAnOption

	default:
		// Fallback for unknown tags
		return msgInvalidValue
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	if fieldName == "" {
		return fieldName
	}
	return strings.ToUpper(fieldName[:1]) + fieldName[1:]
}

// jsonFieldName reports struct fields by their json name so errors key on wire names
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
