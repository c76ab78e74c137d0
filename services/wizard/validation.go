package wizard

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NormalizePhone strips every non-digit character from the input, mirroring
// the as-you-type cleanup the booking form applies.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validateDetails checks the normalized details input and maps the first
// failure to a user-facing ValidationError.
func validateDetails(details DetailsInput) error {
	if err := validate.Struct(details); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describeFieldError(verrs[0])
		}
		return NewValidationError("details", "invalid customer details")
	}
	return nil
}

func describeFieldError(fe validator.FieldError) error {
	switch fe.Field() {
	case "Name":
		return NewValidationError("name", "name is required")
	case "Phone":
		if fe.Tag() == "required" {
			return NewValidationError("phone", "phone number is required")
		}
		return NewValidationError("phone", "phone number must be exactly 10 digits")
	case "Email":
		return NewValidationError("email", "email address is not valid")
	default:
		return NewValidationError(strings.ToLower(fe.Field()), "invalid value")
	}
}
