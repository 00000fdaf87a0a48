package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decodeValid decodes the JSON body into dst and runs struct tag validation.
// The returned error message is safe to send back to the client.
func decodeValid(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("Invalid payload")
	}
	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return errors.New("Invalid payload")
		}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return errors.New(formatFieldError(fieldErrs[0]))
		}
		return errors.New("Invalid payload")
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field %q is required", field)
	case "email":
		return fmt.Sprintf("Field %q must be a valid email address", field)
	case "min":
		return fmt.Sprintf("Field %q must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("Field %q must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("Field %q must be one of: %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("Field %q must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("Field %q must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("Field %q is invalid", field)
	}
}
