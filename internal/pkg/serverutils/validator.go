package serverutils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// report json field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateRequest checks the validate tags of a request DTO. The returned
// error is a validator.ValidationErrors that ErrorHandler renders as 400.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}

func validationMessages(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "is required"
		case "max":
			if fe.Kind() == reflect.String {
				out[fe.Field()] = "must be at most " + fe.Param() + " characters"
			} else {
				out[fe.Field()] = "must be at most " + fe.Param()
			}
		case "oneof":
			out[fe.Field()] = "must be one of: " + fe.Param()
		case "notblank":
			out[fe.Field()] = "must not be blank"
		default:
			out[fe.Field()] = "failed on " + fe.Tag()
		}
	}
	return out
}
