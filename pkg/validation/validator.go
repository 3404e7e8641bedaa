package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// ErrNilStruct is returned by Struct for a nil pointer
	ErrNilStruct = errors.New("cannot validate nil struct")
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their configuration key rather than the Go name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"yaml", "toml"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
}

// Struct validates v against its `validate` struct tags and returns the first
// failure in a readable form.
func Struct(v any) error {
	if v == nil {
		return ErrNilStruct
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ErrNilStruct
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Var validates a single value against a tag expression such as "oneof=a b"
func Var(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describe(field, verrs[0].Tag(), verrs[0].Param())
		}
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		return describe(e.Field(), e.Tag(), e.Param())
	}
	return nil
}

func describe(field, tag, param string) error {
	switch tag {
	case "required":
		return fmt.Errorf("%s: field is required", field)
	case "min", "gte":
		return fmt.Errorf("%s: must be at least %s", field, param)
	case "max", "lte":
		return fmt.Errorf("%s: must not exceed %s", field, param)
	case "gt":
		return fmt.Errorf("%s: must be greater than %s", field, param)
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s]", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, tag)
	}
}
