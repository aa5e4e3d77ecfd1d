// Package validator adapts go-playground/validator to echo and to the domain ValidationError.
package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	domainerrors "evently/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// TagEmail accepts anything shaped like local@domain.tld.
const TagEmail = "loose_email"

var looseEmailPattern = regexp.MustCompile(`^.+@.+\..+$`)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds a validator that reports json field names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
	if err := registerRules(v, map[string]validator.Func{TagEmail: isLooseEmail}); err != nil {
		// Rule names are constants, so a failure here is a programming error.
		panic(err)
	}

	return &CustomValidator{validate: v}
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return errors.Wrapf(err, "register validation %q", tag)
		}
	}

	return nil
}

func isLooseEmail(fl validator.FieldLevel) bool {
	return looseEmailPattern.MatchString(fl.Field().String())
}

// Validate checks i and returns the first failing field as a *domainerrors.ValidationError.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]

		return domainerrors.NewValidationError(fe.Field(), formatFieldError(fe))
	}

	return errors.Wrap(err, "validate request")
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case TagEmail, "email":
		return field + " must be a valid email"
	case "min":
		if isNumberKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}

		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		if isNumberKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}

		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "latitude":
		return field + " must be a valid latitude"
	case "longitude":
		return field + " must be a valid longitude"
	case "required_with":
		return fmt.Sprintf("%s is required when %s is present", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
