// Package validator holds request validation: struct tags checked with
// go-playground/validator and guard functions for the business rules that
// gate every contract transition.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"motorent-backoffice/internal/domain"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Decimals reach tag validators as their exact string form. Money bounds
	// use the dgt/dgte/dlt/dlte tags; the built-in gt/lte would compare
	// string length.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	for tag, holds := range map[string]func(cmp int) bool{
		"dgt":  func(cmp int) bool { return cmp > 0 },
		"dgte": func(cmp int) bool { return cmp >= 0 },
		"dlt":  func(cmp int) bool { return cmp < 0 },
		"dlte": func(cmp int) bool { return cmp <= 0 },
	} {
		if err := v.RegisterValidation(tag, decimalBound(holds)); err != nil {
			panic(err)
		}
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates the tags on s and returns a Validation AppError naming
// the first failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.Validation(domain.CodeInvalidRequest, "%s", describe(fe))
	}
	return domain.Validation(domain.CodeInvalidRequest, "%v", err)
}

// decimalBound compares the field against the tag parameter without
// leaving decimal arithmetic.
func decimalBound(holds func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return holds(value.Cmp(bound))
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min", "gte", "dgte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte", "dlte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt", "dgt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "dlt":
		return fmt.Sprintf("%s must be less than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
