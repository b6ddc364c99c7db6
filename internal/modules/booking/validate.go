package booking

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"taxifare/internal/modules/pricing"
)

// Indian mobile numbers: ten digits starting 6-9.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "inphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		_, ok := pricing.ParseCategory(fl.Field().String())
		return ok
	})
	mustRegister(v, "triptype", func(fl validator.FieldLevel) bool {
		_, err := pricing.ParseTripType(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// ValidateEnquiry returns a *ValidationError listing every failing field.
func ValidateEnquiry(e Enquiry) error {
	err := Validate.Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: FormatValidationError(fe)})
	}
	return out
}

func FormatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min":
		if err.Kind() == reflect.Int {
			return err.Field() + " must be at least " + err.Param()
		}
		return err.Field() + " must be at least " + err.Param() + " characters long"
	case "max":
		if err.Kind() == reflect.Int {
			return err.Field() + " must be at most " + err.Param()
		}
		return err.Field() + " must be at most " + err.Param() + " characters long"
	case "email":
		return err.Field() + " must be a valid email address"
	case "inphone":
		return err.Field() + " must be a 10-digit mobile number starting with 6-9"
	case "category":
		return err.Field() + " is not a known vehicle category"
	case "triptype":
		return err.Field() + " must be oneWay or roundTrip"
	case "datetime":
		return err.Field() + " must match " + err.Param()
	default:
		return err.Field() + " failed " + err.Tag() + " validation"
	}
}
