package validation

import (
	"errors"
	"reflect"
	"strings"

	"jobmatch-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

const invalidInputMessage = "Datele introduse nu sunt valide"

// New returns a validator that reports json field names and knows the custom rules.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	RegisterValidators(v)
	return v
}

// Check validates input and returns a ValidationError listing every failing
// field, or nil.
func Check(v *validator.Validate, input interface{}) *apperror.AppError {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation(invalidInputMessage, []apperror.FieldError{{Message: err.Error()}})
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   e.Field(),
			Rule:    e.Tag(),
			Message: formatSingleError(e),
		})
	}
	return apperror.Validation(invalidInputMessage, fields)
}
