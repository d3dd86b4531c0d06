// Package validator runs go-playground struct validation with JSON field
// names, so failures report the names clients actually sent.
package validator

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// FieldError describes one failed rule on a request field.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// FieldErrors is the error returned when one or more rules fail. Callers
// render per-field messages themselves; Error is a compact fallback.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	return "validation failed on " + strconv.Itoa(len(e)) + " field(s)"
}

// ValidateStruct checks s against its validate tags and returns FieldErrors
// on rule failures.
func ValidateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	if ve, ok := err.(validator.ValidationErrors); ok {
		failures := make(FieldErrors, 0, len(ve))
		for _, fe := range ve {
			failures = append(failures, FieldError{
				Field: fe.Field(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
		return failures
	}

	return err
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	return validate
}

func jsonFieldName(fld reflect.StructField) string {
	name := fld.Tag.Get("json")
	if comma := strings.Index(name, ","); comma != -1 {
		name = name[:comma]
	}
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}
