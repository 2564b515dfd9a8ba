// Package validation wraps go-playground/validator with a process-wide instance and
// field messages phrased the way the recap API reports them.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed constraint.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// RequestValidationError collects every failed constraint of one struct.
type RequestValidationError struct {
	Fields []FieldError
}

func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		messages = append(messages, f.Message)
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the shared validator. It reports fields by their json name when
// one is declared and by the lower-camel Go name otherwise.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return lowerFirst(fld.Name)
			}
			return name
		})
	})
	return validate
}

// ValidateStruct returns nil when s satisfies its validate tags.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{Fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translateError(fe),
		}
	}
	return &RequestValidationError{Fields: fields}
}

var errorMessageWithParam = map[string]string{
	"oneof":    "%s must be one of: %s",
	"gte":      "%s must be greater than or equal to %s",
	"lte":      "%s must be less than or equal to %s",
	"min":      "%s must be at least %s",
	"max":      "%s must be at most %s",
	"gtefield": "%s must be greater than or equal to %s",
	"ltefield": "%s must be less than or equal to %s",
}

func translateError(fe validator.FieldError) string {
	param := fe.Param()
	if strings.HasSuffix(fe.Tag(), "field") {
		param = lowerFirst(param)
	}
	if template, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, fe.Field(), param)
	}
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", fe.Field())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
