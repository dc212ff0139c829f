// Package forms validates user input before it reaches the record store.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError maps the json name of each invalid field to a message
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator wraps go-playground/validator with the domain rules registered
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	registerRules(v)

	return &Validator{validate: v}
}

// Validate checks s and returns a *ValidationError listing every invalid field
func (v *Validator) Validate(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe)
	}
	return &ValidationError{Errors: out}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return fmt.Sprintf("must be a date formatted as %s", fe.Param())
	case "category":
		return "must be one of: candidato, empresa, aluno"
	case "employment":
		return "must be one of: " + strings.Join(employmentTypes, ", ")
	case "workmode":
		return "must be one of: " + strings.Join(workModes, ", ")
	default:
		return fmt.Sprintf("invalid value (failed on %q)", fe.Tag())
	}
}
