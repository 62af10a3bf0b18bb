package user

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "users-api/pkg/errors"
)

// Payload is an untyped request body as decoded from JSON.
type Payload map[string]any

// fieldRule pairs a payload key with the validator tag it must satisfy.
// Rules are checked in order and the first violation wins.
type fieldRule struct {
	key string
	tag string
}

var userSchema = []fieldRule{
	{key: "name", tag: "required,min=3"},
	{key: "email", tag: "required,email"},
}

// Validator checks untyped payloads against the user schema.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator. Field names in messages use json tag names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate turns a payload into a UserInput or reports the first violated constraint.
// It has no side effects.
func (v *Validator) Validate(payload Payload) (UserInput, error) {
	values := make(map[string]string, len(userSchema))

	for _, rule := range userSchema {
		raw, ok := payload[rule.key]
		if !ok || raw == nil {
			return UserInput{}, pkgerrors.NewValidationError(rule.key, fmt.Sprintf("%s is required", rule.key))
		}
		s, ok := raw.(string)
		if !ok {
			return UserInput{}, pkgerrors.NewValidationError(rule.key, fmt.Sprintf("%s must be a string", rule.key))
		}
		if err := v.validate.Var(s, rule.tag); err != nil {
			return UserInput{}, formatValidationError(rule.key, err)
		}
		values[rule.key] = s
	}

	return UserInput{Name: values["name"], Email: values["email"]}, nil
}

// Struct re-checks an already typed input.
func (v *Validator) Struct(in UserInput) error {
	if err := v.validate.Struct(in); err != nil {
		return formatValidationError("", err)
	}
	return nil
}

// formatValidationError converts the first validator.FieldError into a ValidationError.
// field overrides the reported name, which validate.Var leaves empty.
func formatValidationError(field string, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return pkgerrors.NewValidationError(field, err.Error())
	}

	e := validationErrors[0]
	if field == "" {
		field = e.Field()
	}

	var message string
	switch e.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", field)
	case "email":
		message = fmt.Sprintf("%s must be a valid email", field)
	case "min":
		message = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	default:
		message = fmt.Sprintf("%s is invalid", field)
	}
	return pkgerrors.NewValidationError(field, message)
}
