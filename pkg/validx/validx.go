// Package validx decodes and validates JSON request bodies, collecting every
// violation into a single error.
package validx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors is the aggregated list of violations for one request.
type Errors struct {
	Messages []string
}

func (e *Errors) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Validator wraps validator.Validate with JSON field names.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator that reports fields by their json tag.
//
// Besides the built-in tags it registers nonempty, which rejects an empty
// string behind a non-nil pointer. Use it as "omitnil,nonempty" on partial
// updates, where required would only check the pointer.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterAlias("nonempty", "min=1")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and returns *Errors when any rule fails.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Errors{}
	for _, fe := range verrs {
		out.Messages = append(out.Messages, message(fe))
	}
	return out
}

// Decode reads a JSON body into dst and validates it. A field with the wrong
// JSON type is reported alongside the rule violations of the other fields.
func (v *Validator) Decode(r io.Reader, dst any) error {
	var typeErr *json.UnmarshalTypeError

	err := json.NewDecoder(r).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
	case errors.As(err, &typeErr):
	default:
		return &Errors{Messages: []string{"request body must be valid JSON"}}
	}

	verr := v.Struct(dst)
	if typeErr == nil {
		return verr
	}

	field := typeErr.Field
	out := &Errors{Messages: []string{fmt.Sprintf("%s must be %s", field, typeName(typeErr.Type))}}

	var rules *Errors
	if errors.As(verr, &rules) {
		for _, msg := range rules.Messages {
			if !strings.HasPrefix(msg, field+" ") {
				out.Messages = append(out.Messages, msg)
			}
		}
	} else if verr != nil {
		return verr
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "nonempty":
		return field + " should not be empty"
	case "email":
		return field + " must be an email"
	case "min":
		return fmt.Sprintf("%s must be longer than or equal to %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the %s rule", field, fe.Tag())
	}
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}
