package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/eventtune/web/internal/core/domain"
)

// formValidator lets handlers call c.Validate on bound form structs. Failures
// come back as a domain.FormError so the page shows them inline.
type formValidator struct {
	v *validator.Validate
}

func NewValidator() *formValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(formLabel)
	return &formValidator{v: v}
}

// formLabel names a field after its form key, e.g. stage_name -> "stage name".
func formLabel(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return strings.ReplaceAll(name, "_", " ")
}

func (fv *formValidator) Validate(i any) error {
	err := fv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, sentence(describe(fe)))
	}
	return domain.NewFormError(strings.Join(msgs, ". "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "please enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, fe.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, fe.Param(), unit)
	case "eqfield":
		return strings.ToLower(fe.Param()) + "s do not match"
	case "oneof":
		return "please select a valid " + field
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
