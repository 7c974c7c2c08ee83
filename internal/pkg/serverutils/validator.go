package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"cancelflow-be/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs the struct's validate tags and returns an apperror.Validation on failure.
// A field can override the generated text with a `message` tag.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperror.Validation(err.Error())
	}

	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if msg := f.Tag.Get("message"); msg != "" {
				return apperror.Validation(msg)
			}
		}
		msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return apperror.Validation(strings.Join(msgs, "; "))
}
