package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/vidcheck/vidcheck/internal/youtube"
)

// Input length limits shared by the form handlers and the page markup.
const (
	MaxVideoURLLength  = 2048
	MaxQuestionLength  = 2000
	MaxTimestampLength = 32
)

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return strings.ToLower(fld.Name)
		})
		_ = instance.RegisterValidation("youtube", func(fl validator.FieldLevel) bool {
			return youtube.IsVideoURL(fl.Field().String())
		})
	})
	return instance
}

// Struct validates s against its `validate` tags and returns one readable
// message for the first failing field.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validation failed: %w", err)
	}
	return errors.New(message(fieldErrs[0]))
}

func message(e validator.FieldError) string {
	field := strings.ReplaceAll(e.Field(), "_", " ")
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be %s characters or fewer", field, e.Param())
	case "url":
		return field + " must be a valid URL"
	case "youtube":
		return "Please enter a valid YouTube URL"
	default:
		return field + " is invalid"
	}
}
