package helper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator; field names are reported by their json tag.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// ValidateStruct runs v on s and converts failures into a 400 AppError.
func ValidateStruct(v *validator.Validate, s any) error {
	if v == nil {
		v = Validator()
	}
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ErrValidation("invalid input", FieldError{Field: "body", Message: err.Error()})
	}
	fields := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return ErrValidation("validation failed", fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must match format %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// ParseBody decodes the JSON body into dst and validates it.
func ParseBody(c *fiber.Ctx, v *validator.Validate, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return ErrValidation("invalid request body", FieldError{Field: "body", Message: err.Error()})
	}
	return ValidateStruct(v, dst)
}
