package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"bookshelf/internal/book"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("isbn_length", validateISBN)
}

func validateISBN(fl validator.FieldLevel) bool {
	return book.ValidISBNLength(book.NormalizeISBN(fl.Field().String()))
}

func isbnFieldError() FieldError {
	return FieldError{Field: "isbn", Message: "isbn must have 10 or 13 characters"}
}

// validateStruct returns nil or a *ValidationError.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		param := fe.Param()

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, param)
		case "isbn_length":
			message = isbnFieldError().Message
		case "lte":
			message = fmt.Sprintf("%s must be less than or equal to %s", field, param)
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", field, param)
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		fields = append(fields, FieldError{Field: field, Message: message})
	}
	return &ValidationError{Fields: fields}
}
