package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/project-task-api/internal/models"
)

// messages maps validation tags to friendly error messages.
var messages = map[string]string{
	"required":      "The field '%s' is required.",
	"min":           "The field '%s' must be at least %s characters long.",
	"max":           "The field '%s' must be no longer than %s characters.",
	"task_priority": "The field '%s' must be one of Low, Medium, High.",
	"task_status":   "The field '%s' must be one of Pending, InProgress, Completed.",
}

// RegisterValidators installs the enum validators and reports fields by
// their json names.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("task_priority", func(fl validator.FieldLevel) bool {
		return models.TaskPriority(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}

	return v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		return models.TaskStatus(fl.Field().String()).Valid()
	})
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

// ValidationDetails turns validator errors into a map of json field names
// to friendly messages. It returns nil for any other error.
func ValidationDetails(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	details := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		details[e.Field()] = parseMessage(e)
	}
	return details
}

func parseMessage(e validator.FieldError) string {
	msg, ok := messages[e.Tag()]
	if !ok {
		return fmt.Sprintf("Field '%s' is invalid: %s", e.Field(), e.Tag())
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, e.Field(), e.Param())
	}
	return fmt.Sprintf(msg, e.Field())
}
