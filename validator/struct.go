package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)
}

// fieldName reports a field by its form or json tag.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		if name := strings.Split(f.Tag.Get(key), ",")[0]; name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// errorMessages maps languages to validation tags to message templates.
var errorMessages = map[string]map[string]string{
	"en": {
		"required":   "The field '%s' is required.",
		"min":        "The field '%s' must have a length of at least %s.",
		"max":        "The field '%s' must have a length of at most %s.",
		"gte":        "The field '%s' must be greater than or equal to %s.",
		"lte":        "The field '%s' must be less than or equal to %s.",
		"gt":         "The field '%s' must be greater than %s.",
		"numeric":    "The field '%s' must be numeric.",
		"printascii": "The field '%s' must contain printable characters only.",
		"oneof":      "The field '%s' must be one of %s.",
	},
	"zh": {
		"required":   "字段 '%s' 为必填项。",
		"min":        "字段 '%s' 的长度不能少于 %s。",
		"max":        "字段 '%s' 的长度不能超过 %s。",
		"gte":        "字段 '%s' 的值必须大于或等于 %s。",
		"lte":        "字段 '%s' 的值必须小于或等于 %s。",
		"gt":         "字段 '%s' 的值必须大于 %s。",
		"numeric":    "字段 '%s' 必须是数字。",
		"printascii": "字段 '%s' 只能包含可打印字符。",
		"oneof":      "字段 '%s' 的值必须是 %s 之一。",
	},
}

// parseMessage constructs a friendly error message for a failed validation.
func parseMessage(field string, e validator.FieldError, lang ...string) string {
	msgLang := "en"
	if len(lang) > 0 {
		msgLang = lang[0]
	}
	if msgs, ok := errorMessages[msgLang]; ok {
		if msg, ok := msgs[e.Tag()]; ok {
			switch strings.Count(msg, "%s") {
			case 1:
				return fmt.Sprintf(msg, field)
			case 2:
				return fmt.Sprintf(msg, field, e.Param())
			}
		}
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", field, e.Tag())
}

// ValidateStruct validates a struct and returns a map of field names to
// friendly error messages. The map is empty when s is valid.
func ValidateStruct(s any, lang ...string) map[string]string {
	validationErrors := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return validationErrors
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		validationErrors["_"] = err.Error()
		return validationErrors
	}
	for _, e := range validationErrs {
		// dive errors are reported as field[i]
		field := e.Field()
		if _, ok := validationErrors[field]; !ok {
			validationErrors[field] = parseMessage(field, e, lang...)
		}
	}
	return validationErrors
}
