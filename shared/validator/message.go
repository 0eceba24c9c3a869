package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required":    "{field} is required",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be at most {param}",
	"min":         "{field} must be at least {param}",
	"uuid":        "{field} must be a valid UUID",
	"alphanum":    "{field} must contain only letters and numbers",
	"numeric":     "{field} must be numeric",
	"len":         "{field} must be {param} characters long",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// message describes the first failed rule that has a template, falling back to the raw validator text.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	for _, fe := range fieldErrs {
		tmpl, ok := templates[fe.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fe.Field(), "{param}", fe.Param()).Replace(tmpl)
	}

	return fieldErrs.Error()
}
