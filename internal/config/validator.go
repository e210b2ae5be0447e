package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	bcerrors "github.com/alexisbeaulieu97/bookconnect/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	themeModes = map[string]struct{}{"day": {}, "night": {}, ThemeAuto: {}}
	logLevels  = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}, "disabled": {}}
)

// validatorInstance configures and returns the shared validator instance.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(field.Name)
			}
			return name
		})

		_ = v.RegisterValidation("theme_mode", func(fl validator.FieldLevel) bool {
			_, ok := themeModes[strings.ToLower(fl.Field().String())]
			return ok
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			_, ok := logLevels[strings.ToLower(fl.Field().String())]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the configured validator for use outside the config
// package, for example by the dataset loader.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// ValidateConfig performs schema validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return bcerrors.NewValidationError("config", "configuration is nil", nil)
	}
	return ConvertValidationError(validatorInstance().Struct(cfg))
}

// ConvertValidationError normalizes validator errors into
// bcerrors.ValidationErrors, one per failing field.
func ConvertValidationError(err error) error {
	if err == nil {
		return nil
	}

	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return bcerrors.NewValidationError("config", err.Error(), err)
	}

	out := make(bcerrors.ValidationErrors, 0, len(ves))
	for _, ve := range ves {
		field := yamlishFieldName(ve)
		out = append(out, &bcerrors.ValidationError{
			Field:   field,
			Message: describe(ve),
			Err:     ve,
		})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "theme_mode":
		return fmt.Sprintf("unknown theme %q (expected day, night or auto)", fe.Value())
	case "log_level":
		return fmt.Sprintf("unknown log level %q", fe.Value())
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}

// yamlishFieldName drops the root struct name from the yaml-tagged
// namespace, turning Config.log.level into log.level.
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
