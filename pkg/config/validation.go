package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their configuration key (naming.separator)
// rather than their Go name, and registers the memvfs-specific tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// A separator containing "." would make "." and ".." path components
	// ambiguous.
	_ = v.RegisterValidation("separator", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), ".")
	})

	return v
}

// Validate checks cfg against its struct tags, then decodes the content
// strategy options so that typos fail at load time rather than when the
// first file is created. All tag failures are reported together.
//
// Log level normalization is handled in ApplyDefaults, not here.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	if _, err := decodeContentOptions(&cfg.Content); err != nil {
		return fmt.Errorf("content.%s: %w", cfg.Content.Type, err)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]error, 0, len(verrs))
	for _, e := range verrs {
		// Drop the leading "Config."
		_, key, _ := strings.Cut(e.Namespace(), ".")
		errs = append(errs, fmt.Errorf("%s: %s", key, describe(e)))
	}
	return errors.Join(errs...)
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "must be set"
	case "oneof":
		return fmt.Sprintf("%v is not one of [%s]", e.Value(), e.Param())
	case "min", "max":
		return fmt.Sprintf("%v violates %s=%s", e.Value(), e.Tag(), e.Param())
	case "separator":
		return fmt.Sprintf("%q clashes with the . and .. entries", e.Value())
	default:
		return fmt.Sprintf("validation failed on '%s' tag (value: %v)", e.Tag(), e.Value())
	}
}
