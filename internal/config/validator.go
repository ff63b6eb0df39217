package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	xlamerrors "github.com/alexisbeaulieu97/xlamctl/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	durationType = reflect.TypeOf(Duration(0))
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("abs_dir", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return strings.HasPrefix(value, "~/") || filepath.IsAbs(value)
		})

		_ = v.RegisterValidation("file_ext", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return len(value) > 1 && strings.HasPrefix(value, ".") && !strings.ContainsAny(value, `/\ `)
		})

		_ = v.RegisterValidation("min_duration", durationBound(func(d, bound time.Duration) bool { return d >= bound }))
		_ = v.RegisterValidation("max_duration", durationBound(func(d, bound time.Duration) bool { return d <= bound }))

		validateInst = v
	})

	return validateInst
}

func durationBound(cmp func(d, bound time.Duration) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Type() != durationType {
			return false
		}
		bound, err := time.ParseDuration(fl.Param())
		if err != nil {
			return false
		}
		return cmp(time.Duration(fl.Field().Int()), bound)
	}
}

// ValidateConfig performs schema and cross-field validation. Defaults must be
// applied first.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return xlamerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if cfg.PollTimeout < cfg.PollInterval {
		return xlamerrors.NewValidationError("poll_timeout",
			fmt.Sprintf("poll_timeout (%s) must not be shorter than poll_interval (%s)", cfg.PollTimeout, cfg.PollInterval), nil)
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		field := fe.Field()
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, fe.Tag(), fe.Param())
		}
		return xlamerrors.NewValidationError(field, msg, err)
	}

	return xlamerrors.NewValidationError("config", err.Error(), err)
}
