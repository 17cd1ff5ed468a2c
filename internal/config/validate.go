package config

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ksyq12/vhostfrag/internal/errors"
	"github.com/ksyq12/vhostfrag/internal/location"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// nginxTime matches nginx time values such as 30, 90s, 5m or 1h30m.
var nginxTime = regexp.MustCompile(`^([0-9]+(ms|s|m|h|d|w|M|y)?)+$`)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their YAML names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// Names become part of a file name in the staging directory.
		_ = validate.RegisterValidation("fragment_name", func(fl validator.FieldLevel) bool {
			v := fl.Field().String()
			return v != "" && !strings.HasPrefix(v, ".") && !strings.ContainsAny(v, "/\\ \t\n")
		})

		// The vhost must be recoverable from a staged file name.
		_ = validate.RegisterValidation("fragment_vhost", func(fl validator.FieldLevel) bool {
			return location.UnambiguousVHost(fl.Field().String())
		})

		_ = validate.RegisterValidation("nginx_time", func(fl validator.FieldLevel) bool {
			return nginxTime.MatchString(fl.Field().String())
		})
	})
	return validate
}

// validateStruct runs the struct tags and folds all violations into one
// manifest error.
func validateStruct(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeManifest, "failed to validate manifest", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.Manifest(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	// Drop the root struct name: "Manifest.locations[0].name" -> "locations[0].name".
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "startswith":
		return fmt.Sprintf("%s must be an absolute path, got %q", field, fe.Value())
	case "fragment_name":
		return fmt.Sprintf("%s must not be empty, start with a dot, or contain slashes or whitespace, got %q", field, fe.Value())
	case "fragment_vhost":
		return fmt.Sprintf("%s must not contain %q or end in %q, got %q", field, "-500-", "-500", fe.Value())
	case "nginx_time":
		return fmt.Sprintf("%s must be an nginx time value like 90s, got %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
