package validation

import (
	"errors"
	"fmt"
	"pos-terminal/internal/common/enum"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	val  *validator.Validate
	once sync.Once
)

var validationMessages = map[string]string{
	"required": "is required",
	"url":      "must be a valid URL",
	"number":   "must be a number",
	"oneof":    "must be one of the allowed values: %s",
	"email":    "must be a valid email address",
	"min":      "must be greater than or equal to %s",
	"max":      "must be less than or equal to %s",
	"len":      "must have the exact length of %s",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"enum":     "must be one of the allowed enum values: %s",
	"notblank": "must not be blank",
	"phone":    "must be a valid phone number",
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]([0-9 \-]{0,18}[0-9])?$`)

// Setup builds the shared validator and registers the custom rules on gin's
// binding engine too.
func Setup() error {
	val = newValidator()

	if err := registerValidations(val); err != nil {
		return fmt.Errorf("failed to register custom validations: %w", err)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := registerValidations(v); err != nil {
			return fmt.Errorf("failed to register custom validations in Gin engine: %w", err)
		}
		v.RegisterTagNameFunc(jsonTagName)
	} else {
		return fmt.Errorf("failed to get validation engine")
	}

	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)
	return v
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func registerValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("enum", enum.ValidateEnum); err != nil {
		return fmt.Errorf("failed to register enum validation: %w", err)
	}
	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		return fmt.Errorf("failed to register notblank validation: %w", err)
	}
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return fmt.Errorf("failed to register phone validation: %w", err)
	}
	return nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// Validate checks payload against its struct tags. The package falls back to
// a private validator when Setup has not run, which keeps unit tests simple.
func Validate(payload interface{}) error {
	if val == nil {
		once.Do(func() {
			if val != nil {
				return
			}
			v := newValidator()
			_ = registerValidations(v)
			val = v
		})
	}

	if err := val.Struct(payload); err != nil {
		message := "Validation failed: " + parsingErrorValidate(err)
		return errors.New(message)
	}

	return nil
}

func parsingErrorValidate(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var sb strings.Builder
		for _, e := range errs {
			field := e.Field()
			tag := e.Tag()
			param := e.Param()

			msg := validationMessages[tag]
			if msg == "" {
				msg = "is invalid"
			}
			switch tag {
			case "enum":
				msg = fmt.Sprintf(msg, e.Type())
			default:
				if strings.Contains(msg, "%s") {
					msg = fmt.Sprintf(msg, param)
				}
			}
			sb.WriteString(fmt.Sprintf("%s %s", field, msg))
			sb.WriteString(", ")
		}
		return strings.TrimSuffix(sb.String(), ", ")
	}
	return err.Error()
}
