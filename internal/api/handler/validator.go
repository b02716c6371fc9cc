package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

// Catalog tags usable in validate struct tags.
var catalogTags = map[string][]domain.Option{
	"renterlocation":   domain.RenterLocations,
	"budgetrange":      domain.BudgetRanges,
	"propertytype":     domain.PropertyTypes,
	"landlordlocation": domain.LandlordLocations,
}

// Text tags: singleline rejects every control or format character,
// plaintext still allows line breaks and tabs.
var textTags = map[string]func(rune) bool{
	"singleline": func(r rune) bool { return isUnsafeRune(r) },
	"plaintext": func(r rune) bool {
		return r != '\n' && r != '\r' && r != '\t' && isUnsafeRune(r)
	},
}

func isUnsafeRune(r rune) bool {
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so messages match the payload the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, options := range catalogTags {
		options := options
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return domain.HasOption(options, fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("validator: register %s: %v", tag, err))
		}
	}

	for tag, unsafe := range textTags {
		unsafe := unsafe
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return strings.IndexFunc(fl.Field().String(), unsafe) < 0
		}); err != nil {
			panic(fmt.Sprintf("validator: register %s: %v", tag, err))
		}
	}

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "singleline", "plaintext":
		return field + " must not contain control characters"
	case "renterlocation", "budgetrange", "propertytype", "landlordlocation":
		return fmt.Sprintf("%s must be one of the listed options", field)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
