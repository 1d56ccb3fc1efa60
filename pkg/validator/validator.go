package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// DateLayout is the only accepted input format for calendar dates.
const DateLayout = "2006-01-02"

var phoneRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)

type CustomValidator struct {
	validator *validator.Validate
	now       func() time.Time
}

// NewValidator builds a validator whose "today" is taken from now. The
// returned time's location decides where the calendar day boundary falls.
func NewValidator(now func() time.Time) *CustomValidator {
	if now == nil {
		now = time.Now
	}

	cv := &CustomValidator{
		validator: validator.New(),
		now:       now,
	}

	// Report fields by their JSON names so clients can map errors to form inputs.
	cv.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// "required" accepts "   "; notblank rejects whitespace-only input.
	cv.validator.RegisterValidation("notblank", validators.NotBlank)
	cv.validator.RegisterValidation("phone", validatePhone)
	cv.validator.RegisterValidation("notpast", cv.validateNotPast)

	return cv
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Today returns midnight of the current day in the validator's clock location.
func (cv *CustomValidator) Today() time.Time {
	now := cv.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func (cv *CustomValidator) validateNotPast(fl validator.FieldLevel) bool {
	today := cv.Today()
	date, err := time.ParseInLocation(DateLayout, fl.Field().String(), today.Location())
	if err != nil {
		return false
	}
	return !date.Before(today)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required", "notblank":
				errors[field] = field + " is required"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "phone":
				errors[field] = "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed."
			case "datetime":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "notpast":
				errors[field] = field + " cannot be in the past"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
