package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/SscSPs/erp_journal_engine/internal/utils/accounting"
)

// SetupValidator registers the journal binding tags on gin's validator and
// reports fields by their json/form names.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return RegisterValidations(v)
}

// RegisterValidations adds journal_type, journal_status and period to v.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	validations := map[string]validator.Func{
		"journal_type": func(fl validator.FieldLevel) bool {
			return domain.JournalType(fl.Field().String()).IsValid()
		},
		"journal_status": func(fl validator.FieldLevel) bool {
			return domain.JournalStatus(strings.ToUpper(fl.Field().String())).IsValid()
		},
		"period": func(fl validator.FieldLevel) bool {
			_, err := accounting.ParsePeriod(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// ValidationDetails turns binding errors into "field: message" strings and
// returns the first offending field.
func ValidationDetails(err error) (string, []string) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", nil
	}

	details := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, fieldPath(e)+": "+validationMessage(e))
	}
	return fieldPath(validationErrors[0]), details
}

// fieldPath drops the top-level struct name, e.g. CreateJournalRequest.lines[0].account_id.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "datetime":
		return "Must be a date formatted as YYYY-MM-DD"
	case "journal_type":
		return "Must be one of MANUAL, PURCHASE, SALES, PAYMENT, RECEIPT, ADJUSTMENT, OPENING, CLOSING"
	case "journal_status":
		return "Must be one of DRAFT, SUBMITTED, APPROVED, POSTED, REVERSED, REJECTED"
	case "period":
		return "Must be a period formatted as YYYY-MM"
	default:
		return "Invalid value"
	}
}
