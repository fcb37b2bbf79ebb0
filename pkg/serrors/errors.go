package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BaseError is a coded error that carries enough context to render a
// user-facing message without losing the machine-readable code.
type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	e.TemplateData = data
	return e
}

// ValidationErrors maps a struct field name to the error reported for it.
type ValidationErrors map[string]*BaseError

// ProcessValidatorErrors converts go-playground validator errors into coded
// errors keyed by field. getFieldLocaleKey may return "" when the field has
// no translation entry.
func ProcessValidatorErrors(
	errs validator.ValidationErrors,
	getFieldLocaleKey func(field string) string,
) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = NewError(
			"VALIDATION_"+fe.Tag(),
			fmt.Sprintf("field %s failed on the %q rule", fe.Field(), fe.Tag()),
			getFieldLocaleKey(fe.Field()),
		).WithTemplateData(map[string]string{
			"Field": fe.Field(),
			"Param": fe.Param(),
		})
	}
	return out
}
