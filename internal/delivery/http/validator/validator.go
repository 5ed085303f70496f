// Package validator plugs go-playground/validator into echo.
package validator

import (
	"fmt"
	"strings"

	domainerrors "storefront/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates the validator used by c.Validate.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate returns ErrValidationFailed listing each failed field.
func (v *EchoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, ", "))
}
